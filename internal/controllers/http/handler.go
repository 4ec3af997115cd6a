package http

import (
	"net/http"
	"strconv"

	"procurement-service/internal/domain"
	"procurement-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Handler struct {
	users   *services.UserService
	catalog *services.CatalogService
	orders  *services.OrderService
	reports *services.ReportService
}

func NewHandler(
	users *services.UserService,
	catalog *services.CatalogService,
	orders *services.OrderService,
	reports *services.ReportService,
) *Handler {
	return &Handler{users: users, catalog: catalog, orders: orders, reports: reports}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/pending-users", h.ListPendingUsers)
	r.GET("/users", h.ListUsers)
	r.POST("/approve-user", h.ApproveUser)

	r.POST("/add-product", h.AddProduct)
	r.POST("/update-product", h.UpdateProduct)
	r.POST("/delete-product", h.DeleteProduct)
	r.GET("/products/:vendorId", h.ListVendorProducts)
	r.GET("/all-products", h.ListAllProducts)

	r.POST("/place-order", h.PlaceOrder)
	r.POST("/update-order-status", h.UpdateOrderStatus)
	r.GET("/orders/:id", h.GetOrder)
	r.GET("/vendor-orders/:vendorId", h.VendorOrders)
	r.GET("/employee-orders/:employeeId", h.EmployeeOrders)
	r.GET("/admin-stats", h.AdminStats)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	message := "Registration successful. You can login now."
	if u.Status == domain.UserPending {
		message = "Registration successful. Wait for Admin approval."
	}
	c.JSON(http.StatusCreated, RegisterResponse{Message: message, ID: u.ID, Status: u.Status})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.users.Login(c.Request.Context(), services.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		ID:      res.UserID,
		Name:    res.Name,
		Role:    res.Role,
		Token:   res.Token,
	})
}

func (h *Handler) ListPendingUsers(c *gin.Context) {
	users, err := h.users.ListPendingUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponses(users))
}

func (h *Handler) ApproveUser(c *gin.Context) {
	var req IDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.users.Approve(c.Request.Context(), req.ID); err != nil {
		writeError(c, err)
		return
	}
	writeMessage(c, http.StatusOK, "User approved successfully")
}

func (h *Handler) AddProduct(c *gin.Context) {
	var req AddProductRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.catalog.AddOrUpdateProduct(c.Request.Context(), services.AddProductInput{
		VendorID:    req.VendorID,
		Name:        req.Name,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		ForceUpdate: req.ForceUpdate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	switch {
	case res.Exists:
		c.JSON(http.StatusOK, AddProductResponse{Message: "Product exists", Exists: true, Product: toProductResponse(res.Product)})
	case res.Updated:
		c.JSON(http.StatusOK, AddProductResponse{Message: "Product updated successfully", Product: toProductResponse(res.Product)})
	default:
		c.JSON(http.StatusCreated, AddProductResponse{Message: "Product added successfully", Product: toProductResponse(res.Product)})
	}
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.catalog.UpdateProduct(c.Request.Context(), services.UpdateProductInput{
		ID:    req.ID,
		Name:  req.Name,
		Price: req.Price,
		Cost:  req.Cost,
		Stock: req.Stock,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	writeMessage(c, http.StatusOK, "Product updated successfully")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	var req IDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.catalog.DeleteProduct(c.Request.Context(), req.ID); err != nil {
		writeError(c, err)
		return
	}
	writeMessage(c, http.StatusOK, "Product deleted successfully")
}

func (h *Handler) ListVendorProducts(c *gin.Context) {
	vendorID, ok := pathID(c, "vendorId")
	if !ok {
		return
	}

	products, err := h.catalog.ListVendorProducts(c.Request.Context(), vendorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponses(products))
}

func (h *Handler) ListAllProducts(c *gin.Context) {
	entries, err := h.catalog.ListAllProducts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	placed, err := h.orders.PlaceOrder(c.Request.Context(), services.PlaceOrderInput{
		EmployeeID: req.EmployeeID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, PlaceOrderResponse{
		Message:     "Order placed successfully",
		OrderID:     placed.OrderID,
		TotalAmount: placed.TotalAmount,
	})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.orders.UpdateOrderStatus(c.Request.Context(), services.UpdateOrderStatusInput{
		OrderID: req.OrderID,
		Status:  req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	writeMessage(c, http.StatusOK, "Order status updated")
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) VendorOrders(c *gin.Context) {
	vendorID, ok := pathID(c, "vendorId")
	if !ok {
		return
	}

	rows, err := h.reports.VendorOrders(c.Request.Context(), vendorID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) EmployeeOrders(c *gin.Context) {
	employeeID, ok := pathID(c, "employeeId")
	if !ok {
		return
	}

	rows, err := h.reports.EmployeeOrders(c.Request.Context(), employeeID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.reports.AdminStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, domain.ErrValidation.WithMessage("Invalid request body"))
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		writeError(c, domain.ErrValidation.WithMessage("Invalid "+name))
		return 0, false
	}
	return id, true
}
