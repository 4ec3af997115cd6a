package http

import (
	"procurement-service/internal/domain"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type RegisterResponse struct {
	Message string            `json:"message"`
	ID      uint64            `json:"id"`
	Status  domain.UserStatus `json:"status"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	ID      uint64      `json:"id"`
	Name    string      `json:"name"`
	Role    domain.Role `json:"role"`
	Token   string      `json:"token"`
}

type IDRequest struct {
	ID uint64 `json:"id"`
}

type AddProductRequest struct {
	VendorID    uint64          `json:"vendorId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int64           `json:"stock"`
	ForceUpdate bool            `json:"forceUpdate"`
}

type UpdateProductRequest struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Cost  decimal.Decimal `json:"cost"`
	Stock int64           `json:"stock"`
}

type ProductResponse struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Cost  decimal.Decimal `json:"cost"`
	Stock int64           `json:"stock"`
}

type AddProductResponse struct {
	Message string           `json:"message"`
	Exists  bool             `json:"exists,omitempty"`
	Product *ProductResponse `json:"product,omitempty"`
}

type PlaceOrderRequest struct {
	EmployeeID uint64 `json:"employeeId"`
	ProductID  uint64 `json:"productId"`
	Quantity   int64  `json:"quantity"`
}

type PlaceOrderResponse struct {
	Message     string          `json:"message"`
	OrderID     uint64          `json:"orderId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type UpdateOrderStatusRequest struct {
	OrderID uint64             `json:"orderId"`
	Status  domain.OrderStatus `json:"status"`
}

type UserResponse struct {
	ID     uint64            `json:"id"`
	Name   string            `json:"name"`
	Email  string            `json:"email"`
	Role   domain.Role       `json:"role"`
	Status domain.UserStatus `json:"status"`
}

func toProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Cost: p.Cost, Stock: p.Stock}
}

func toProductResponses(ps []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for i := range ps {
		out = append(out, *toProductResponse(&ps[i]))
	}
	return out
}

func toUserResponses(us []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(us))
	for _, u := range us {
		out = append(out, UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Status: u.Status})
	}
	return out
}
