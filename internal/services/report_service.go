package services

import (
	"context"
	"log/slog"

	"procurement-service/internal/domain"
	"procurement-service/internal/policy"
	"procurement-service/internal/repository"

	"golang.org/x/sync/errgroup"
)

type ReportService struct {
	reports repository.ReportRepository
	authz   policy.Authorizer
	logger  *slog.Logger
}

func NewReportService(reports repository.ReportRepository, authz policy.Authorizer, logger *slog.Logger) *ReportService {
	return &ReportService{reports: reports, authz: authz, logger: logger}
}

// VendorOrders lists the orders received by a vendor, newest first.
func (s *ReportService) VendorOrders(ctx context.Context, vendorID uint64) ([]domain.VendorOrderRow, error) {
	if vendorID == 0 {
		return nil, domain.ErrValidation
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionViewOrders, OwnerID: vendorID}); err != nil {
		return nil, err
	}
	rows, err := s.reports.VendorOrders(ctx, vendorID)
	if err != nil {
		return nil, storeError(err)
	}
	if rows == nil {
		rows = []domain.VendorOrderRow{}
	}
	return rows, nil
}

// EmployeeOrders lists the orders placed by an employee, newest first.
func (s *ReportService) EmployeeOrders(ctx context.Context, employeeID uint64) ([]domain.EmployeeOrderRow, error) {
	if employeeID == 0 {
		return nil, domain.ErrValidation
	}
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionViewOrders, OwnerID: employeeID}); err != nil {
		return nil, err
	}
	rows, err := s.reports.EmployeeOrders(ctx, employeeID)
	if err != nil {
		return nil, storeError(err)
	}
	if rows == nil {
		rows = []domain.EmployeeOrderRow{}
	}
	return rows, nil
}

// AdminStats runs the independent aggregates concurrently. The result is not
// a snapshot: each figure is read on its own.
func (s *ReportService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	if err := s.authz.Authorize(ctx, policy.Request{Action: policy.ActionViewStats}); err != nil {
		return nil, err
	}

	var stats domain.AdminStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		stats.TotalUsers, err = s.reports.CountUsers(gctx, "")
		return err
	})
	g.Go(func() (err error) {
		stats.TotalVendors, err = s.reports.CountUsers(gctx, domain.RoleVendor)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEmployees, err = s.reports.CountUsers(gctx, domain.RoleEmployee)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalProducts, err = s.reports.CountProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalOrders, err = s.reports.CountOrders(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.reports.DeliveredRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalProfit, err = s.reports.DeliveredProfit(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "admin stats failed", slog.String("error", err.Error()))
		return nil, storeError(err)
	}
	return &stats, nil
}
