package policy

import (
	"context"
	"testing"

	"procurement-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRoleAuthorizer(t *testing.T) {
	admin := Actor{ID: 1, Role: domain.RoleAdmin}
	vendor := Actor{ID: 7, Role: domain.RoleVendor}
	employee := Actor{ID: 3, Role: domain.RoleEmployee}

	tests := []struct {
		name    string
		actor   *Actor
		req     Request
		wantErr error
	}{
		{"no actor", nil, Request{Action: ActionApproveUser}, domain.ErrUnauthorized},
		{"admin approves", &admin, Request{Action: ActionApproveUser}, nil},
		{"vendor cannot approve", &vendor, Request{Action: ActionApproveUser}, domain.ErrForbidden},
		{"admin registers admin", &admin, Request{Action: ActionRegisterAdmin}, nil},
		{"employee cannot register admin", &employee, Request{Action: ActionRegisterAdmin}, domain.ErrForbidden},
		{"admin views stats", &admin, Request{Action: ActionViewStats}, nil},
		{"employee cannot list users", &employee, Request{Action: ActionListUsers}, domain.ErrForbidden},
		{"vendor manages own product", &vendor, Request{Action: ActionManageProduct, OwnerID: 7}, nil},
		{"vendor cannot manage foreign product", &vendor, Request{Action: ActionManageProduct, OwnerID: 8}, domain.ErrForbidden},
		{"admin cannot manage product", &admin, Request{Action: ActionManageProduct, OwnerID: 1}, domain.ErrForbidden},
		{"employee orders for self", &employee, Request{Action: ActionPlaceOrder, OwnerID: 3}, nil},
		{"employee cannot order for other", &employee, Request{Action: ActionPlaceOrder, OwnerID: 4}, domain.ErrForbidden},
		{"vendor cannot place order", &vendor, Request{Action: ActionPlaceOrder, OwnerID: 7}, domain.ErrForbidden},
		{"vendor updates own order", &vendor, Request{Action: ActionUpdateOrderStatus, OwnerID: 7}, nil},
		{"vendor cannot update foreign order", &vendor, Request{Action: ActionUpdateOrderStatus, OwnerID: 9}, domain.ErrForbidden},
		{"admin views any orders", &admin, Request{Action: ActionViewOrders, OwnerID: 3}, nil},
		{"employee views own orders", &employee, Request{Action: ActionViewOrders, OwnerID: 3}, nil},
		{"vendor views own orders", &vendor, Request{Action: ActionViewOrders, OwnerID: 7}, nil},
		{"employee cannot view foreign orders", &employee, Request{Action: ActionViewOrders, OwnerID: 7}, domain.ErrForbidden},
		{"anonymous cannot view orders", nil, Request{Action: ActionViewOrders, OwnerID: 3}, domain.ErrUnauthorized},
		{"unknown action", &admin, Request{Action: "drop_tables"}, domain.ErrForbidden},
	}

	authz := NewRoleAuthorizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.actor != nil {
				ctx = WithActor(ctx, *tt.actor)
			}
			err := authz.Authorize(ctx, tt.req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAllowAll(t *testing.T) {
	assert.NoError(t, AllowAll{}.Authorize(context.Background(), Request{Action: ActionApproveUser}))
}
