// Package policy decides whether the caller of a request may touch a
// resource. Services consult an Authorizer before every write and before
// reading order history.
package policy

import (
	"context"

	"procurement-service/internal/domain"
)

type Action string

const (
	ActionRegisterAdmin     Action = "register_admin"
	ActionApproveUser       Action = "approve_user"
	ActionListUsers         Action = "list_users"
	ActionViewStats         Action = "view_stats"
	ActionManageProduct     Action = "manage_product"
	ActionPlaceOrder        Action = "place_order"
	ActionUpdateOrderStatus Action = "update_order_status"
	ActionViewOrders        Action = "view_orders"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   uint64
	Role domain.Role
}

// Request names the action and, for owned resources, the id of the user
// that owns the resource.
type Request struct {
	Action  Action
	OwnerID uint64
}

type Authorizer interface {
	Authorize(ctx context.Context, req Request) error
}

type actorKey struct{}

func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey{}).(Actor)
	return a, ok
}

// AllowAll lets every request through.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, Request) error { return nil }

// RoleAuthorizer enforces role and ownership rules.
type RoleAuthorizer struct{}

func NewRoleAuthorizer() *RoleAuthorizer { return &RoleAuthorizer{} }

func (RoleAuthorizer) Authorize(ctx context.Context, req Request) error {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	switch req.Action {
	case ActionRegisterAdmin, ActionApproveUser, ActionListUsers, ActionViewStats:
		return requireRole(actor, domain.RoleAdmin)
	case ActionManageProduct, ActionUpdateOrderStatus:
		return requireOwner(actor, domain.RoleVendor, req.OwnerID)
	case ActionPlaceOrder:
		return requireOwner(actor, domain.RoleEmployee, req.OwnerID)
	case ActionViewOrders:
		// Admins see everything; anyone else only the orders they are party to.
		if actor.Role == domain.RoleAdmin || actor.ID == req.OwnerID {
			return nil
		}
		return domain.ErrForbidden
	default:
		return domain.ErrForbidden
	}
}

func requireRole(a Actor, role domain.Role) error {
	if a.Role != role {
		return domain.ErrForbidden
	}
	return nil
}

func requireOwner(a Actor, role domain.Role, ownerID uint64) error {
	if err := requireRole(a, role); err != nil {
		return err
	}
	if a.ID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
