// Package access is the role policy consulted before every caller-facing
// operation.
package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/CoffeePOS_Go/internal/domain"
)

// Operation names a guarded action
type Operation string

const (
	OpPurchase          Operation = "purchase"
	OpListOwnOrders     Operation = "list_own_orders"
	OpListAllOrders     Operation = "list_all_orders"
	OpCompleteOrder     Operation = "complete_order"
	OpPickUpOrder       Operation = "pick_up_order"
	OpRead              Operation = "read"
	OpRestock           Operation = "restock"
	OpManageIngredients Operation = "manage_ingredients"
	OpManageRecipes     Operation = "manage_recipes"
	OpRegisterCustomer  Operation = "register_customer"
	OpRegisterStaff     Operation = "register_staff"
)

var (
	everyone   = []domain.Role{domain.RoleCustomer, domain.RoleStaff, domain.RoleManager}
	employees  = []domain.Role{domain.RoleStaff, domain.RoleManager}
	customers  = []domain.Role{domain.RoleCustomer}
	management = []domain.Role{domain.RoleManager}
)

// policy lists the roles allowed per operation. Operations missing from the
// table are denied.
var policy = map[Operation][]domain.Role{
	OpPurchase:          customers,
	OpListOwnOrders:     customers,
	OpListAllOrders:     employees,
	OpCompleteOrder:     employees,
	OpPickUpOrder:       everyone,
	OpRead:              everyone,
	OpRestock:           employees,
	OpManageIngredients: employees,
	OpManageRecipes:     management,
	OpRegisterStaff:     management,
}

// public operations need no authentication at all
var public = map[Operation]bool{
	OpRegisterCustomer: true,
}

// Authorize returns nil when caller may perform op
func Authorize(caller domain.Caller, op Operation) error {
	if public[op] {
		return nil
	}
	if !caller.Authenticated {
		return fmt.Errorf("%w: %s requires authentication", domain.ErrUnauthorized, op)
	}
	allowed, ok := policy[op]
	if !ok {
		return fmt.Errorf("%w: unknown operation %s", domain.ErrUnauthorized, op)
	}
	for _, r := range allowed {
		if caller.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: %s requires role %s", domain.ErrUnauthorized, op, roleList(allowed))
}

// AuthorizePickup allows employees to hand over any order and customers only
// their own.
func AuthorizePickup(caller domain.Caller, order domain.Order) error {
	if err := Authorize(caller, OpPickUpOrder); err != nil {
		return err
	}
	if caller.Role == domain.RoleCustomer && caller.UserID != order.CustomerID {
		return fmt.Errorf("%w: order %s belongs to another customer", domain.ErrUnauthorized, order.ID)
	}
	return nil
}

// AuthorizeRegistration gates creating an account with the given role
func AuthorizeRegistration(caller domain.Caller, role domain.Role) error {
	if role == domain.RoleCustomer {
		return Authorize(caller, OpRegisterCustomer)
	}
	return Authorize(caller, OpRegisterStaff)
}

func roleList(roles []domain.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	return strings.Join(names, " or ")
}

type ctxKey struct{}

// WithCaller stores the resolved caller in ctx
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, caller)
}

// CallerFromContext returns the caller stored in ctx, or an anonymous one
func CallerFromContext(ctx context.Context) domain.Caller {
	if c, ok := ctx.Value(ctxKey{}).(domain.Caller); ok {
		return c
	}
	return domain.Anonymous()
}
