package order

import "marketplace/internal/core/domain/model/kernel"

// transitionTable maps current status -> next status -> roles allowed to trigger the edge.
// Adding a transition or a role is a data change here, not a new code path.
var transitionTable = map[Status]map[Status][]kernel.Role{
	Pending: {
		Confirmed: {kernel.RoleOwner},
		Cancelled: {kernel.RoleCustomer, kernel.RoleOwner, kernel.RoleSystem},
	},
	Confirmed: {
		Preparing: {kernel.RoleOwner},
		Cancelled: {kernel.RoleCustomer, kernel.RoleOwner, kernel.RoleSystem},
	},
	Preparing: {
		Ready:     {kernel.RoleOwner},
		Cancelled: {kernel.RoleCustomer, kernel.RoleOwner, kernel.RoleSystem},
	},
	Ready: {
		Shipping:  {kernel.RoleShipper},
		Cancelled: {kernel.RoleCustomer, kernel.RoleOwner, kernel.RoleSystem},
	},
	Shipping: {
		Delivered: {kernel.RoleShipper},
	},
	Delivered: {},
	Cancelled: {},
}

// IsValidTransition reports whether the edge current -> next exists for any role.
// It is total: unknown statuses simply have no edges.
func IsValidTransition(current, next Status) bool {
	_, ok := transitionTable[current][next]
	return ok
}

// IsPermitted reports whether role may trigger current -> next.
func IsPermitted(current, next Status, role kernel.Role) bool {
	for _, allowed := range transitionTable[current][next] {
		if allowed == role {
			return true
		}
	}
	return false
}

// AllowedTargets lists the statuses role may move an order to from current, in lifecycle order.
func AllowedTargets(current Status, role kernel.Role) []Status {
	targets := make([]Status, 0)
	for _, next := range AllStatuses() {
		if IsPermitted(current, next, role) {
			targets = append(targets, next)
		}
	}
	return targets
}

// ValidateTransition returns InvalidTransitionError when the edge does not exist
// and ActorNotPermittedError when it exists but role may not trigger it.
func ValidateTransition(current, next Status, role kernel.Role) error {
	if !IsValidTransition(current, next) {
		return &InvalidTransitionError{Current: current, Requested: next}
	}
	if !IsPermitted(current, next, role) {
		return &ActorNotPermittedError{Role: role, Current: current, Requested: next}
	}
	return nil
}
