package auth

import "errors"

var (
	ErrAuthenticationRequired = errors.New("authentication credentials were not provided")
	ErrPermissionDenied       = errors.New("you do not have permission to perform this action")
)

// Action is what a caller wants to do with a resource
type Action string

const (
	ActionRead  Action = "read"
	ActionWrite Action = "write"
)

// Resource names a group of endpoints sharing a permission policy
type Resource string

const (
	ResourceAirport      Resource = "airport"
	ResourceRoute        Resource = "route"
	ResourceAirplaneType Resource = "airplane_type"
	ResourceAirplane     Resource = "airplane"
	ResourceCrew         Resource = "crew"
	ResourceFlight       Resource = "flight"
	ResourceOrder        Resource = "order"
)

type policy func(id Identity, action Action) bool

// adminOrReadOnly lets any user read and only admins write
func adminOrReadOnly(id Identity, action Action) bool {
	if id.IsAdmin() {
		return true
	}
	return action == ActionRead && id.Authenticated()
}

func adminOnly(id Identity, _ Action) bool {
	return id.IsAdmin()
}

func authenticated(id Identity, _ Action) bool {
	return id.Authenticated()
}

var policies = map[Resource]policy{
	ResourceAirport:      adminOrReadOnly,
	ResourceRoute:        adminOrReadOnly,
	ResourceAirplane:     adminOrReadOnly,
	ResourceFlight:       adminOrReadOnly,
	ResourceAirplaneType: adminOnly,
	ResourceCrew:         adminOnly,
	ResourceOrder:        authenticated,
}

// CanPerform reports whether the identity may perform action on resource.
// Unknown resources are denied.
func CanPerform(id Identity, action Action, resource Resource) bool {
	p, ok := policies[resource]
	if !ok {
		return false
	}
	return p(id, action)
}

// Check is CanPerform returning the error to send back. Anonymous callers get
// ErrAuthenticationRequired, known users ErrPermissionDenied.
func Check(id Identity, action Action, resource Resource) error {
	if CanPerform(id, action, resource) {
		return nil
	}
	if !id.Authenticated() {
		return ErrAuthenticationRequired
	}
	return ErrPermissionDenied
}
