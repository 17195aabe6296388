package arch

import "fmt"

// ComponentType identifies one of the fixed architecture slots that every
// generated diagram contains. The set is closed: a diagram always holds
// exactly one component per type, laid out in canonical order.
type ComponentType string

const (
	// TypeUserAction is the originating user interaction (click, form submit).
	TypeUserAction ComponentType = "USER_ACTION"

	// TypeClientCode is the browser or client-side code issuing the request.
	TypeClientCode ComponentType = "CLIENT_CODE"

	// TypeFirewall is the network perimeter filter in front of the stack.
	TypeFirewall ComponentType = "FIREWALL"

	// TypeWAF is the web application firewall inspecting HTTP traffic.
	TypeWAF ComponentType = "WAF"

	// TypeLoadBalancer distributes incoming traffic across backends.
	TypeLoadBalancer ComponentType = "LOAD_BALANCER"

	// TypeAPIGateway routes and manages API traffic.
	TypeAPIGateway ComponentType = "API_GATEWAY"

	// TypeAPIEndpoint is the concrete route handling the request.
	TypeAPIEndpoint ComponentType = "API_ENDPOINT"

	// TypeBackendLogic is the server-side business logic.
	TypeBackendLogic ComponentType = "BACKEND_LOGIC"

	// TypeDatabase is the persistent data store.
	TypeDatabase ComponentType = "DATABASE"

	// TypeEventHandler reacts to asynchronous events emitted by the backend.
	TypeEventHandler ComponentType = "EVENT_HANDLER"

	// TypeViewUpdate is the client-side view refresh closing the loop.
	TypeViewUpdate ComponentType = "VIEW_UPDATE"
)

// canonicalOrder lists every component type in diagram order. The first
// mainFlowCount entries form the request path from user to database; the
// remainder are auxiliary nodes placed off the main row.
var canonicalOrder = []ComponentType{
	TypeUserAction,
	TypeClientCode,
	TypeFirewall,
	TypeWAF,
	TypeLoadBalancer,
	TypeAPIGateway,
	TypeAPIEndpoint,
	TypeBackendLogic,
	TypeDatabase,
	TypeEventHandler,
	TypeViewUpdate,
}

const mainFlowCount = 9

// IsValid returns true if the component type is a recognized value.
func (t ComponentType) IsValid() bool {
	return t.Ordinal() >= 0
}

// String returns the string representation of the component type.
func (t ComponentType) String() string {
	return string(t)
}

// Ordinal returns the position of the type in canonical order, or -1 for an
// unrecognized type.
func (t ComponentType) Ordinal() int {
	for i, ct := range canonicalOrder {
		if ct == t {
			return i
		}
	}
	return -1
}

// IsMainFlow reports whether the type belongs to the request path from
// USER_ACTION through DATABASE.
func (t ComponentType) IsMainFlow() bool {
	ord := t.Ordinal()
	return ord >= 0 && ord < mainFlowCount
}

// DisplayName returns a human-readable name for the component type.
func (t ComponentType) DisplayName() string {
	switch t {
	case TypeUserAction:
		return "User Action"
	case TypeClientCode:
		return "Client Code"
	case TypeFirewall:
		return "Firewall"
	case TypeWAF:
		return "WAF"
	case TypeLoadBalancer:
		return "Load Balancer"
	case TypeAPIGateway:
		return "API Gateway"
	case TypeAPIEndpoint:
		return "API Endpoint"
	case TypeBackendLogic:
		return "Backend Logic"
	case TypeDatabase:
		return "Database"
	case TypeEventHandler:
		return "Event Handler"
	case TypeViewUpdate:
		return "View Update"
	default:
		return string(t)
	}
}

// ParseComponentType parses a string into a ComponentType value.
// Returns an error if the string is not a valid component type.
func ParseComponentType(s string) (ComponentType, error) {
	t := ComponentType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid component type: %s", s)
	}
	return t, nil
}

// AllComponentTypes returns every component type in canonical order.
func AllComponentTypes() []ComponentType {
	out := make([]ComponentType, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// MainFlowTypes returns the request-path types in canonical order, from
// USER_ACTION through DATABASE.
func MainFlowTypes() []ComponentType {
	out := make([]ComponentType, mainFlowCount)
	copy(out, canonicalOrder[:mainFlowCount])
	return out
}

// AuxiliaryTypes returns the types placed off the main row.
func AuxiliaryTypes() []ComponentType {
	out := make([]ComponentType, len(canonicalOrder)-mainFlowCount)
	copy(out, canonicalOrder[mainFlowCount:])
	return out
}
