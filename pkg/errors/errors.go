package errors

import "fmt"

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden is returned when an authenticated caller is not on the
// admin allow-list
type ErrForbidden struct {
	Email string
}

func (e *ErrForbidden) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("email not authorized: %s", e.Email)
	}
	return "forbidden"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConfigurationNotFound is returned when a price lookup references a
// vessel, wax, or wick name that is not in the pricing configuration.
// Pricing never silently substitutes zero for an unknown component.
type ErrConfigurationNotFound struct {
	Kind string // "vessel" | "wax" | "wick"
	Name string
}

func (e *ErrConfigurationNotFound) Error() string {
	return fmt.Sprintf("%s not in pricing configuration: %s", e.Kind, e.Name)
}

// ErrProvider is returned when an external provider fails at the transport
// level (DNS, timeout, non-200 status). Body carries the raw provider text
// for operator debugging.
type ErrProvider struct {
	Provider string
	Status   int
	Body     string
	Err      error
}

func (e *ErrProvider) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s provider error: status %d: %s", e.Provider, e.Status, e.Body)
}

func (e *ErrProvider) Unwrap() error { return e.Err }

// ErrGraphQL is returned when a provider answers 200 but the response carries
// a GraphQL errors array. Handlers surface the first message with HTTP 400.
type ErrGraphQL struct {
	Provider string
	Messages []string
}

func (e *ErrGraphQL) Error() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return fmt.Sprintf("%s graphql error", e.Provider)
}

// First returns the first GraphQL error message.
func (e *ErrGraphQL) First() string {
	if len(e.Messages) > 0 {
		return e.Messages[0]
	}
	return "graphql error"
}
