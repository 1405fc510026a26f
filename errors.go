package ioc

import "fmt"

// DoesNotConformError represents a value whose concrete type does not
// satisfy the declared interface.
type DoesNotConformError struct {
	Actual   string
	Expected string
}

func (e *DoesNotConformError) Error() string {
	return fmt.Sprintf("Type <%s> doesn't conform to interface <%s>.", e.Actual, e.Expected)
}

// NotRegisteredError represents a resolution or overwrite of a type with no
// matching binding.
type NotRegisteredError struct {
	Type string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("Type <%s> is not registered.", e.Type)
}

// AlreadyRegisteredError represents a registration of a type that is
// already bound.
type AlreadyRegisteredError struct {
	Type string
}

func (e *AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("Type <%s> is already registered.", e.Type)
}
