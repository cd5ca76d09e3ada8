package boxoffice

import (
	"errors"
	"fmt"
)

// Caller is anything that answers dynamic messages. A stunt double satisfies
// it; so would any other message-dispatching object.
type Caller interface {
	Invoke(method string, args ...any) (any, error)
}

// TicketSummary renders a one-line description of a ticket by asking it for
// its title and price.
func TicketSummary(ticket Caller) (string, error) {
	title, err := ticket.Invoke("title")
	if err != nil {
		return "", fmt.Errorf("failed to describe ticket: %w", err)
	}

	price, err := ticket.Invoke("price")
	if err != nil {
		return "", fmt.Errorf("failed to describe ticket: %w", err)
	}

	return fmt.Sprintf("%v ($%v)", title, price), nil
}

// IsOpen reports whether the theater answers "open" with true.
func IsOpen(theater Caller) (bool, error) {
	open, err := theater.Invoke("open")
	if err != nil {
		return false, fmt.Errorf("failed to check theater: %w", err)
	}

	isOpen, ok := open.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %T", errNotABool, open)
	}

	return isOpen, nil
}

// unexported variables.
var errNotABool = errors.New(`theater answered "open" with a non-bool`)
