package concessions

import (
	"errors"
	"fmt"
)

// Register is anything that answers dynamic messages, such as a stunt double
// standing in for a point-of-sale register.
type Register interface {
	Invoke(method string, args ...any) (any, error)
}

// RingUp totals an order by sending "total" with the item prices, then sends
// "printReceipt" with the total.
func RingUp(register Register, prices ...any) (float64, error) {
	answer, err := register.Invoke("total", prices...)
	if err != nil {
		return 0, fmt.Errorf("failed to ring up order: %w", err)
	}

	total, ok := answer.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %T", errBadTotal, answer)
	}

	if _, err := register.Invoke("printReceipt", total); err != nil {
		return 0, fmt.Errorf("failed to ring up order: %w", err)
	}

	return total, nil
}

// NextTicketNumber pulls the next number from the register's counter.
func NextTicketNumber(register Register) (int, error) {
	answer, err := register.Invoke("nextTicket")
	if err != nil {
		return 0, fmt.Errorf("failed to issue ticket number: %w", err)
	}

	number, ok := answer.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %T", errBadTicket, answer)
	}

	return number, nil
}

// unexported variables.
var (
	errBadTotal  = errors.New(`register answered "total" with a non-float64`)
	errBadTicket = errors.New(`register answered "nextTicket" with a non-int`)
)
