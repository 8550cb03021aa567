package core

import (
	"errors"
	"fmt"
)

// Caller-visible failures. None of these are swallowed; handlers map each to
// a distinct, actionable message.
var (
	ErrEmptyCart               = errors.New("cart is empty")
	ErrInvalidQuantity         = errors.New("cart quantities must be greater than zero")
	ErrMixedEventCart          = errors.New("cart items must belong to a single event")
	ErrOutOfStock              = errors.New("one or more cart items are out of stock")
	ErrDuplicateQRCode         = errors.New("generated QR code already exists")
	ErrTicketIssuanceFailed    = errors.New("could not issue tickets with unique QR codes")
	ErrTicketNotFound          = errors.New("ticket not found")
	ErrTicketTypeNotFound      = errors.New("ticket type not found")
	ErrAlreadyCheckedIn        = errors.New("ticket is already checked in")
	ErrNotCheckedIn            = errors.New("ticket is not checked in")
	ErrTicketRefunded          = errors.New("ticket has been refunded")
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderNotRefundable      = errors.New("only completed orders can be refunded")
	ErrRefundNotFound          = errors.New("refund request not found")
	ErrRefundAlreadyRequested  = errors.New("order already has an active refund request")
	ErrInvalidRefundTransition = errors.New("refund request is no longer pending")
	ErrInvalidRestock          = errors.New("restock would drive sold counter below zero")
)

// InsufficientInventoryError reports how many units remain so callers can
// surface an "only N tickets remain" message.
type InsufficientInventoryError struct {
	TicketTypeID uint
	Requested    uint
	Remaining    uint
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for ticket type [%d]: requested %d, only %d remain", e.TicketTypeID, e.Requested, e.Remaining)
}

func IsInsufficientInventory(err error) bool {
	var target *InsufficientInventoryError
	return errors.As(err, &target)
}
