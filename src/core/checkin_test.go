package core

import (
	"gotix/src/models"
	"gotix/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func placeOrder(t *testing.T, d *gorm.DB, qty uint) (*models.Order, models.TicketType) {
	t.Helper()
	customer := seedCustomer(t, d)
	event, tt := seedEventWithType(t, d, "General", 25, 10)
	order, err := CreateOrder(customer.ID, []CartItem{
		{TicketTypeID: tt.ID, EventID: event.ID, Quantity: qty, UnitPrice: tt.Price},
	}, "card", customer.Email)
	if err != nil {
		t.Fatalf("Could not create order due to error: %s", err.Error())
	}
	return order, tt
}

func TestCheckInIsIdempotent(t *testing.T) {
	d := newTestDB(t)
	order, _ := placeOrder(t, d, 1)
	code := order.Tickets[0].QRCode

	ticket, event, err := CheckIn(code, "gate@example.com")
	assert.NoError(t, err)
	assert.NotNil(t, event)
	assert.True(t, ticket.CheckedIn)
	assert.NotNil(t, ticket.CheckedInAt)
	assert.Equal(t, types.TICKET_USED, ticket.Status)
	firstScan := *ticket.CheckedInAt

	_, _, err = CheckIn(code, "gate@example.com")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	var reloaded models.Ticket
	assert.NoError(t, d.Where(&models.Ticket{QRCode: code}).First(&reloaded).Error)
	assert.True(t, reloaded.CheckedIn)
	assert.NotNil(t, reloaded.CheckedInAt)
	assert.WithinDuration(t, firstScan, *reloaded.CheckedInAt, 0)
}

func TestCheckInUnknownCode(t *testing.T) {
	newTestDB(t)

	_, _, err := CheckIn("T999999-DOESNOTEXIST", "gate@example.com")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestCheckInRefundedTicket(t *testing.T) {
	d := newTestDB(t)
	order, _ := placeOrder(t, d, 1)
	ticket := order.Tickets[0]

	assert.NoError(t, d.Model(&models.Ticket{}).Where("id = ?", ticket.ID).Update("status", types.TICKET_REFUNDED).Error)

	_, _, err := CheckIn(ticket.QRCode, "gate@example.com")
	assert.ErrorIs(t, err, ErrTicketRefunded)
}

func TestUndoCheckInRefundedTicket(t *testing.T) {
	d := newTestDB(t)
	order, tt := placeOrder(t, d, 1)
	ticket := order.Tickets[0]

	_, _, err := CheckIn(ticket.QRCode, "gate@example.com")
	assert.NoError(t, err)

	refund, err := RequestRefund(order.ID, order.CustomerID, "cannot attend", "customer@example.com")
	assert.NoError(t, err)
	assert.NoError(t, ApproveRefund(refund.ID, "organizer@example.com"))
	assert.Equal(t, uint(0), reloadTicketType(t, d, tt.ID).Sold)

	// Refunded is terminal: undo must not make the ticket valid again.
	_, err = UndoCheckIn(ticket.ID, "gate@example.com")
	assert.ErrorIs(t, err, ErrTicketRefunded)

	_, _, err = CheckIn(ticket.QRCode, "gate@example.com")
	assert.ErrorIs(t, err, ErrTicketRefunded)

	var reloaded models.Ticket
	assert.NoError(t, d.Where(&models.Ticket{ID: ticket.ID}).First(&reloaded).Error)
	assert.Equal(t, types.TICKET_REFUNDED, reloaded.Status)
	assert.Equal(t, uint(0), reloadTicketType(t, d, tt.ID).Sold)
}

func TestUndoCheckIn(t *testing.T) {
	d := newTestDB(t)
	order, tt := placeOrder(t, d, 1)
	ticket := order.Tickets[0]

	_, err := UndoCheckIn(ticket.ID, "gate@example.com")
	assert.ErrorIs(t, err, ErrNotCheckedIn)

	_, _, err = CheckIn(ticket.QRCode, "gate@example.com")
	assert.NoError(t, err)

	undone, err := UndoCheckIn(ticket.ID, "gate@example.com")
	assert.NoError(t, err)
	assert.False(t, undone.CheckedIn)
	assert.Nil(t, undone.CheckedInAt)
	assert.Equal(t, types.TICKET_VALID, undone.Status)

	// The seat stays sold, only the redemption state is reversed.
	assert.Equal(t, uint(1), reloadTicketType(t, d, tt.ID).Sold)
}
