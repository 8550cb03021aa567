package core

import (
	"gotix/src/models"
	"gotix/src/types"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	d := newTestDB(t)
	customer := seedCustomer(t, d)

	_, err := CreateOrder(customer.ID, nil, "card", customer.Email)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderRejectsZeroQuantity(t *testing.T) {
	d := newTestDB(t)
	customer := seedCustomer(t, d)
	event, tt := seedEventWithType(t, d, "General", 25, 10)

	_, err := CreateOrder(customer.ID, []CartItem{
		{TicketTypeID: tt.ID, EventID: event.ID, Quantity: 0, UnitPrice: tt.Price},
	}, "card", customer.Email)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	reloaded := reloadTicketType(t, d, tt.ID)
	assert.Equal(t, uint(0), reloaded.Sold)
}

func TestCreateOrderIssuesTickets(t *testing.T) {
	d := newTestDB(t)
	customer := seedCustomer(t, d)
	event, general := seedEventWithType(t, d, "General", 10.50, 10)
	vip := models.TicketType{EventID: event.ID, Name: "VIP", Price: 20.25, Quantity: 5}
	assert.NoError(t, d.Create(&vip).Error)

	order, err := CreateOrder(customer.ID, []CartItem{
		{TicketTypeID: general.ID, EventID: event.ID, Quantity: 2, UnitPrice: general.Price},
		{TicketTypeID: vip.ID, EventID: event.ID, Quantity: 1, UnitPrice: vip.Price},
	}, "card", customer.Email)
	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.Equal(t, types.ORDER_COMPLETED, order.Status)
	assert.InDelta(t, 41.25, order.TotalAmount, 0.001)
	assert.Len(t, order.Tickets, 3)

	codes := map[string]bool{}
	for _, ticket := range order.Tickets {
		assert.NotEmpty(t, ticket.QRCode)
		assert.False(t, ticket.CheckedIn)
		assert.False(t, codes[ticket.QRCode], "duplicate QR code issued: %s", ticket.QRCode)
		codes[ticket.QRCode] = true
	}

	assert.Equal(t, uint(2), reloadTicketType(t, d, general.ID).Sold)
	assert.Equal(t, uint(1), reloadTicketType(t, d, vip.ID).Sold)

	var activityCount int64
	assert.NoError(t, d.Model(&models.ActivityEntry{}).Where("type = ?", types.ACTIVITY_ORDER_CREATION).Count(&activityCount).Error)
	assert.Equal(t, int64(1), activityCount)
}

func TestCreateOrderRollsBackWhenAnyLineIsShort(t *testing.T) {
	d := newTestDB(t)
	customer := seedCustomer(t, d)
	event, general := seedEventWithType(t, d, "General", 10, 5)
	vip := models.TicketType{EventID: event.ID, Name: "VIP", Price: 50, Quantity: 1}
	assert.NoError(t, d.Create(&vip).Error)

	_, err := CreateOrder(customer.ID, []CartItem{
		{TicketTypeID: general.ID, EventID: event.ID, Quantity: 2, UnitPrice: general.Price},
		{TicketTypeID: vip.ID, EventID: event.ID, Quantity: 2, UnitPrice: vip.Price},
	}, "card", customer.Email)
	assert.ErrorIs(t, err, ErrOutOfStock)

	// The first line's reservation is compensated, nothing is charged.
	assert.Equal(t, uint(0), reloadTicketType(t, d, general.ID).Sold)
	assert.Equal(t, uint(0), reloadTicketType(t, d, vip.ID).Sold)

	var orderCount int64
	assert.NoError(t, d.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)

	var ticketCount int64
	assert.NoError(t, d.Model(&models.Ticket{}).Count(&ticketCount).Error)
	assert.Equal(t, int64(0), ticketCount)
}

func TestConcurrentOrdersNeverOversell(t *testing.T) {
	d := newTestDB(t)
	customerA := seedCustomer(t, d)
	customerB := seedCustomer(t, d)
	event, tt := seedEventWithType(t, d, "General", 25, 10)
	assert.NoError(t, Reserve(tt.ID, 8))

	// Two remain; two buyers race for two each.
	var wg sync.WaitGroup
	results := make(chan error, 2)
	for _, customer := range []models.User{customerA, customerB} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := CreateOrder(customer.ID, []CartItem{
				{TicketTypeID: tt.ID, EventID: event.ID, Quantity: 2, UnitPrice: tt.Price},
			}, "card", customer.Email)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrOutOfStock)
			failed++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	reloaded := reloadTicketType(t, d, tt.ID)
	assert.Equal(t, uint(10), reloaded.Sold)

	var ticketCount int64
	assert.NoError(t, d.Model(&models.Ticket{}).Count(&ticketCount).Error)
	assert.Equal(t, int64(2), ticketCount)
}

func TestCreateOrderRejectsMixedEvents(t *testing.T) {
	d := newTestDB(t)
	customer := seedCustomer(t, d)
	eventA, ttA := seedEventWithType(t, d, "General", 10, 5)
	eventB, ttB := seedEventWithType(t, d, "General", 10, 5)

	_, err := CreateOrder(customer.ID, []CartItem{
		{TicketTypeID: ttA.ID, EventID: eventA.ID, Quantity: 1, UnitPrice: ttA.Price},
		{TicketTypeID: ttB.ID, EventID: eventB.ID, Quantity: 1, UnitPrice: ttB.Price},
	}, "card", customer.Email)
	assert.ErrorIs(t, err, ErrMixedEventCart)
	assert.Equal(t, uint(0), reloadTicketType(t, d, ttA.ID).Sold)
	assert.Equal(t, uint(0), reloadTicketType(t, d, ttB.ID).Sold)
}
