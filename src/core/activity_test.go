package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityFeedOrderingAndLimit(t *testing.T) {
	d := newTestDB(t)

	order, _ := placeOrder(t, d, 1)
	_, _, err := CheckIn(order.Tickets[0].QRCode, "gate@example.com")
	assert.NoError(t, err)

	entries, err := ActivityFeed(50)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	// Newest first.
	assert.False(t, entries[0].CreatedAt.Before(entries[1].CreatedAt))

	entries, err = ActivityFeed(1)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}
