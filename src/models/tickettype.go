package models

import "gotix/src/types"

// TicketType is a purchasable category within an event with fixed capacity.
// Sold is mutated only through the inventory ledger; 0 <= Sold <= Quantity
// holds at all times.
type TicketType struct {
	ID       uint    `gorm:"primarykey" json:"id"`
	EventID  uint    `json:"event_id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Price    float32 `json:"price"`
	Quantity uint    `json:"quantity"`
	Sold     uint    `gorm:"default:0" json:"sold"`

	Event Event `json:"event,omitempty"`

	types.Timestamps
}

func (t *TicketType) Remaining() uint {
	return t.Quantity - t.Sold
}
