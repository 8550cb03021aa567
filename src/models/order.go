package models

import (
	"gotix/src/types"

	"github.com/google/uuid"
)

type Order struct {
	ID            uint              `gorm:"primarykey" json:"id"`
	ReferenceID   uuid.UUID         `gorm:"type:uuid" json:"reference_id,omitempty"`
	CustomerID    uint              `json:"customer_id,omitempty"`
	EventID       uint              `json:"event_id,omitempty"`
	TotalAmount   float64           `json:"total_amount"`
	Status        types.OrderStatus `gorm:"default:'pending'" json:"status,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`

	Customer User  `gorm:"foreignKey:customer_id" json:"customer,omitempty"`
	Event    Event `json:"event,omitempty"`
	// Insertion order is purchase order.
	Tickets []Ticket `gorm:"foreignKey:order_id" json:"tickets,omitempty"`

	types.Timestamps
}
