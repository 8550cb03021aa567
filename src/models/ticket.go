package models

import (
	"gotix/src/types"
	"time"
)

type Ticket struct {
	ID           uint               `gorm:"primarykey" json:"id"`
	OrderID      uint               `json:"order_id,omitempty"`
	TicketTypeID uint               `json:"ticket_type_id,omitempty"`
	EventID      uint               `json:"event_id,omitempty"`
	QRCode       string             `gorm:"uniqueIndex" json:"qr_code,omitempty"`
	CheckedIn    bool               `json:"checked_in"`
	CheckedInAt  *time.Time         `json:"checked_in_at,omitempty"`
	Status       types.TicketStatus `gorm:"default:'valid'" json:"status,omitempty"`

	Order      Order      `json:"order,omitempty"`
	TicketType TicketType `json:"ticket_type,omitempty"`
	Event      Event      `json:"event,omitempty"`

	types.Timestamps
}
