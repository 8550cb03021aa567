package models

import (
	"gotix/src/types"
	"time"
)

type Event struct {
	ID          uint              `gorm:"primarykey" json:"id"`
	Title       string            `json:"title,omitempty"`
	Slug        string            `json:"slug,omitempty"`
	About       *string           `json:"about,omitempty"`
	Location    string            `json:"location,omitempty"`
	DateTime    time.Time         `json:"date_time,omitempty"`
	Seats       uint              `json:"seats,omitempty"`
	Status      types.EventStatus `gorm:"default:'draft'" json:"status,omitempty"`
	Featured    bool              `json:"featured"`
	OrganizerID uint              `json:"organizer,omitempty"`

	Organizer   User         `gorm:"foreignKey:organizer_id" json:"-"`
	TicketTypes []TicketType `gorm:"foreignKey:event_id" json:"ticket_types,omitempty"`

	types.Timestamps
}
