package models

import "gotix/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `gorm:"uniqueIndex" json:"email,omitempty"`
	Role  string `gorm:"default:'customer'" json:"role,omitempty"`

	Orders []Order `gorm:"foreignKey:customer_id" json:"orders,omitempty"`

	types.Timestamps
}
