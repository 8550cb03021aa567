package models

import (
	"gotix/src/types"
	"time"
)

type RefundRequest struct {
	ID          uint               `gorm:"primarykey" json:"id"`
	OrderID     uint               `json:"order_id,omitempty"`
	CustomerID  uint               `json:"customer_id,omitempty"`
	Amount      float64            `json:"amount"`
	Status      types.RefundStatus `gorm:"default:'pending'" json:"status,omitempty"`
	Reason      string             `json:"reason,omitempty"`
	RequestedAt time.Time          `json:"requested_at,omitempty"`
	ProcessedAt *time.Time         `json:"processed_at,omitempty"`

	Order Order `json:"order,omitempty"`

	types.Timestamps
}
