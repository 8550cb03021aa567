package core

import (
	"errors"
	"fmt"
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/monitoring"
	"gotix/src/types"
	"sort"
	"time"

	"gorm.io/gorm"
)

// RequestRefund opens a pending refund request for a completed order. An
// order can have at most one active (non-rejected) request at a time; the
// amount is the order's full total.
func RequestRefund(orderID uint, customerID uint, reason string, actor string) (*models.RefundRequest, error) {
	var refund models.RefundRequest
	dbi := db.GetDb()
	err := dbi.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.
			Where(&models.Order{ID: orderID, CustomerID: customerID}).
			First(&order).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != types.ORDER_COMPLETED {
			return ErrOrderNotRefundable
		}
		var active int64
		if err := tx.
			Model(&models.RefundRequest{}).
			Where("order_id = ? AND status <> ?", orderID, types.REFUND_REJECTED).
			Count(&active).
			Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrRefundAlreadyRequested
		}
		refund = models.RefundRequest{
			OrderID:     orderID,
			CustomerID:  customerID,
			Amount:      order.TotalAmount,
			Status:      types.REFUND_PENDING,
			Reason:      reason,
			RequestedAt: time.Now(),
		}
		if err := tx.Create(&refund).Error; err != nil {
			return err
		}
		desc := fmt.Sprintf("Refund requested for order [%d], amount %.2f", orderID, refund.Amount)
		return AppendActivity(tx, types.ACTIVITY_REFUND, actor, desc)
	})
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

// ApproveRefund processes a pending refund: every ticket on the order
// becomes refunded, the capacity those tickets consumed is restored through
// the ledger, and the order moves to refunded. The whole transition happens
// exactly once, all or nothing.
func ApproveRefund(refundID uint, actor string) error {
	dbi := db.GetDb()

	var refund models.RefundRequest
	if err := dbi.
		Where(&models.RefundRequest{ID: refundID}).
		First(&refund).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRefundNotFound
		}
		return err
	}
	if refund.Status != types.REFUND_PENDING {
		return ErrInvalidRefundTransition
	}

	var tickets []models.Ticket
	if err := dbi.
		Where(&models.Ticket{OrderID: refund.OrderID}).
		Order("id").
		Find(&tickets).
		Error; err != nil {
		return err
	}
	perType := map[uint]uint{}
	for _, t := range tickets {
		perType[t.TicketTypeID]++
	}

	// Restocks run inside the same transaction as the status flips, so the
	// type locks are taken up front, in sorted order to avoid deadlock with
	// other multi-key writers.
	typeIDs := make([]uint, 0, len(perType))
	for id := range perType {
		typeIDs = append(typeIDs, id)
	}
	sort.Slice(typeIDs, func(i, j int) bool { return typeIDs[i] < typeIDs[j] })
	for _, id := range typeIDs {
		mu := lockTicketType(id)
		mu.Lock()
		defer mu.Unlock()
	}

	err := dbi.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.
			Model(&models.RefundRequest{}).
			Where("id = ? AND status = ?", refundID, types.REFUND_PENDING).
			Updates(map[string]any{
				"status":       types.REFUND_APPROVED,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidRefundTransition
		}
		if err := tx.
			Model(&models.Ticket{}).
			Where(&models.Ticket{OrderID: refund.OrderID}).
			Update("status", types.TICKET_REFUNDED).
			Error; err != nil {
			return err
		}
		for _, id := range typeIDs {
			if err := restockTx(tx, id, perType[id]); err != nil {
				return err
			}
		}
		res = tx.
			Model(&models.Order{}).
			Where("id = ? AND status = ?", refund.OrderID, types.ORDER_COMPLETED).
			Update("status", types.ORDER_REFUNDED)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotRefundable
		}
		desc := fmt.Sprintf("Refund [%d] approved for order [%d], %d ticket(s) restocked", refundID, refund.OrderID, len(tickets))
		return AppendActivity(tx, types.ACTIVITY_REFUND, actor, desc)
	})
	if err != nil {
		return err
	}
	for _, id := range typeIDs {
		publishSold(id)
	}
	monitoring.RecordRefundDecision("approved")
	return nil
}

// RejectRefund closes a pending refund request without touching inventory
// or the order.
func RejectRefund(refundID uint, actor string) error {
	dbi := db.GetDb()
	err := dbi.Transaction(func(tx *gorm.DB) error {
		var refund models.RefundRequest
		if err := tx.
			Where(&models.RefundRequest{ID: refundID}).
			First(&refund).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRefundNotFound
			}
			return err
		}
		now := time.Now()
		res := tx.
			Model(&models.RefundRequest{}).
			Where("id = ? AND status = ?", refundID, types.REFUND_PENDING).
			Updates(map[string]any{
				"status":       types.REFUND_REJECTED,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidRefundTransition
		}
		desc := fmt.Sprintf("Refund [%d] rejected for order [%d]", refundID, refund.OrderID)
		return AppendActivity(tx, types.ACTIVITY_REFUND, actor, desc)
	})
	if err != nil {
		return err
	}
	monitoring.RecordRefundDecision("rejected")
	return nil
}
