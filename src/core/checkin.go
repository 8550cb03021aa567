package core

import (
	"errors"
	"fmt"
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/monitoring"
	"gotix/src/types"
	"time"

	"gorm.io/gorm"
)

// CheckIn resolves a scanned code to a Ticket and redeems it. Repeated calls
// with the same code after the first success fail with ErrAlreadyCheckedIn
// and leave state unchanged. Returns the ticket and its parent event for
// display at the door.
func CheckIn(code string, actor string) (*models.Ticket, *models.Event, error) {
	var ticket models.Ticket
	var event models.Event
	dbi := db.GetDb()
	err := dbi.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Ticket{QRCode: code}).
			First(&ticket).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		if ticket.Status == types.TICKET_REFUNDED {
			return ErrTicketRefunded
		}
		if ticket.CheckedIn {
			return ErrAlreadyCheckedIn
		}
		now := time.Now()
		// Conditional update so two concurrent scans of the same code
		// cannot both succeed.
		res := tx.
			Model(&models.Ticket{}).
			Where("id = ? AND checked_in = ?", ticket.ID, false).
			Updates(map[string]any{
				"checked_in":    true,
				"checked_in_at": now,
				"status":        types.TICKET_USED,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCheckedIn
		}
		ticket.CheckedIn = true
		ticket.CheckedInAt = &now
		ticket.Status = types.TICKET_USED

		if err := tx.
			Where(&models.Event{ID: ticket.EventID}).
			First(&event).
			Error; err != nil {
			return err
		}
		desc := fmt.Sprintf("Ticket [%s] checked in for event [%s]", ticket.QRCode, event.Title)
		return AppendActivity(tx, types.ACTIVITY_CHECKIN, actor, desc)
	})
	if err != nil {
		return nil, nil, err
	}
	monitoring.RecordCheckIn()
	return &ticket, &event, nil
}

// UndoCheckIn reverses a mis-scan. The seat stays sold — inventory is not
// touched.
func UndoCheckIn(ticketID uint, actor string) (*models.Ticket, error) {
	var ticket models.Ticket
	dbi := db.GetDb()
	err := dbi.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Ticket{ID: ticketID}).
			First(&ticket).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}
		// Refunded is terminal; undo must not resurrect a redeemable ticket.
		if ticket.Status == types.TICKET_REFUNDED {
			return ErrTicketRefunded
		}
		if !ticket.CheckedIn {
			return ErrNotCheckedIn
		}
		res := tx.
			Model(&models.Ticket{}).
			Where("id = ? AND checked_in = ? AND status = ?", ticketID, true, types.TICKET_USED).
			Updates(map[string]any{
				"checked_in":    false,
				"checked_in_at": nil,
				"status":        types.TICKET_VALID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotCheckedIn
		}
		ticket.CheckedIn = false
		ticket.CheckedInAt = nil
		ticket.Status = types.TICKET_VALID

		desc := fmt.Sprintf("Check-in undone for ticket [%s]", ticket.QRCode)
		return AppendActivity(tx, types.ACTIVITY_CHECKIN, actor, desc)
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
