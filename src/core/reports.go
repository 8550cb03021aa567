package core

import (
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/types"
	"time"
)

// Read-only projections consumed by the dashboards and the export
// collaborator. No side effects.

func GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	dbi := db.GetDb()
	err := dbi.
		Model(&models.Order{}).
		Preload("Tickets").
		Order("created_at DESC").
		Find(&orders).
		Error
	return orders, err
}

func GetOrdersByCustomerID(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	dbi := db.GetDb()
	err := dbi.
		Model(&models.Order{}).
		Where(&models.Order{CustomerID: customerID}).
		Preload("Tickets").
		Order("created_at DESC").
		Find(&orders).
		Error
	return orders, err
}

func GetTicketsByEventID(eventID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	dbi := db.GetDb()
	err := dbi.
		Model(&models.Ticket{}).
		Where(&models.Ticket{EventID: eventID}).
		Preload("TicketType").
		Order("id").
		Find(&tickets).
		Error
	return tickets, err
}

func GetRefundsByEventID(eventID uint) ([]models.RefundRequest, error) {
	var refunds []models.RefundRequest
	dbi := db.GetDb()
	err := dbi.
		Model(&models.RefundRequest{}).
		Joins("JOIN orders ON orders.id = refund_requests.order_id").
		Where("orders.event_id = ?", eventID).
		Preload("Order").
		Order("refund_requests.requested_at DESC").
		Find(&refunds).
		Error
	return refunds, err
}

// GetAttendeeRows supplies the records behind the attendee CSV export. The
// downstream collaborator does the formatting.
func GetAttendeeRows(eventID uint) ([]types.AttendeeRow, error) {
	tickets, err := GetTicketsByEventID(eventID)
	if err != nil {
		return nil, err
	}
	rows := make([]types.AttendeeRow, 0, len(tickets))
	dbi := db.GetDb()
	for _, t := range tickets {
		var order models.Order
		if err := dbi.
			Where(&models.Order{ID: t.OrderID}).
			Preload("Customer").
			First(&order).
			Error; err != nil {
			return nil, err
		}
		rows = append(rows, types.AttendeeRow{
			Name:           order.Customer.Name,
			Email:          order.Customer.Email,
			TicketTypeName: t.TicketType.Name,
			PurchaseDate:   order.CreatedAt.Format(time.RFC3339),
			QRCode:         t.QRCode,
		})
	}
	return rows, nil
}
