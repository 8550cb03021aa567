package core

import (
	"fmt"
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/monitoring"
	"gotix/src/types"
	"gotix/src/utils"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem is one line of a cart as supplied by the cart collaborator.
type CartItem struct {
	TicketTypeID uint
	EventID      uint
	Quantity     uint
	UnitPrice    float32
}

// maxQRCodeAttempts bounds the internal regeneration retries before ticket
// issuance is reported as failed.
const maxQRCodeAttempts = 5

// CreateOrder converts a cart into a completed Order plus one Ticket per
// purchased unit. Reservations are taken line by line in submitted order;
// if any line cannot be satisfied every prior reservation is restocked and
// the whole call fails — the cart is never partially charged.
func CreateOrder(customerID uint, items []CartItem, paymentMethod string, actor string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	eventID := items[0].EventID
	for _, v := range items {
		if v.Quantity == 0 {
			return nil, ErrInvalidQuantity
		}
		if v.EventID != eventID {
			return nil, ErrMixedEventCart
		}
	}

	reserved := map[uint]uint{}
	for _, v := range items {
		if err := Reserve(v.TicketTypeID, v.Quantity); err != nil {
			compensate(reserved)
			if IsInsufficientInventory(err) {
				return nil, fmt.Errorf("%w: %s", ErrOutOfStock, err.Error())
			}
			return nil, err
		}
		reserved[v.TicketTypeID] += v.Quantity
	}

	total := decimal.Zero
	for _, v := range items {
		line := decimal.NewFromFloat32(v.UnitPrice).Mul(decimal.NewFromInt(int64(v.Quantity)))
		total = total.Add(line)
	}

	order := models.Order{
		ReferenceID:   uuid.New(),
		CustomerID:    customerID,
		EventID:       eventID,
		TotalAmount:   total.InexactFloat64(),
		Status:        types.ORDER_COMPLETED,
		PaymentMethod: paymentMethod,
	}

	dbi := db.GetDb()
	err := dbi.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, v := range items {
			for range v.Quantity {
				code, err := issueUniqueCode(tx)
				if err != nil {
					return err
				}
				ticket := models.Ticket{
					OrderID:      order.ID,
					TicketTypeID: v.TicketTypeID,
					EventID:      v.EventID,
					QRCode:       code,
				}
				if err := tx.Create(&ticket).Error; err != nil {
					return err
				}
			}
		}
		desc := fmt.Sprintf("Order [%d] created with %d line(s), total %.2f", order.ID, len(items), order.TotalAmount)
		return AppendActivity(tx, types.ACTIVITY_ORDER_CREATION, actor, desc)
	})
	if err != nil {
		log.Printf("CreateOrder failed, compensating reservations: %s\n", err.Error())
		compensate(reserved)
		return nil, err
	}

	monitoring.RecordOrderCreated()
	if err := dbi.
		Where(&models.Order{ID: order.ID}).
		Preload("Tickets").
		First(&order).
		Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// issueUniqueCode generates a QR code and verifies it against all issued
// tickets, regenerating on collision. The uniqueness check is a hard
// contract regardless of the generation scheme.
func issueUniqueCode(tx *gorm.DB) (string, error) {
	for range maxQRCodeAttempts {
		code, err := utils.GenerateTicketCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.
			Model(&models.Ticket{}).
			Where(&models.Ticket{QRCode: code}).
			Count(&count).
			Error; err != nil {
			return "", err
		}
		if count > 0 {
			log.Printf("Error issuing ticket code: %s\n", ErrDuplicateQRCode.Error())
			continue
		}
		return code, nil
	}
	return "", ErrTicketIssuanceFailed
}
