package core

import (
	"errors"
	"fmt"
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/monitoring"
	"log"
	"sync"

	"gorm.io/gorm"
)

// The inventory ledger is the single choke point for the sold counter.
// Every mutation is serialized per ticket type through a keyed mutex, and
// the UPDATE itself is guarded so the 0 <= sold <= quantity invariant also
// holds against any writer that bypasses the process (e.g. a second
// instance sharing a postgres store).

var typeLocks sync.Map

func lockTicketType(id uint) *sync.Mutex {
	mu, _ := typeLocks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Reserve converts qty units of available capacity into sold capacity.
// Fails with InsufficientInventoryError when fewer than qty units remain.
func Reserve(ticketTypeID uint, qty uint) error {
	mu := lockTicketType(ticketTypeID)
	mu.Lock()
	defer mu.Unlock()

	dbi := db.GetDb()
	if err := dbi.Transaction(func(tx *gorm.DB) error {
		return reserveTx(tx, ticketTypeID, qty)
	}); err != nil {
		return err
	}
	publishSold(ticketTypeID)
	return nil
}

// Restock returns qty units of sold capacity back to the pool. Fails with
// ErrInvalidRestock if it would drive the sold counter below zero.
func Restock(ticketTypeID uint, qty uint) error {
	mu := lockTicketType(ticketTypeID)
	mu.Lock()
	defer mu.Unlock()

	dbi := db.GetDb()
	if err := dbi.Transaction(func(tx *gorm.DB) error {
		return restockTx(tx, ticketTypeID, qty)
	}); err != nil {
		return err
	}
	publishSold(ticketTypeID)
	return nil
}

// reserveTx applies the reservation inside an existing transaction. The
// caller must hold the ticket type's lock.
func reserveTx(tx *gorm.DB, ticketTypeID uint, qty uint) error {
	var ticketType models.TicketType
	if err := tx.
		Where(&models.TicketType{ID: ticketTypeID}).
		First(&ticketType).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketTypeNotFound
		}
		return err
	}
	if ticketType.Sold+qty > ticketType.Quantity {
		return &InsufficientInventoryError{
			TicketTypeID: ticketTypeID,
			Requested:    qty,
			Remaining:    ticketType.Remaining(),
		}
	}
	res := tx.
		Model(&models.TicketType{}).
		Where("id = ? AND sold + ? <= quantity", ticketTypeID, qty).
		UpdateColumn("sold", gorm.Expr("sold + ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &InsufficientInventoryError{
			TicketTypeID: ticketTypeID,
			Requested:    qty,
			Remaining:    ticketType.Remaining(),
		}
	}
	return nil
}

func restockTx(tx *gorm.DB, ticketTypeID uint, qty uint) error {
	var ticketType models.TicketType
	if err := tx.
		Where(&models.TicketType{ID: ticketTypeID}).
		First(&ticketType).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTicketTypeNotFound
		}
		return err
	}
	if qty > ticketType.Sold {
		return ErrInvalidRestock
	}
	res := tx.
		Model(&models.TicketType{}).
		Where("id = ? AND sold - ? >= 0", ticketTypeID, qty).
		UpdateColumn("sold", gorm.Expr("sold - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidRestock
	}
	return nil
}

// publishSold refreshes the sold gauge from the committed row. Kept outside
// the mutating transactions so a rollback never leaves a stale sample.
func publishSold(ticketTypeID uint) {
	dbi := db.GetDb()
	var ticketType models.TicketType
	if err := dbi.
		Where(&models.TicketType{ID: ticketTypeID}).
		First(&ticketType).
		Error; err != nil {
		log.Printf("Error reading sold counter for ticket type [%d]: %s\n", ticketTypeID, err.Error())
		return
	}
	monitoring.SetTicketsSold(fmt.Sprint(ticketTypeID), float64(ticketType.Sold))
}

// compensate rolls back reservations taken earlier in a failed multi-line
// attempt. Restock failures here would mean the ledger itself is corrupt, so
// they are logged loudly rather than returned.
func compensate(reserved map[uint]uint) {
	for ticketTypeID, qty := range reserved {
		if err := Restock(ticketTypeID, qty); err != nil {
			log.Printf("Error compensating reservation for ticket type [%d] qty=%d: %s\n", ticketTypeID, qty, err.Error())
		}
	}
}
