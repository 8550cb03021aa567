package core

import (
	"fmt"
	"gotix/src/db"
	"gotix/src/models"
	"log"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB swaps the package database for a fresh in-memory sqlite store.
// Each test gets its own named database so state never leaks between tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", time.Now().UnixNano())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening test database", err)
	}
	inner, err := d.DB()
	if err != nil {
		t.Fatalf("Error accessing inner db instance: %s", err.Error())
	}
	inner.SetMaxOpenConns(1)
	if err := d.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.TicketType{},
		&models.Ticket{},
		&models.Order{},
		&models.RefundRequest{},
		&models.ActivityEntry{},
	); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	db.NewDB(d)
	t.Cleanup(func() { inner.Close() })
	return d
}

func seedCustomer(t *testing.T, d *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Name:  "Test Customer",
		Email: fmt.Sprintf("customer_%d@example.com", time.Now().UnixNano()),
		Role:  "customer",
	}
	if err := d.Create(&user).Error; err != nil {
		t.Fatalf("Could not create user due to error: %s", err.Error())
	}
	return user
}

func seedEventWithType(t *testing.T, d *gorm.DB, name string, price float32, quantity uint) (models.Event, models.TicketType) {
	t.Helper()
	event := models.Event{
		Title:    "Test Event",
		Location: "Test Venue",
		DateTime: time.Now().Add(48 * time.Hour),
		Status:   "open",
	}
	if err := d.Create(&event).Error; err != nil {
		t.Fatalf("Could not create event due to error: %s", err.Error())
	}
	ticketType := models.TicketType{
		EventID:  event.ID,
		Name:     name,
		Price:    price,
		Quantity: quantity,
	}
	if err := d.Create(&ticketType).Error; err != nil {
		t.Fatalf("Could not create ticket type due to error: %s", err.Error())
	}
	return event, ticketType
}

// soldGaugeValue reads the exported sold gauge for one ticket type from the
// default prometheus registry.
func soldGaugeValue(t *testing.T, ticketTypeID uint) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Error gathering metrics: %s", err.Error())
	}
	label := fmt.Sprint(ticketTypeID)
	for _, family := range families {
		if family.GetName() != "tickets_sold" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == "ticket_type_id" && pair.GetValue() == label {
					return metric.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("No sold gauge sample for ticket type [%d]", ticketTypeID)
	return 0
}

func reloadTicketType(t *testing.T, d *gorm.DB, id uint) models.TicketType {
	t.Helper()
	var ticketType models.TicketType
	if err := d.Where(&models.TicketType{ID: id}).First(&ticketType).Error; err != nil {
		t.Fatalf("Could not reload ticket type [%d]: %s", id, err.Error())
	}
	return ticketType
}
