package utils

import (
	"errors"
	"fmt"
	"gotix/src/config"
	"gotix/src/db"
	"gotix/src/lib"
	"gotix/src/models"
	"gotix/src/types"
	"log"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func CreateNewEvent(params *types.CreateEventRequestBody, organizerID uint) (uint, error) {
	dateTime, err := time.Parse(config.TIME_PARSE_FORMAT, params.DateTime)
	if err != nil {
		log.Printf("Error parsing date_time: %s\n", err.Error())
		return 0, err
	}
	event := models.Event{
		Title:       params.Title,
		Slug:        slug.Make(params.Title),
		About:       &params.About,
		Location:    params.Location,
		DateTime:    dateTime,
		Seats:       params.Seats,
		OrganizerID: organizerID,
		Status:      types.EVENT_DRAFT,
	}

	dbi := db.GetDb()
	err = dbi.Transaction(func(tx *gorm.DB) error {
		var organizer models.User
		if err := tx.Where(&models.User{ID: organizerID}).First(&organizer).Error; err != nil {
			return err
		}
		if organizer.Role != string(types.ROLE_ORGANIZER) && organizer.Role != string(types.ROLE_ADMIN) {
			return errors.New("not enough permissions to perform this action")
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return 0, err
	}

	// Schedule the event's completion at its start date.
	eventID := event.ID
	if _, err := lib.CreateOneTimeJob(dateTime, func(id uint) {
		if err := CompleteEvent(id); err != nil {
			log.Printf("Error completing Event [%d]: %s\n", id, err.Error())
		}
	}, eventID); err != nil {
		log.Printf("Error creating job for Event: id=%d error=%s\n", eventID, err.Error())
	}

	if params.Publish {
		if err := PublishEvent(eventID); err != nil {
			log.Printf("Failed to publish event: %s\n", err.Error())
			return 0, err
		}
	}
	return eventID, nil
}

func CreateNewTicketType(params *types.CreateTicketTypeRequestBody) (uint, error) {
	ticketType := models.TicketType{
		EventID:  params.EventID,
		Name:     params.Name,
		Price:    params.Price,
		Quantity: params.Quantity,
	}
	dbi := db.GetDb()
	err := dbi.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Where(&models.Event{ID: params.EventID}).
			First(&event).
			Error; err != nil {
			return fmt.Errorf("event %d does not exist", params.EventID)
		}
		return tx.Create(&ticketType).Error
	})
	if err != nil {
		log.Println("Error: ", err.Error())
		return 0, err
	}
	return ticketType.ID, nil
}

func PublishEvent(id uint) error {
	dbi := db.GetDb()
	return dbi.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Event{}).
			Where("id = ? AND status = ?", id, types.EVENT_DRAFT).
			Update("status", types.EVENT_OPEN)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("event is not in draft status")
		}
		return nil
	})
}

func OpenAdmission(id uint) error {
	dbi := db.GetDb()
	return dbi.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Event{}).
			Where("id = ? AND status = ?", id, types.EVENT_OPEN).
			Update("status", types.EVENT_ADMISSION)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("event is not open")
		}
		return nil
	})
}

func CompleteEvent(id uint) error {
	dbi := db.GetDb()
	return dbi.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.Event{}).
			Where("id = ? AND status IN (?)", id, []types.EventStatus{
				types.EVENT_OPEN,
				types.EVENT_ADMISSION,
			}).
			Update("status", types.EVENT_COMPLETED).
			Error
	})
}

// SetEventFeatured toggles the featured flag. Featured is an attribute of
// the event, not a lifecycle status.
func SetEventFeatured(id uint, featured bool) error {
	dbi := db.GetDb()
	return dbi.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Event{}).
			Where("id = ?", id).
			Update("featured", featured)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("event not found")
		}
		return nil
	})
}
