package core

import (
	"gotix/src/db"
	"gotix/src/models"
	"gotix/src/types"

	"gorm.io/gorm"
)

// AppendActivity records an entry as part of the caller's transaction so the
// log and the state change it describes commit together.
func AppendActivity(tx *gorm.DB, typ types.ActivityType, actor string, description string) error {
	entry := models.ActivityEntry{
		Type:        typ,
		Actor:       actor,
		Description: description,
	}
	return tx.Create(&entry).Error
}

// ActivityFeed returns the newest entries first for the dashboards.
func ActivityFeed(limit int) ([]models.ActivityEntry, error) {
	var entries []models.ActivityEntry
	dbi := db.GetDb()
	err := dbi.
		Model(&models.ActivityEntry{}).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).
		Error
	return entries, err
}
