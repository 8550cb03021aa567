package db

import (
	"gotix/src/config"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func GetDb() *gorm.DB {
	if db != nil {
		return db
	}
	var dialector gorm.Dialector
	switch config.GetDatabaseDriver() {
	case "postgres":
		dialector = postgres.Open(config.GetDSN())
	default:
		dialector = sqlite.Open(config.GetSqliteDSN())
	}
	_db, err := gorm.Open(dialector)
	if err != nil {
		log.Printf("Error connecting to database: %s\n", err.Error())
		panic(err)
	}
	sqlDB, err := _db.DB()
	if err != nil {
		log.Fatalf("Error establishing connection to database: %s\n", err.Error())
	}
	if config.GetDatabaseDriver() == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// sqlite serializes writers; a single connection keeps the shared
		// in-memory database alive for the process lifetime.
		sqlDB.SetMaxOpenConns(1)
	}

	db = _db
	return _db
}

// NewDB replaces the singleton. Used by tests.
func NewDB(newdb *gorm.DB) {
	db = newdb
}
