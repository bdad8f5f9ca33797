package database

import (
	"github.com/leirbagxis/ChannelGate/internal/database/models"
	"github.com/leirbagxis/ChannelGate/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB() *gorm.DB {
	return openDB(config.DatabaseFile)
}

// InitTestDB opens a throwaway in-memory database, for tests.
func InitTestDB() *gorm.DB {
	return openDB("file::memory:?cache=shared")
}

func openDB(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	db.Config.Logger = logger.Default.LogMode(logger.Silent)

	err = db.AutoMigrate(
		&models.Session{},
		&models.Channel{},
		&models.ChannelMessage{},
	)
	if err != nil {
		panic(err)
	}

	return db
}
