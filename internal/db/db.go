package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hcp-crm/internal/config"
	"hcp-crm/internal/interaction"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto-migrate interaction log and its child collections
	if err := db.AutoMigrate(
		&interaction.InteractionLog{},
		&interaction.MaterialShared{},
		&interaction.SampleDistributed{},
		&interaction.ProductDiscussed{},
	); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}
