// Package main provides data seeding for canvaspilot.
//
// Seeding is idempotent: an existing demo account is left untouched.
// Schema migrations (gorm + river) run first so the command works against a
// fresh database.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"canvaspilot.io/canvaspilot/internal/config"
	"canvaspilot.io/canvaspilot/internal/infrastructure"
	"canvaspilot.io/canvaspilot/internal/models"
	"canvaspilot.io/canvaspilot/internal/pkg/logger"
)

const (
	demoHandle   = "demo"
	demoPassword = "demo-password"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := infrastructure.NewDatabaseClients(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	if err := db.AutoMigrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	logger.Info("Starting data seeding...")

	var count int64
	if err := db.Gorm.WithContext(ctx).
		Model(&models.User{}).
		Where("user_id = ?", demoHandle).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check demo account: %w", err)
	}
	if count > 0 {
		logger.Info("Demo account already present, nothing to do")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	demo := models.User{
		UserID:   demoHandle,
		Username: "Demo User",
		Email:    "demo@example.com",
		Password: string(hash),
	}
	demo.CreatedBy = demoHandle
	demo.ModifiedBy = demoHandle
	if err := db.Gorm.WithContext(ctx).Create(&demo).Error; err != nil {
		return fmt.Errorf("create demo account: %w", err)
	}

	project := models.Project{
		OwnerID:   demo.ID,
		Title:     "Welcome deck",
		Variables: datatypes.NewJSONType(map[string]string{"theme": "light"}),
	}
	project.CreatedBy = demoHandle
	project.ModifiedBy = demoHandle
	if err := db.Gorm.WithContext(ctx).Create(&project).Error; err != nil {
		return fmt.Errorf("create demo project: %w", err)
	}

	page := models.Page{ProjectID: project.ID, Name: "Welcome"}
	page.CreatedBy = demoHandle
	page.ModifiedBy = demoHandle
	if err := db.Gorm.WithContext(ctx).Create(&page).Error; err != nil {
		return fmt.Errorf("create demo page: %w", err)
	}

	logger.Info("Data seeding completed successfully",
		zap.String("handle", demoHandle),
		zap.Int64("project_id", project.ID),
	)
	return nil
}
