// Package app is the composition root. Bootstrap stays orchestration-only;
// behavior lives in the packages it wires together.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/riverqueue/river"

	"canvaspilot.io/canvaspilot/internal/api/handlers"
	"canvaspilot.io/canvaspilot/internal/api/middleware"
	"canvaspilot.io/canvaspilot/internal/config"
	"canvaspilot.io/canvaspilot/internal/infrastructure"
	"canvaspilot.io/canvaspilot/internal/jobs"
	"canvaspilot.io/canvaspilot/internal/pkg/worker"
	"canvaspilot.io/canvaspilot/internal/service"
	"canvaspilot.io/canvaspilot/internal/ws"
)

// Application holds composed application dependencies.
type Application struct {
	Config *config.Config
	Router *gin.Engine
	DB     *infrastructure.DatabaseClients
	Pools  *worker.Pools
	Hub    *ws.Hub
}

// Bootstrap initializes all dependencies with manual DI.
func Bootstrap(ctx context.Context, cfg *config.Config) (*Application, error) {
	db, err := infrastructure.NewDatabaseClients(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	pools, err := worker.NewPools(ctx, worker.PoolConfig{
		GeneralPoolSize:   cfg.Worker.GeneralPoolSize,
		BroadcastPoolSize: cfg.Worker.BroadcastPoolSize,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init worker pools: %w", err)
	}

	users := service.NewUserService(db.Gorm)
	projects := service.NewProjectService(db.Gorm)
	pages := service.NewPageService(db.Gorm)
	objects := service.NewObjectService(db.Gorm)
	events := service.NewEventService(db.Gorm)

	workers := river.NewWorkers()
	river.AddWorker(workers, jobs.NewRetentionSweepWorker(db.Gorm, cfg.Retention))
	if err := db.InitRiverClient(workers, cfg.River); err != nil {
		pools.Shutdown()
		db.Close()
		return nil, fmt.Errorf("init river client: %w", err)
	}
	for _, pj := range jobs.PeriodicJobs(cfg.Retention) {
		db.RiverClient.PeriodicJobs().Add(pj)
	}

	jwtCfg := middleware.JWTConfig{
		SigningKey: []byte(cfg.JWT.SigningKey),
		Issuer:     cfg.JWT.Issuer,
		ExpiresIn:  cfg.JWT.ExpiresIn,
	}

	hub := ws.NewHub(pools)
	dispatcher := ws.NewDispatcher(ws.DispatcherDeps{
		Hub:        hub,
		SigningKey: jwtCfg.SigningKey,
		Users:      users,
		Projects:   projects,
		Pages:      pages,
		Objects:    objects,
		Events:     events,
	})

	server := handlers.NewServer(handlers.ServerDeps{
		JWTCfg:   jwtCfg,
		Users:    users,
		Projects: projects,
		Pages:    pages,
		Objects:  objects,
		Events:   events,
	})

	return &Application{
		Config: cfg,
		Router: newRouter(cfg, server, dispatcher, jwtCfg),
		DB:     db,
		Pools:  pools,
		Hub:    hub,
	}, nil
}
