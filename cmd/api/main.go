package main

import (
	"fmt"

	"go.uber.org/zap"

	"cords_connector/internal/broker"
	"cords_connector/internal/config"
	"cords_connector/internal/contract"
	"cords_connector/internal/db"
	"cords_connector/internal/description"
	httpserver "cords_connector/internal/http"
	"cords_connector/internal/models"
	"cords_connector/internal/pip"
	"cords_connector/internal/policy"
	"cords_connector/internal/seed"
	"cords_connector/internal/store"
	"cords_connector/internal/transfer"
)

func main() {
	cfg := config.Load()

	zl, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	logger := zl.Sugar()

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb,
		&models.User{},
		&models.DataSpaceConnector{},
		&models.DataSpaceResource{},
		&models.MLModel{},
		&models.FLService{},
		&models.Policy{},
		&models.AccessCounter{},
	)

	templates, err := policy.LoadTemplates(cfg.PolicyTemplates)
	if err != nil {
		logger.Fatalw("policy templates failed to load", "dir", cfg.PolicyTemplates, "error", err)
	}
	trueConnector, err := broker.NewTrueConnector(cfg.ResourceTemplate, cfg.BrokerURL, cfg.UpstreamTimeout, logger)
	if err != nil {
		logger.Fatalw("true connector template failed to load", "path", cfg.ResourceTemplate, "error", err)
	}

	policies := &store.Policies{DB: gdb}
	resources := &store.Resources{DB: gdb}
	connectors := &store.Connectors{DB: gdb}
	mlModels := &store.Models{DB: gdb}
	flServices := &store.FLServices{DB: gdb}
	counters := &store.Counters{DB: gdb}
	users := &store.Users{DB: gdb}

	engine := policy.NewEngine(policies, templates)
	compiler := contract.NewCompiler(engine)
	builder := description.NewBuilder(resources, mlModels, flServices, compiler, trueConnector, logger)
	pdp := pip.NewPDP(policies, counters, logger)
	tracker := transfer.NewTracker()
	coordinator := transfer.NewCoordinator(resources, mlModels, flServices, tracker,
		cfg.ArtifactRoot, cfg.ChunkSize, logger)

	seed.Admin(users, "admin@cords.local", "cords-admin")

	r := httpserver.NewRouter(httpserver.Deps{
		Policies:    policies,
		Resources:   resources,
		Connectors:  connectors,
		Models:      mlModels,
		FLServices:  flServices,
		Users:       users,
		PDP:         pdp,
		Builder:     builder,
		Broker:      trueConnector,
		Coordinator: coordinator,
		Tracker:     tracker,
		JWTSecret:   cfg.JWTSecret,
	})

	logger.Infof("🚀 Server listening on :%s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
