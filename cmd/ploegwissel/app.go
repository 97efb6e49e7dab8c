package main

import (
	"context"
	"fmt"
	"log"

	"github.com/xelth-com/ploegwissel/internal/config"
	"github.com/xelth-com/ploegwissel/internal/database"
	"github.com/xelth-com/ploegwissel/internal/session"
	"github.com/xelth-com/ploegwissel/internal/storage"
)

// app is an opened store with the gateway and session on top of it
type app struct {
	store   storage.Store
	gateway *storage.Gateway
	session *session.Session
}

// openStore opens the backend named by cfg.StoreDriver
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Println("⚠️  Memory store: nothing is kept after exit")
		return storage.NewMemoryStore(), nil

	case config.DriverPostgres:
		// Detects Embedded vs External automatically
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store, err := storage.NewGormStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil

	default:
		bcfg := storage.DefaultBadgerConfig(cfg.BadgerPath())
		bcfg.Verbose = cfg.Verbose
		store, err := storage.OpenBadger(bcfg)
		if err != nil {
			return nil, err
		}
		log.Printf("📦 Badger store at %s", cfg.BadgerPath())
		return store, nil
	}
}

func openApp(ctx context.Context, cfg *config.Config, gwOpts storage.Options, sessOpts session.Options) (*app, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if gwOpts.Delay == 0 {
		gwOpts.Delay = cfg.SaveDebounce
	}
	if sessOpts.DefaultCompany == "" {
		sessOpts.DefaultCompany = cfg.DefaultCompany
	}

	gw := storage.NewGateway(store, gwOpts)
	return &app{
		store:   store,
		gateway: gw,
		session: session.Open(ctx, gw, sessOpts),
	}, nil
}

// Close writes a pending save and closes the store
func (a *app) Close() {
	if a.gateway.Flush() {
		log.Println("💾 Pending checklist changes written")
	}
	a.gateway.Close()
	if err := a.store.Close(); err != nil {
		log.Printf("Store close error: %v", err)
	}
}
