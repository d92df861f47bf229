package main

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/storefront/app/providers"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/event"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// bootDB loads config, sets up logging and opens the database connection.
// The returned func releases everything bootDB opened.
func bootDB() (func(), error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	opts := logger.Options{Env: config.AppEnv(), Level: config.LogLevel()}
	var mongo *logger.MongoHandler
	if uri := config.LogMongoURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.LogMongoDatabase(), config.LogMongoCollection(), logger.ParseLevel(config.LogLevel()))
		if err != nil {
			return nil, fmt.Errorf("logger: mongo sink: %w", err)
		}
		mongo = h
		opts.Extra = append(opts.Extra, h)
	}
	logger.Setup(opts)
	warnInsecureDefaults()

	if err := database.Connect(); err != nil {
		if mongo != nil {
			mongo.Close()
		}
		return nil, err
	}

	return func() {
		if err := database.Close(); err != nil {
			logger.Warn("database: close", "error", err)
		}
		if mongo != nil {
			mongo.Close()
		}
	}, nil
}

// warnInsecureDefaults flags shipped secrets left in place on a production
// deployment. Startup continues either way.
func warnInsecureDefaults() {
	if !config.IsProduction() {
		return
	}
	keys, err := config.InsecureDefaults()
	if err != nil {
		logger.Warn("config: check defaults", "error", err)
		return
	}
	for _, k := range keys {
		logger.Warn("config: default secret in production", "key", k)
	}
}

// bootStorefront runs bootDB and then connects the cache and storage disks
// and wires the application.
func bootStorefront(ctx context.Context) (*providers.Storefront, storage.Disk, func(), error) {
	cleanup, err := bootDB()
	if err != nil {
		return nil, nil, nil, err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("cache disabled", "error", err)
	}
	if err := storage.Connect(ctx); err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	settings, err := providers.LoadSettings()
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	disk := storage.Default()
	sf, err := providers.New(database.DB, disk, event.Default, settings)
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	return sf, disk, func() {
		event.Flush()
		cache.Close()
		cleanup()
	}, nil
}
