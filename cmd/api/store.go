package main

import (
	"context"
	"fmt"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/docstore"
	"go-jobboard-backend/internal/docstore/firestore"
	"go-jobboard-backend/internal/docstore/memory"
	"go-jobboard-backend/internal/docstore/mongo"
	"go-jobboard-backend/internal/docstore/postgres"
	"go-jobboard-backend/pkg/database"
)

// openStore connects the backend selected by DOCSTORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	switch cfg.DocstoreDriver {
	case config.DriverPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		store, err := postgres.New(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return store, nil
	case config.DriverMongo:
		store, err := mongo.New(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverFirestore:
		store, err := firestore.New(ctx, firestore.Config{
			ProjectID:    cfg.Firebase.ProjectID,
			PrivateKeyID: cfg.Firebase.PrivateKeyID,
			PrivateKey:   cfg.Firebase.PrivateKey,
			ClientEmail:  cfg.Firebase.ClientEmail,
			ClientID:     cfg.Firebase.ClientID,
			ClientCert:   cfg.Firebase.ClientCert,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown docstore driver %q", cfg.DocstoreDriver)
	}
}
