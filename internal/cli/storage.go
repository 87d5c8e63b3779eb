package cli

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/terraincognita07/lunara/internal/config"
	"github.com/terraincognita07/lunara/internal/db"
	"github.com/terraincognita07/lunara/internal/services"
	"github.com/terraincognita07/lunara/internal/store"
)

// OpenRecordStore builds the configured backend, applies the storage quota and loads every
// record once.
func OpenRecordStore(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (*store.Store, error) {
	backend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.QuotaBytes > 0 {
		backend = store.NewQuotaBackend(backend, cfg.QuotaBytes)
	}

	records := store.New(backend, logger.Named("store"))
	services.NewDataService(records).Init()
	return records, nil
}

func openBackend(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (store.Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case config.StorageSQLite:
		database, err := db.OpenSQLite(cfg.DBPath, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		return db.NewRecordRepository(database), nil
	case config.StorageRedis:
		backend, err := db.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("redis init failed: %w", err)
		}
		return backend, nil
	case config.StorageMemory:
		logger.Warn("memory storage selected, records are lost on exit")
		return store.NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
