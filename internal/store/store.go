package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reelbase/reelbase/internal/models"
)

// Options controls how the database handle is opened.
type Options struct {
	Driver string // "sqlite" or "postgres"
	URL    string
	Logger zerolog.Logger
}

// Store hides direct access to the underlying gorm handle so higher layers
// can focus on business logic.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// New opens the database, validates connectivity, and synchronizes the
// schema from the entity definitions.
func New(ctx context.Context, opts Options) (*Store, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "postgres":
		dialector = postgres.Open(opts.URL)
	case "sqlite":
		dialector = sqlite.Open(opts.URL)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	st := &Store{db: db, logger: opts.Logger}
	if err := st.Sync(); err != nil {
		return nil, err
	}

	opts.Logger.Info().Str("driver", opts.Driver).Msg("store: database ready")
	return st, nil
}

// Sync auto-migrates the schema from the registered entities.
func (s *Store) Sync() error {
	if err := s.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("sync schema: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s == nil || s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	s.logger.Info().Msg("store: closing database")
	_ = sqlDB.Close()
}

// HealthCheck verifies the database is reachable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DB exposes the gorm handle for repositories.
func (s *Store) DB() *gorm.DB {
	return s.db
}
