package shared

import (
	"context"
	"database/sql"
	"time"

	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
)

func NewDatabasePool(databaseURL string, logger *log.Logger) *sql.DB {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	if logger != nil {
		logger.Info("database pool initialized")
	}

	return db
}

type databaseProbe struct {
	db *sql.DB
}

// NewDatabaseProbe reports the pool as a health component named "postgresql".
func NewDatabaseProbe(db *sql.DB) portsout.HealthProbe {
	return &databaseProbe{db: db}
}

func (p *databaseProbe) Name() string {
	return "postgresql"
}

func (p *databaseProbe) Probe(ctx context.Context) *apperrors.AppError {
	if p.db == nil {
		return apperrors.NewInternal("db_pool_missing", "database pool is not configured", nil)
	}
	if err := p.db.PingContext(ctx); err != nil {
		return apperrors.NewUpstream(
			"db_unavailable",
			"database ping failed",
			map[string]any{"error": err.Error()},
		)
	}
	return nil
}
