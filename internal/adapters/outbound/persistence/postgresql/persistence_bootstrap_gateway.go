package postgresql

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"

	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
)

type PersistenceBootstrapGateway struct {
	databaseURL    string
	databaseTarget string
	migrationsPath string
	logger         *log.Entry
}

var _ portsout.PersistenceBootstrapGateway = (*PersistenceBootstrapGateway)(nil)

func NewPersistenceBootstrapGateway(
	databaseURL string,
	databaseTarget string,
	migrationsPath string,
	logger *log.Logger,
) *PersistenceBootstrapGateway {
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &PersistenceBootstrapGateway{
		databaseURL:    databaseURL,
		databaseTarget: databaseTarget,
		migrationsPath: migrationsPath,
		logger:         logger.WithField("database_target", databaseTarget),
	}
}

func (g *PersistenceBootstrapGateway) CheckReadiness(ctx context.Context) *apperrors.AppError {
	db, err := sql.Open("pgx", g.databaseURL)
	if err != nil {
		g.logger.WithError(err).Warn("database connection initialization failed")
		return apperrors.NewInternal(
			"db_connect_init_failed",
			"failed to initialize database connection",
			map[string]any{"database_target": g.databaseTarget},
		)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		g.logger.WithError(err).Warn("database readiness check failed")
		return apperrors.NewInternal(
			"db_connect_failed",
			"failed to connect to database",
			map[string]any{"database_target": g.databaseTarget},
		)
	}

	g.logger.Info("database readiness check succeeded")
	return nil
}

func (g *PersistenceBootstrapGateway) RunMigrations(ctx context.Context) *apperrors.AppError {
	if err := ctx.Err(); err != nil {
		return apperrors.NewInternal(
			"db_migration_context_canceled",
			"migration context canceled",
			map[string]any{"database_target": g.databaseTarget},
		)
	}

	migrationsAbsPath, err := filepath.Abs(g.migrationsPath)
	if err != nil {
		return apperrors.NewInternal(
			"db_migration_path_resolve_failed",
			"failed to resolve migration path",
			map[string]any{"migrations_path": g.migrationsPath},
		)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsAbsPath)
	migrationRunner, err := migrate.New(sourceURL, g.databaseURL)
	if err != nil {
		g.logger.WithError(err).Error("migration runner setup failed")
		return apperrors.NewInternal(
			"db_migration_setup_failed",
			"failed to initialize migration runner",
			map[string]any{
				"database_target": g.databaseTarget,
				"migrations_path": g.migrationsPath,
			},
		)
	}
	defer func() {
		sourceErr, dbErr := migrationRunner.Close()
		if sourceErr != nil {
			g.logger.WithError(sourceErr).Warn("migration source close failed")
		}
		if dbErr != nil {
			g.logger.WithError(dbErr).Warn("migration db close failed")
		}
	}()

	err = migrationRunner.Up()
	switch {
	case stderrors.Is(err, migrate.ErrNoChange):
		g.logger.Info("database migrations up to date")
	case err != nil:
		g.logger.WithError(err).Error("database migrations failed")
		return apperrors.NewInternal(
			"db_migration_apply_failed",
			"failed to apply migrations",
			map[string]any{
				"database_target": g.databaseTarget,
				"migrations_path": g.migrationsPath,
			},
		)
	default:
		g.logger.Info("database migrations applied")
	}

	return nil
}
