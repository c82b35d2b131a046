package use_cases

import (
	"context"
	"time"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type initializePersistenceUseCase struct {
	gateway portsout.PersistenceBootstrapGateway
}

func NewInitializePersistenceUseCase(gateway portsout.PersistenceBootstrapGateway) portsin.InitializePersistenceUseCase {
	return &initializePersistenceUseCase{gateway: gateway}
}

// Execute waits for the database to accept connections, then applies the
// listing, profile and snapshot schema migrations.
func (u *initializePersistenceUseCase) Execute(ctx context.Context, command dto.InitializePersistenceCommand) *apperrors.AppError {
	if u.gateway == nil {
		return apperrors.NewInternal(
			"persistence_gateway_missing",
			"persistence gateway is required",
			nil,
		)
	}
	if command.ReadinessTimeout <= 0 {
		return apperrors.NewValidation(
			"readiness_timeout_invalid",
			"readiness timeout must be greater than zero",
			nil,
		)
	}
	if command.ReadinessRetryInterval <= 0 {
		return apperrors.NewValidation(
			"readiness_retry_interval_invalid",
			"readiness retry interval must be greater than zero",
			nil,
		)
	}

	if appErr := u.waitForReadiness(ctx, command); appErr != nil {
		return appErr
	}

	return u.gateway.RunMigrations(ctx)
}

func (u *initializePersistenceUseCase) waitForReadiness(ctx context.Context, command dto.InitializePersistenceCommand) *apperrors.AppError {
	readinessCtx, cancel := context.WithTimeout(ctx, command.ReadinessTimeout)
	defer cancel()

	attempts := 0
	var lastErr *apperrors.AppError
	for {
		attempts++
		lastErr = u.gateway.CheckReadiness(readinessCtx)
		if lastErr == nil {
			return nil
		}

		timer := time.NewTimer(command.ReadinessRetryInterval)
		select {
		case <-readinessCtx.Done():
			timer.Stop()
			return readinessTimeout(attempts, command.ReadinessTimeout, lastErr)
		case <-timer.C:
		}
	}
}

func readinessTimeout(attempts int, timeout time.Duration, lastErr *apperrors.AppError) *apperrors.AppError {
	details := map[string]any{
		"attempts": attempts,
		"timeout":  timeout.String(),
	}
	if lastErr != nil {
		details["last_code"] = lastErr.Code
	}

	return apperrors.NewInternal(
		"db_readiness_timeout",
		"database readiness check timed out",
		details,
	)
}
