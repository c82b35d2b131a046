package out

import (
	"context"

	apperrors "nftmarket/internal/shared_kernel/errors"
)

// HealthProbe checks one dependency for the health endpoint.
type HealthProbe interface {
	Name() string
	Probe(ctx context.Context) *apperrors.AppError
}
