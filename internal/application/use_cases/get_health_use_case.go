package use_cases

import (
	"context"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type getHealthUseCase struct {
	probes []portsout.HealthProbe
}

func NewGetHealthUseCase(probes ...portsout.HealthProbe) portsin.GetHealthUseCase {
	return &getHealthUseCase{probes: probes}
}

func (u *getHealthUseCase) Execute(ctx context.Context, _ dto.GetHealthCommand) (dto.HealthOutput, *apperrors.AppError) {
	if len(u.probes) == 0 {
		return dto.HealthOutput{Status: valueobjects.NewHealthyStatus().String()}, nil
	}

	components := make(map[string]string, len(u.probes))
	failed := 0
	for _, probe := range u.probes {
		if probe == nil {
			continue
		}
		if appErr := probe.Probe(ctx); appErr != nil {
			components[probe.Name()] = valueobjects.HealthStatusDegraded.String()
			failed++
			continue
		}
		components[probe.Name()] = valueobjects.HealthStatusOK.String()
	}

	return dto.HealthOutput{
		Status:     valueobjects.HealthStatusFromFailures(failed).String(),
		Components: components,
	}, nil
}
