package valueobjects

type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "ok"
	HealthStatusDegraded HealthStatus = "degraded"
)

func NewHealthyStatus() HealthStatus {
	return HealthStatusOK
}

// HealthStatusFromFailures reports degraded as soon as one component probe failed.
func HealthStatusFromFailures(failed int) HealthStatus {
	if failed > 0 {
		return HealthStatusDegraded
	}
	return HealthStatusOK
}

func (h HealthStatus) String() string {
	return string(h)
}
