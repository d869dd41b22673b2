package usecase

import "context"

// Probe reports the health of one dependency.
type Probe func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	probes map[string]Probe
}

// NewHealthUsecase checks each named probe; a nil probe marks the dependency
// as disabled.
func NewHealthUsecase(probes map[string]Probe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
	}
	for name, probe := range u.probes {
		if probe == nil {
			status[name] = "disabled"
			continue
		}
		if err := probe(ctx); err != nil {
			status[name] = "unavailable"
			status["status"] = "degraded"
			continue
		}
		status[name] = "ok"
	}
	return status
}
