package usecase

import (
	"context"
	"time"
)

// Pinger is any dependency whose reachability is part of service health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthUsecase interface {
	// Check reports "ok" or "unavailable" per component plus an overall status.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	components map[string]Pinger
}

// NewHealthUsecase checks every named component. Nil pingers are skipped.
func NewHealthUsecase(components map[string]Pinger) HealthUsecase {
	active := make(map[string]Pinger, len(components))
	for name, p := range components {
		if p != nil {
			active[name] = p
		}
	}
	return &healthUsecase{components: active}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	healthy := true
	status := map[string]string{}
	for name, p := range u.components {
		if err := p.Ping(ctx); err != nil {
			status[name] = "unavailable"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if healthy {
		status["status"] = "ok"
	} else {
		status["status"] = "degraded"
	}
	return status, healthy
}
