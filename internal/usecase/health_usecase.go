package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	rateLimitStore string
	pingRedis      func(ctx context.Context) error
}

// NewHealthUsecase reports which store backs rate limiting. pingRedis may be
// nil when Redis is not in use.
func NewHealthUsecase(rateLimitStore string, pingRedis func(ctx context.Context) error) HealthUsecase {
	return &healthUsecase{
		rateLimitStore: rateLimitStore,
		pingRedis:      pingRedis,
	}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"rate_limit_store": u.rateLimitStore,
	}
	if u.pingRedis == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := u.pingRedis(ctx); err != nil {
		status["redis"] = "unreachable"
	} else {
		status["redis"] = "ok"
	}
	return status
}
