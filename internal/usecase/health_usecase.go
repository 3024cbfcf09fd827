package usecase

import (
	"context"

	"go-contact-backend/config"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// StoreChecker reports the health of the rate-limit store
type StoreChecker func(ctx context.Context) error

type healthUsecase struct {
	emailCfg   config.EmailConfig
	redisCheck StoreChecker
}

// NewHealthUsecase creates a health usecase. A nil redisCheck means the in-memory store is in use.
func NewHealthUsecase(emailCfg config.EmailConfig, redisCheck StoreChecker) HealthUsecase {
	return &healthUsecase{emailCfg: emailCfg, redisCheck: redisCheck}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":           "ok",
		"email":            "configured",
		"rate_limit_store": "memory",
	}
	if !u.emailCfg.IsConfigured() {
		status["email"] = "missing"
	}
	if u.redisCheck != nil {
		status["rate_limit_store"] = "redis"
		if err := u.redisCheck(ctx); err != nil {
			status["rate_limit_store"] = "redis_unavailable"
		}
	}
	return status
}
