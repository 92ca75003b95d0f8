// Package orchestrator drives a fallback chain of translation services.
// Services are tried in the order the user listed them; the first
// successful result wins and later services are never called.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dfop02/lokyll/internal/translator"
)

type Config struct {
	// Timeout bounds each individual service attempt.
	Timeout time.Duration
	// MaxAttempts is the number of tries per service before moving on to
	// the next one in the chain.
	MaxAttempts int
}

type Orchestrator struct {
	services []translator.TranslationService
	config   Config
}

func New(services []translator.TranslationService, config Config) *Orchestrator {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &Orchestrator{
		services: services,
		config:   config,
	}
}

// Services returns the configured chain in order.
func (o *Orchestrator) Services() []translator.TranslationService {
	return o.services
}

// Translate runs req through the service chain and returns the first
// successful result. Each service gets up to MaxAttempts tries, each
// bounded by Timeout. When every service fails the joined errors are
// returned so the caller can see what went wrong in each backend.
func (o *Orchestrator) Translate(ctx context.Context, cfg translator.ServiceConfig, req translator.TranslateRequest) (*translator.ServiceResult, error) {
	if len(o.services) == 0 {
		return nil, errors.New("no translation services configured")
	}

	var errs []error

	for _, svc := range o.services {
		for attempt := 1; attempt <= o.config.MaxAttempts; attempt++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			attemptCtx, cancel := context.WithTimeout(ctx, o.config.Timeout)
			res, err := svc.Translate(attemptCtx, cfg, req)
			cancel()

			switch {
			case err != nil:
				errs = append(errs, fmt.Errorf("%s (attempt %d): %w", svc.Name(), attempt, err))
			case res == nil || res.TranslatedText == "":
				errs = append(errs, fmt.Errorf("%s (attempt %d): empty translation", svc.Name(), attempt))
			case res.Error != "":
				errs = append(errs, fmt.Errorf("%s (attempt %d): %s", svc.Name(), attempt, res.Error))
			default:
				return res, nil
			}
		}
	}

	return nil, fmt.Errorf("all translation services failed: %w", errors.Join(errs...))
}
