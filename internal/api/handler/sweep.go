package handler

import (
	"net/http"
	"time"

	"hashfarm/internal/interfaces"
	"hashfarm/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupSweep struct {
	container *do.Injector
}

// Trigger is the scheduler-facing invocation. It replies with the raw
// summary shape the scheduler expects rather than the REST envelope.
func (gr *groupSweep) Trigger(c echo.Context) error {
	ctx := c.Request().Context()

	lim, err := do.Invoke[interfaces.Limiter](gr.container)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	err = lim.Allow(ctx, services.LimitKeySweepTrigger(), redis_rate.PerMinute(services.SWEEP_TRIGGER_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limited"})
	}

	serviceSweep, err := do.Invoke[*services.ServiceSweep](gr.container)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	summary, err := serviceSweep.Sweep(ctx, time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, summary)
}

func (gr *groupSweep) Last(c echo.Context) error {
	serviceSweep, err := do.Invoke[*services.ServiceSweep](gr.container)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	summary, err := serviceSweep.LastSummary(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no sweep recorded"})
	}

	return c.JSON(http.StatusOK, summary)
}
