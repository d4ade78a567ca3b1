package handler

import (
	"net/http"

	"hashfarm/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container   *do.Injector
	Mode        string
	Origins     []string
	SweepSecret string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "⛏️")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		authentication, err := do.Invoke[*services.Authentication](cfg.Container)
		if err != nil {
			return nil, err
		}

		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})
		routesAPIv1.Use(cors)

		routesAPIv1Cron := routesAPIv1.Group("/cron")
		{
			routesAPIv1Cron.Use(AuthnSweep(cfg.SweepSecret))
			s := groupSweep{cfg.Container}
			routesAPIv1Cron.POST("/sweep", s.Trigger)
			routesAPIv1Cron.GET("/sweep/last", s.Last)
		}

		routesAPIv1.Use(Authn(authentication)) // Authn will NOT terminate unauthenticated request.

		d := groupDevice{cfg.Container}
		routesAPIv1.GET("/devices", d.GetDevices)
		routesAPIv1.GET("/device/:slug", d.Show)

		rt := groupRental{cfg.Container}
		routesAPIv1.GET("/rentals", rt.List)
		routesAPIv1.POST("/rentals", rt.Create)

		n := groupNotification{cfg.Container}
		routesAPIv1.GET("/notifications", n.List)
		routesAPIv1.GET("/notifications/unread_count", n.UnreadCount)
		routesAPIv1.POST("/notifications/:id/read", n.MarkRead)
	}

	return r, nil
}
