package handler

import (
	"errors"
	"time"

	"hashfarm/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupRental struct {
	container *do.Injector
}

func (gr *groupRental) List(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	serviceRental, err := do.Invoke[*services.ServiceRental](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rentals, err := serviceRental.ListUserRentals(ctx, user.ID, time.Now())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, map[string]interface{}{
		"rentals":               rentals,
		"total_computing_power": user.TotalComputingPower,
	}, nil)
}

type createRentalRequest struct {
	DeviceSlug string `json:"device_slug"`
}

func (gr *groupRental) Create(c echo.Context) error {
	ctx := c.Request().Context()

	user, err := ResolveValidUser(ctx, gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	var req createRentalRequest
	if err := c.Bind(&req); err != nil || req.DeviceSlug == "" {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("missing device_slug"), errorx.Invalid))
	}

	serviceRental, err := do.Invoke[*services.ServiceRental](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rental, err := serviceRental.StartRental(ctx, user, req.DeviceSlug)
	if err != nil {
		return httpx.RestAbort(c, nil, err)
	}

	return httpx.RestAbort(c, rental, nil)
}
