package handler

import (
	"hashfarm/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupDevice struct {
	container *do.Injector
}

func (gr *groupDevice) GetDevices(c echo.Context) error {
	serviceDevice, err := do.Invoke[*services.ServiceDevice](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	devices, err := serviceDevice.GetDevices(c.Request().Context())
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, devices, nil)
}

func (gr *groupDevice) Show(c echo.Context) error {
	serviceDevice, err := do.Invoke[*services.ServiceDevice](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	device, err := serviceDevice.GetDevice(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, device, nil)
}
