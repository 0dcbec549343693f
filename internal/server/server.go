package server

import (
	"gameshop/internal/config"
	"gameshop/internal/handler"

	"github.com/labstack/echo/v4"
)

// New は管理APIのechoを組み立てる。
func New(
	cfg config.Config,
	healthH *handler.HealthHandler,
	authH *handler.AdminAuthHandler,
	orderH *handler.AdminOrderHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	healthH.RegisterRoutes(e)
	authH.RegisterRoutes(e)
	orderH.RegisterRoutes(e, cfg)

	return e
}
