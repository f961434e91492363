package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	cartH *handler.CartHandler,
	checkoutH *handler.CheckoutHandler,
	supermarketH *handler.SupermarketHandler,
	sessionH *handler.SessionHandler,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	cartH.RegisterRoutes(e, cfg)
	checkoutH.RegisterRoutes(e, cfg)
	supermarketH.RegisterRoutes(e, cfg)
	sessionH.RegisterRoutes(e, cfg)
}
