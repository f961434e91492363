package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// セッションの後始末（ログアウト時のカート・在庫クリア）。
type SessionHandler struct {
	cart      *usecase.CartUsecase
	inventory *usecase.InventoryUsecase
}

// DI
func NewSessionHandler(cart *usecase.CartUsecase, inventory *usecase.InventoryUsecase) *SessionHandler {
	return &SessionHandler{cart: cart, inventory: inventory}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/session")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/logout", h.logout)
}

func (h *SessionHandler) logout(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	ctx := c.Request().Context()
	h.cart.Clear(ctx)
	h.inventory.Clear(ctx)

	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}
