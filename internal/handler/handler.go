package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// チェックアウト失敗をUI向けに返す形。
type CheckoutErrorResponse struct {
	Error             string `json:"error"`
	Title             string `json:"title"`
	Message           string `json:"message"`
	AvailableQuantity *int64 `json:"available_quantity,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := usecase.AsCheckoutError(err); ok {
		return c.JSON(ce.Status, CheckoutErrorResponse{
			Error:             string(ce.Kind),
			Title:             ce.Title,
			Message:           ce.Message,
			AvailableQuantity: ce.AvailableQuantity,
		})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

// 上流へ渡すBearerトークンを取り出す
func getTokenFromContext(c echo.Context) string {
	v := c.Get(middleware.CtxTokenKey)
	if v == nil {
		return ""
	}

	token, _ := v.(string)
	return token
}
