package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /cartのHTTP
type CartHandler struct {
	cart      *usecase.CartUsecase
	inventory *usecase.InventoryUsecase
}

// DI
func NewCartHandler(cart *usecase.CartUsecase, inventory *usecase.InventoryUsecase) *CartHandler {
	return &CartHandler{cart: cart, inventory: inventory}
}

type UpsertCartItemRequest struct {
	Product     model.Product `json:"product"`
	Supermarket struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"supermarket"`
	//現在数量に対する増減（+1/-1、長押しなら±2,±5,±10）
	Delta int64 `json:"delta"`
}

type CartResponse struct {
	Items     []model.CartLine `json:"items"`
	Total     decimal.Decimal  `json:"total"`
	ItemCount int64            `json:"item_count"`
}

type UpsertCartItemResponse struct {
	NewQuantity  int64        `json:"new_quantity"`
	LimitReached bool         `json:"limit_reached"`
	Cart         CartResponse `json:"cart"`
}

// /cart を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.getCart)
	g.POST("/items", h.upsertItem)
	g.DELETE("/items/:productID", h.deleteItem)
	g.DELETE("", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	return c.JSON(http.StatusOK, h.cartResponse())
}

// 数量を delta で動かす。上限は在庫トラッカーの値（未登録は1000）。
// 0 に到達した明細は削除される。
func (h *CartHandler) upsertItem(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpsertCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Product.ID <= 0 || req.Product.Barcode == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product"})
	}
	if req.Supermarket.ID <= 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid supermarket"})
	}

	//同じ店舗の現在数量をカートから集める
	current := map[string]int64{}
	for _, l := range h.cart.Lines() {
		if l.SupermarketID == req.Supermarket.ID {
			current[l.Barcode] = l.Quantity
		}
	}

	available := h.inventory.AvailableQuantities(req.Supermarket.ID)
	result := usecase.ClampQuantity(current, req.Product.Barcode, req.Delta, available)

	h.cart.UpsertLine(c.Request().Context(), req.Product, model.Supermarket{
		ID:   req.Supermarket.ID,
		Name: req.Supermarket.Name,
	}, result.NewQuantity)

	return c.JSON(http.StatusOK, UpsertCartItemResponse{
		NewQuantity:  result.NewQuantity,
		LimitReached: result.LimitReached,
		Cart:         h.cartResponse(),
	})
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	supermarketID, err := strconv.ParseInt(c.QueryParam("supermarket_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid supermarket_id"})
	}

	h.cart.RemoveLine(c.Request().Context(), productID, supermarketID)
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) clear(c echo.Context) error {
	if _, ok := getUserIDFromContext(c); !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	h.cart.Clear(c.Request().Context())
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items:     h.cart.Lines(),
		Total:     h.cart.Total(),
		ItemCount: h.cart.ItemCount(),
	}
}
