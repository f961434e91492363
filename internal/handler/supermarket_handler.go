package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /supermarketsのHTTP
type SupermarketHandler struct {
	catalog   repo.CatalogClient
	search    *usecase.SearchUsecase
	inventory *usecase.InventoryUsecase
}

// DI
func NewSupermarketHandler(catalog repo.CatalogClient, search *usecase.SearchUsecase, inventory *usecase.InventoryUsecase) *SupermarketHandler {
	return &SupermarketHandler{catalog: catalog, search: search, inventory: inventory}
}

type ProductListResponse struct {
	Products []model.Product `json:"products"`
	//編集時の上限に使う barcode→在庫数
	AvailableQuantities map[string]int64 `json:"available_quantities"`
}

func (h *SupermarketHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/supermarkets")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("/search", h.searchSupermarkets)
	g.GET("/:id/products", h.listProducts)
	g.GET("/:id/offers", h.listOffers)
}

// ?q= 必須。?lat=&lng= があれば距離で同順位を並べる。
func (h *SupermarketHandler) searchSupermarkets(c echo.Context) error {
	query := c.QueryParam("q")

	var userPos *model.LatLng
	latStr, lngStr := c.QueryParam("lat"), c.QueryParam("lng")
	if latStr != "" && lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid position"})
		}
		userPos = &model.LatLng{Lat: lat, Lng: lng}
	}

	out, err := h.search.SearchSupermarkets(c.Request().Context(), getTokenFromContext(c), query, userPos)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 商品一覧を上流から取り、在庫トラッカーをその店舗ぶん作り直す。
// ?q= があればあいまい一致で絞り込む。
func (h *SupermarketHandler) listProducts(c echo.Context) error {
	supermarketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	products, err := h.catalog.ListProducts(c.Request().Context(), getTokenFromContext(c), supermarketID)
	if err != nil {
		return writeUpstreamError(c, err)
	}

	h.inventory.ReplaceForSupermarket(c.Request().Context(), supermarketID, products)

	if q := c.QueryParam("q"); q != "" {
		products = usecase.RankProducts(q, products, len(products))
	}

	return c.JSON(http.StatusOK, ProductListResponse{
		Products:            products,
		AvailableQuantities: h.inventory.AvailableQuantities(supermarketID),
	})
}

// オファー一覧。在庫トラッカーは触らない（全量一覧ではないため）。
func (h *SupermarketHandler) listOffers(c echo.Context) error {
	supermarketID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	offers, err := h.catalog.ListOffers(c.Request().Context(), getTokenFromContext(c), supermarketID)
	if err != nil {
		return writeUpstreamError(c, err)
	}

	return c.JSON(http.StatusOK, offers)
}

// 上流のエラーはステータスを保って返す。
func writeUpstreamError(c echo.Context, err error) error {
	if ae, ok := repo.AsAPIError(err); ok {
		msg := ae.Message
		if msg == "" {
			msg = "upstream error"
		}
		return c.JSON(ae.Status, ErrorResponse{Error: msg})
	}
	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "catalog unavailable"})
}
