package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 上流バックエンド（REST/JSON）のクライアント。
// リトライやキャンセルはここでは行わない。タイムアウトだけ http.Client に任せる。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListSupermarkets(ctx context.Context, token string) ([]model.Supermarket, error) {
	var out []model.Supermarket
	if err := c.getJSON(ctx, token, "/supermarkets", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProducts(ctx context.Context, token string, supermarketID int64) ([]model.Product, error) {
	var out []model.Product
	path := fmt.Sprintf("/supermarkets/%d/products", supermarketID)
	if err := c.getJSON(ctx, token, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListOffers(ctx context.Context, token string, supermarketID int64) ([]model.Product, error) {
	var out []model.Product
	path := fmt.Sprintf("/supermarkets/%d/offers", supermarketID)
	if err := c.getJSON(ctx, token, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type purchaseRequest struct {
	Quantity int64 `json:"quantity"`
}

func (c *Client) Purchase(ctx context.Context, token string, supermarketID, productID, quantity int64) (model.PurchaseOutcome, error) {
	path := fmt.Sprintf("/supermarkets/%d/products/%d/purchase", supermarketID, productID)

	var out model.PurchaseOutcome
	if err := c.postJSON(ctx, token, path, purchaseRequest{Quantity: quantity}, &out); err != nil {
		return model.PurchaseOutcome{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, token string, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, token, out)
}

func (c *Client) postJSON(ctx context.Context, token string, path string, body interface{}, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, token, out)
}

func (c *Client) do(req *http.Request, token string, out interface{}) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// エラーボディの形
type errorBody struct {
	Error             string `json:"error"`
	Message           string `json:"message"`
	AvailableQuantity *int64 `json:"available_quantity"`
}

// エラーレスポンスを *repository.APIError に写す。
// ボディが読めなくてもステータスだけは保つ。
func decodeAPIError(resp *http.Response) error {
	apiErr := &repo.APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	apiErr.Code = body.Error
	apiErr.Message = body.Message
	apiErr.AvailableQuantity = body.AvailableQuantity
	return apiErr
}
