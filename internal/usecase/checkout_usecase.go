package usecase

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// カート明細を商品ごとの独立した購入APIに変換して実行する。
// 全リクエストを同時に投げ、全部の完了を待ってから集計する。
// 途中キャンセルや自動リトライはしない。
type CheckoutUsecase struct {
	purchase  repo.PurchaseClient
	cart      *CartUsecase
	inventory *InventoryUsecase
	log       *logrus.Logger

	//trueなら部分成功を報告する改良モード。
	//falseは元の挙動: 1件でも失敗したら全体失敗として報告する
	//（サーバー側では成功した分が確定済みでも）。
	allowPartial bool
}

// DI
func NewCheckoutUsecase(
	purchase repo.PurchaseClient,
	cart *CartUsecase,
	inventory *InventoryUsecase,
	log *logrus.Logger,
	allowPartial bool,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		purchase:     purchase,
		cart:         cart,
		inventory:    inventory,
		log:          log,
		allowPartial: allowPartial,
	}
}

// 部分成功モードでの失敗明細。
type CheckoutFailure struct {
	ProductID         int64  `json:"product_id"`
	ProductName       string `json:"product_name"`
	Barcode           string `json:"barcode"`
	Title             string `json:"title"`
	Message           string `json:"message"`
	AvailableQuantity *int64 `json:"available_quantity,omitempty"`
}

type CheckoutSummary struct {
	AttemptID     string                  `json:"attempt_id"`
	Outcomes      []model.PurchaseOutcome `json:"outcomes"`
	TotalQuantity int64                   `json:"total_quantity"`
	TotalPrice    decimal.Decimal         `json:"total_price"`
	//部分成功モードのときだけ入る
	Failures []CheckoutFailure `json:"failures,omitempty"`
}

type purchaseResult struct {
	line    model.CartLine
	qty     int64
	outcome model.PurchaseOutcome
	err     error
}

// quantities は barcode→購入数量。正の数量がある明細だけ購入する。
// 全成功でカートを空にし、在庫を先回りで減らす。
// 失敗時（既定モード）はカートを触らない。
func (u *CheckoutUsecase) Checkout(ctx context.Context, token string, quantities map[string]int64) (CheckoutSummary, error) {
	lines := u.cart.Lines()
	if len(lines) == 0 {
		return CheckoutSummary{}, &CheckoutError{
			Kind:    CheckoutErrValidation,
			Status:  http.StatusBadRequest,
			Title:   "Cart is empty",
			Message: "Add some products before checking out.",
		}
	}

	selected := make([]model.CartLine, 0, len(lines))
	for _, l := range lines {
		if quantities[l.Barcode] > 0 {
			selected = append(selected, l)
		}
	}
	if len(selected) == 0 {
		return CheckoutSummary{}, &CheckoutError{
			Kind:    CheckoutErrValidation,
			Status:  http.StatusBadRequest,
			Title:   "Nothing selected",
			Message: "Select a quantity for at least one product.",
		}
	}

	attemptID := uuid.NewString()

	//fan-out: 明細ごとに1リクエスト、全完了まで待つ
	results := make([]purchaseResult, len(selected))
	var wg sync.WaitGroup
	for i, line := range selected {
		wg.Add(1)
		go func(i int, line model.CartLine, qty int64) {
			defer wg.Done()
			outcome, err := u.purchase.Purchase(ctx, token, line.SupermarketID, line.ProductID, qty)
			results[i] = purchaseResult{line: line, qty: qty, outcome: outcome, err: err}
		}(i, line, quantities[line.Barcode])
	}
	wg.Wait()

	if u.allowPartial {
		return u.aggregatePartial(ctx, attemptID, results)
	}
	return u.aggregateAllOrNothing(ctx, attemptID, results)
}

// 既定: 1件でも失敗したら全体失敗。カートはそのまま。
func (u *CheckoutUsecase) aggregateAllOrNothing(ctx context.Context, attemptID string, results []purchaseResult) (CheckoutSummary, error) {
	for _, r := range results {
		if r.err != nil {
			u.log.WithFields(logrus.Fields{
				"attempt_id": attemptID,
				"product_id": r.line.ProductID,
			}).WithError(r.err).Warn("purchase failed")
			return CheckoutSummary{}, classifyPurchaseError(r.err)
		}
	}

	summary := CheckoutSummary{AttemptID: attemptID, TotalPrice: decimal.Zero}
	for _, r := range results {
		summary.Outcomes = append(summary.Outcomes, r.outcome)
		summary.TotalQuantity += r.outcome.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(r.outcome.TotalPrice)
	}

	u.cart.Clear(ctx)
	for _, r := range results {
		u.inventory.ReduceQuantity(ctx, r.line.Barcode, r.line.SupermarketID, r.qty)
	}

	u.log.WithFields(logrus.Fields{
		"attempt_id": attemptID,
		"items":      len(results),
	}).Info("checkout completed")

	return summary, nil
}

// 改良モード: 成功した明細だけカートから外し、失敗は一覧で報告する。
func (u *CheckoutUsecase) aggregatePartial(ctx context.Context, attemptID string, results []purchaseResult) (CheckoutSummary, error) {
	summary := CheckoutSummary{AttemptID: attemptID, TotalPrice: decimal.Zero}
	var firstErr *CheckoutError

	for _, r := range results {
		if r.err != nil {
			ce := classifyPurchaseError(r.err)
			if firstErr == nil {
				firstErr = ce
			}
			summary.Failures = append(summary.Failures, CheckoutFailure{
				ProductID:         r.line.ProductID,
				ProductName:       r.line.Name,
				Barcode:           r.line.Barcode,
				Title:             ce.Title,
				Message:           ce.Message,
				AvailableQuantity: ce.AvailableQuantity,
			})
			continue
		}

		summary.Outcomes = append(summary.Outcomes, r.outcome)
		summary.TotalQuantity += r.outcome.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(r.outcome.TotalPrice)

		u.cart.RemoveLine(ctx, r.line.ProductID, r.line.SupermarketID)
		u.inventory.ReduceQuantity(ctx, r.line.Barcode, r.line.SupermarketID, r.qty)
	}

	//1件も買えなかったときはエラー扱い
	if len(summary.Outcomes) == 0 {
		return CheckoutSummary{}, firstErr
	}
	return summary, nil
}

// サーバーのステータスコードをUI向けの分類に写す。
func classifyPurchaseError(err error) *CheckoutError {
	ae, ok := repo.AsAPIError(err)
	if !ok {
		return &CheckoutError{
			Kind:    CheckoutErrUnknown,
			Status:  http.StatusInternalServerError,
			Title:   "Purchase failed",
			Message: "Something went wrong, please try again later.",
		}
	}

	switch ae.Status {
	case http.StatusUnauthorized:
		return &CheckoutError{
			Kind:    CheckoutErrUnauthorized,
			Status:  http.StatusUnauthorized,
			Title:   "Login required",
			Message: "You must be logged in to complete the purchase.",
		}
	case http.StatusBadRequest:
		msg := ae.Message
		if ae.AvailableQuantity != nil {
			msg = fmt.Sprintf("Only %d available.", *ae.AvailableQuantity)
		}
		if msg == "" {
			msg = "The requested quantity is not available."
		}
		return &CheckoutError{
			Kind:              CheckoutErrBadRequest,
			Status:            http.StatusBadRequest,
			Title:             "Quantity not available",
			Message:           msg,
			AvailableQuantity: ae.AvailableQuantity,
		}
	case http.StatusNotFound:
		return &CheckoutError{
			Kind:    CheckoutErrNotFound,
			Status:  http.StatusNotFound,
			Title:   "Product unavailable",
			Message: "This product is no longer available at this supermarket.",
		}
	default:
		return &CheckoutError{
			Kind:    CheckoutErrUnknown,
			Status:  ae.Status,
			Title:   "Purchase failed",
			Message: "Something went wrong, please try again later.",
		}
	}
}
