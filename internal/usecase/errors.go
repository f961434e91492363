package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// チェックアウト失敗の分類。
type CheckoutErrorKind string

const (
	//ネットワークに出る前に弾いた（カート空など）
	CheckoutErrValidation CheckoutErrorKind = "VALIDATION"
	//HTTP 401
	CheckoutErrUnauthorized CheckoutErrorKind = "UNAUTHORIZED"
	//HTTP 400（在庫不足ヒント付きのことがある）
	CheckoutErrBadRequest CheckoutErrorKind = "BAD_REQUEST"
	//HTTP 404（商品がもう無い）
	CheckoutErrNotFound CheckoutErrorKind = "NOT_FOUND"
	//その他・ネットワーク障害
	CheckoutErrUnknown CheckoutErrorKind = "UNKNOWN"
)

// チェックアウト全体の失敗。UIにはTitle+Messageをそのまま出す。
// 自動リトライはしない。
type CheckoutError struct {
	Kind              CheckoutErrorKind
	Status            int
	Title             string
	Message           string
	AvailableQuantity *int64
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func AsCheckoutError(err error) (*CheckoutError, bool) {
	var ce *CheckoutError
	ok := errors.As(err, &ce)
	return ce, ok
}
