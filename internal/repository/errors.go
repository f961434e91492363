package repository

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// バックエンドがエラー時に返す {error, message, available_quantity?} の写し。
// available_quantity は在庫不足(400)のときだけ入ることがある。
type APIError struct {
	Status            int
	Code              string
	Message           string
	AvailableQuantity *int64
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}
