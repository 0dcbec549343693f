package usecase

import (
	"errors"
	"fmt"
)

// ボット側で利用者向けメッセージに変換する業務エラー。
// NotFound / StoreUnavailable は repository の番兵をそのまま使う。
var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCart       = errors.New("empty cart")
	ErrOrderFailed     = errors.New("order failed")
)

// 管理API用。HTTPステータスを運ぶ。
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
