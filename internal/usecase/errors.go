package usecase

import (
	"errors"
	"fmt"
)

// エラーの種類。handlerがHTTPステータスとレスポンスのerrorフィールドに変換する。
type ErrorKind string

const (
	// 入力不正。リトライしない。
	KindValidation ErrorKind = "validation"

	// 対象が無い。
	KindNotFound ErrorKind = "not_found"

	// 競合（二重checkoutなど）。
	KindConflict ErrorKind = "conflict"

	// 永続層の失敗。呼び出し元には一般的なサーバーエラーとして見せる。
	KindStorage ErrorKind = "storage"
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidationError(message string) error {
	return &AppError{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewStorageError(message string) error {
	return &AppError{Kind: KindStorage, Message: message}
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}
