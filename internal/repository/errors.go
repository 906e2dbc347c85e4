package repository

import "errors"

var (
	// 対象の行が無い
	ErrNotFound = errors.New("not found")

	// ユニーク制約違反、または条件付き更新が空振りした
	ErrConflict = errors.New("conflict")
)
