package book

import (
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "book not found")

	// ErrConcurrencyConflict 更新/删除时目标行已不在预期状态（被并发删除）
	ErrConcurrencyConflict = apperrors.New(apperrors.ErrCodeConflict, "Internal server error")

	// ErrIDMismatch 路径ID与请求体ID不一致
	ErrIDMismatch = apperrors.New(apperrors.ErrCodeIDMismatch, "id in path does not match id in body")

	// ErrInvalidID 无效的图书ID
	ErrInvalidID = apperrors.New(apperrors.ErrCodeInvalidParams, "id must be a positive integer")

	// ErrInvalidPage 分页参数不合法
	ErrInvalidPage = apperrors.New(apperrors.ErrCodeInvalidParams, "page and pageSize must be positive integers")

	// ErrConflictingFilters author与category不能同时指定
	ErrConflictingFilters = apperrors.New(apperrors.ErrCodeInvalidParams, "author and category cannot be combined")

	// ErrInvalidBook 字段校验失败
	ErrInvalidBook = apperrors.New(apperrors.ErrCodeInvalidParams, "validation failed")
)

// ValidationError 字段校验失败，携带逐字段的错误信息
// errors.Is(err, ErrInvalidBook)成立
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError 创建校验错误
func NewValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return ErrInvalidBook.Error()
}

// Unwrap 返回ErrInvalidBook
func (e *ValidationError) Unwrap() error {
	return ErrInvalidBook
}
