package book

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// 字段长度上限（按字符计）
const (
	MaxTitleLen    = 100
	MaxAuthorLen   = 100
	MaxLanguageLen = 50
	MaxCategoryLen = 50
)

// Book 图书实体
// ID由存储层分配（自增），创建后不可变
type Book struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Language string `json:"language"`
	Category string `json:"category"`
}

// NewBook 创建新图书（ID为0，由Repository回填）
func NewBook(title, author, language, category string) *Book {
	return &Book{
		Title:    title,
		Author:   author,
		Language: language,
		Category: category,
	}
}

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate 校验必填与长度约束
// 返回nil表示通过
func (b *Book) Validate() []FieldError {
	var errs []FieldError
	check := func(field, value string, max int) {
		switch {
		case strings.TrimSpace(value) == "":
			errs = append(errs, FieldError{Field: field, Message: field + " is required"})
		case utf8.RuneCountInString(value) > max:
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s must be at most %d characters", field, max)})
		}
	}

	check("title", b.Title, MaxTitleLen)
	check("author", b.Author, MaxAuthorLen)
	check("language", b.Language, MaxLanguageLen)
	check("category", b.Category, MaxCategoryLen)
	return errs
}
