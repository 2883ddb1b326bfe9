package dto

import (
	"github.com/xiebiao/bookapi/internal/domain/book"
)

// BookRequest 创建/更新图书请求
// 创建时id被忽略；更新时id必须与路径一致
// max按字符数计算（validator使用utf8.RuneCountInString）
type BookRequest struct {
	ID       uint   `json:"id" example:"1"`
	Title    string `json:"title" binding:"required,max=100" example:"The Go Programming Language"`
	Author   string `json:"author" binding:"required,max=100" example:"Alan Donovan"`
	Language string `json:"language" binding:"required,max=50" example:"English"`
	Category string `json:"category" binding:"required,max=50" example:"Programming"`
}

// ToEntity 转换为领域实体
func (r *BookRequest) ToEntity() *book.Book {
	b := book.NewBook(r.Title, r.Author, r.Language, r.Category)
	b.ID = r.ID
	return b
}

// BookResponse 图书响应
type BookResponse struct {
	ID       uint   `json:"id" example:"1"`
	Title    string `json:"title" example:"The Go Programming Language"`
	Author   string `json:"author" example:"Alan Donovan"`
	Language string `json:"language" example:"English"`
	Category string `json:"category" example:"Programming"`
}

// FromBook 领域实体 → 响应
func FromBook(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Language: b.Language,
		Category: b.Category,
	}
}

// FromBooks 批量转换，空结果返回[]而不是null
func FromBooks(books []*book.Book) []*BookResponse {
	items := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		items = append(items, FromBook(b))
	}
	return items
}

// PageQuery 分页查询参数
// 缺省page=1, pageSize=5；小于1由用例拒绝，超过100截断
type PageQuery struct {
	Page     int `form:"page,default=1" example:"1"`
	PageSize int `form:"pageSize,default=5" example:"5"`
}

// ListQuery GET /books的可选过滤参数
type ListQuery struct {
	Author   string `form:"author"`
	Category string `form:"category"`
}

// AuthorQuery 按作者查询
type AuthorQuery struct {
	Author string `form:"author" binding:"required" example:"Author 1"`
}

// CategoryQuery 按分类查询
type CategoryQuery struct {
	Category string `form:"category" binding:"required" example:"Fiction"`
}
