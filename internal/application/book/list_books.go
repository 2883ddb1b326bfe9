package book

import (
	"context"

	"github.com/xiebiao/bookapi/internal/domain/book"
)

// PageResult 分页结果
type PageResult struct {
	Items    []*book.Book
	Page     int
	PageSize int
	Total    int64
}

// List 全部图书，按插入顺序
func (uc *UseCase) List(ctx context.Context) (books []*book.Book, err error) {
	ctx, done := uc.startOp(ctx, "list", 0)
	defer func() { done(err) }()

	return uc.repo.List(ctx)
}

// Get 根据ID获取图书，不存在返回ErrBookNotFound
func (uc *UseCase) Get(ctx context.Context, id uint) (b *book.Book, err error) {
	ctx, done := uc.startOp(ctx, "get", id)
	defer func() { done(err) }()

	if id == 0 {
		return nil, book.ErrInvalidID
	}

	b, err = uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

// Page 分页查询
// page/pageSize小于1返回ErrInvalidPage，pageSize超过MaxPageSize时截断
func (uc *UseCase) Page(ctx context.Context, page, pageSize int) (res *PageResult, err error) {
	ctx, done := uc.startOp(ctx, "page", 0)
	defer func() { done(err) }()

	page, pageSize, err = book.NormalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	items, err := uc.repo.Page(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &PageResult{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// ByAuthor 作者精确匹配
func (uc *UseCase) ByAuthor(ctx context.Context, author string) (books []*book.Book, err error) {
	ctx, done := uc.startOp(ctx, "by_author", 0)
	defer func() { done(err) }()

	return uc.repo.FindByAuthor(ctx, author)
}

// ByCategory 分类精确匹配
func (uc *UseCase) ByCategory(ctx context.Context, category string) (books []*book.Book, err error) {
	ctx, done := uc.startOp(ctx, "by_category", 0)
	defer func() { done(err) }()

	return uc.repo.FindByCategory(ctx, category)
}
