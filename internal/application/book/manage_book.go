package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookapi/internal/domain/book"
)

// Create 校验并创建图书，返回的图书带有存储分配的ID
// 入参ID被忽略
func (uc *UseCase) Create(ctx context.Context, b *book.Book) (created *book.Book, err error) {
	ctx, done := uc.startOp(ctx, "create", 0)
	defer func() { done(err) }()

	if fields := b.Validate(); len(fields) > 0 {
		return nil, book.NewValidationError(fields)
	}

	created = book.NewBook(b.Title, b.Author, b.Language, b.Category)
	if err := uc.repo.Create(ctx, created); err != nil {
		return nil, err
	}

	uc.publish(ctx, book.EventCreated, created)
	return created, nil
}

// Update 覆盖图书的全部字段
//   - 路径ID与请求体ID不一致：ErrIDMismatch（不修改任何数据）
//   - 字段校验失败：*ValidationError
//   - 存储报告冲突时再查一次：已不存在返回ErrBookNotFound，仍存在则原样返回冲突错误
func (uc *UseCase) Update(ctx context.Context, id uint, b *book.Book) (err error) {
	ctx, done := uc.startOp(ctx, "update", id)
	defer func() { done(err) }()

	if id == 0 {
		return book.ErrInvalidID
	}
	if b.ID != id {
		return book.ErrIDMismatch
	}
	if fields := b.Validate(); len(fields) > 0 {
		return book.NewValidationError(fields)
	}

	err = uc.repo.Update(ctx, b)
	if errors.Is(err, book.ErrConcurrencyConflict) {
		exists, existsErr := uc.repo.Exists(ctx, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return book.ErrBookNotFound
		}
		return err
	}
	if err != nil {
		return err
	}

	uc.publish(ctx, book.EventUpdated, b)
	return nil
}

// Delete 删除图书
// 查找与删除在同一事务内；查不到或删除时行已消失都返回ErrBookNotFound
func (uc *UseCase) Delete(ctx context.Context, id uint) (err error) {
	ctx, done := uc.startOp(ctx, "delete", id)
	defer func() { done(err) }()

	if id == 0 {
		return book.ErrInvalidID
	}

	var deleted *book.Book
	err = uc.tx.Transaction(ctx, func(ctx context.Context) error {
		b, err := uc.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return book.ErrBookNotFound
		}
		if err := uc.repo.Delete(ctx, b); err != nil {
			return err
		}
		deleted = b
		return nil
	})
	if errors.Is(err, book.ErrConcurrencyConflict) {
		return book.ErrBookNotFound
	}
	if err != nil {
		return err
	}

	uc.publish(ctx, book.EventDeleted, deleted)
	return nil
}
