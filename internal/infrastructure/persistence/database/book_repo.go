package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/domain/book"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

// bookRepository 图书仓储实现（GORM，sqlite/mysql/postgres通用）
// 所有查询按id升序，保证List与分页拼接结果一致
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// List 全部图书
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := r.getDB(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WrapDB(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

// FindByID 根据ID查找图书，不存在返回(nil, nil)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.getDB(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.WrapDB(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Create 创建图书，回填自增ID
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:    b.Title,
		Author:   b.Author,
		Language: b.Language,
		Category: b.Category,
	}

	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.WrapDB(err, "创建图书失败")
	}

	b.ID = model.ID
	return nil
}

// Update 覆盖四个业务字段
// UPDATE books SET ... WHERE id = ?，匹配0行说明记录已被删除
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	result := r.getDB(ctx).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"title":    b.Title,
			"author":   b.Author,
			"language": b.Language,
			"category": b.Category,
		})

	if result.Error != nil {
		return apperrors.WrapDB(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrConcurrencyConflict
	}
	return nil
}

// Delete 删除图书（物理删除）
func (r *bookRepository) Delete(ctx context.Context, b *book.Book) error {
	result := r.getDB(ctx).Delete(&BookModel{}, b.ID)
	if result.Error != nil {
		return apperrors.WrapDB(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrConcurrencyConflict
	}
	return nil
}

// Exists 判断ID是否存在
func (r *bookRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.WrapDB(err, "查询图书失败")
	}
	return count > 0, nil
}

// Page 分页查询
func (r *bookRepository) Page(ctx context.Context, page, pageSize int) ([]*book.Book, error) {
	var models []BookModel
	err := r.getDB(ctx).
		Order("id ASC").
		Offset(book.Offset(page, pageSize)).
		Limit(pageSize).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WrapDB(err, "分页查询图书失败")
	}
	return toBookEntities(models), nil
}

// FindByAuthor 作者精确匹配
func (r *bookRepository) FindByAuthor(ctx context.Context, author string) ([]*book.Book, error) {
	return r.findBy(ctx, "author", author)
}

// FindByCategory 分类精确匹配
func (r *bookRepository) FindByCategory(ctx context.Context, category string) ([]*book.Book, error) {
	return r.findBy(ctx, "category", category)
}

func (r *bookRepository) findBy(ctx context.Context, column, value string) ([]*book.Book, error) {
	db := r.getDB(ctx)
	var models []BookModel
	if err := db.Where(exactMatch(db, column), value).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WrapDB(err, "按"+column+"查询图书失败")
	}
	return toBookEntities(models), nil
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&BookModel{}).Count(&count).Error; err != nil {
		return 0, apperrors.WrapDB(err, "统计图书数量失败")
	}
	return count, nil
}

// getDB 优先使用context中的事务DB
func (r *bookRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	return r.db.WithContext(ctx)
}
