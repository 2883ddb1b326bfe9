package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/domain/book"
)

// txKey 事务DB在context中的key
type txKey struct{}

// withTx 将事务DB注入context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// txFromContext 提取事务DB
func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey{}).(*gorm.DB)
	return tx, ok
}

// exactMatch 构造区分大小写的等值条件
// sqlite/postgres的"="本身区分大小写；MySQL默认排序规则不区分，需要BINARY
func exactMatch(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "mysql" {
		return "BINARY " + column + " = ?"
	}
	return column + " = ?"
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:       model.ID,
		Title:    model.Title,
		Author:   model.Author,
		Language: model.Language,
		Category: model.Category,
	}
}

// toBookEntities 批量转换，结果永远非nil
func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
