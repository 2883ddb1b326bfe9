package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/domain/book"
)

// TxManager 事务管理器
// 通过context传递事务DB，fn内的Repository调用经getDB取到同一个tx
// fn返回error时回滚，返回nil时提交；嵌套调用由GORM使用Savepoint
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) book.TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    b, err := bookRepo.FindByID(ctx, id)
//	    if err != nil || b == nil {
//	        return err
//	    }
//	    return bookRepo.Delete(ctx, b)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	db := m.db
	if tx, ok := txFromContext(ctx); ok {
		db = tx
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
