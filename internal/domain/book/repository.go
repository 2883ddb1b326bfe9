package book

import (
	"context"
)

// Repository 图书仓储接口
// 由domain层定义，infrastructure层实现（database: gorm, memory: 测试/演示）
// 所有存储失败以AppError(ErrCodeDatabaseError)返回，与"不存在"区分
type Repository interface {
	// List 全部图书，按ID升序（即插入顺序）
	List(ctx context.Context) ([]*Book, error)

	// FindByID 根据ID查找，不存在返回(nil, nil)
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Create 创建图书并回填ID，入参ID被忽略
	Create(ctx context.Context, book *Book) error

	// Update 按ID覆盖全部字段
	// 没有匹配行时返回ErrConcurrencyConflict
	Update(ctx context.Context, book *Book) error

	// Delete 删除调用方先前查到的图书
	// 行已不存在时返回ErrConcurrencyConflict
	Delete(ctx context.Context, book *Book) error

	// Exists 判断ID是否存在（用于区分更新冲突与真正的不存在）
	Exists(ctx context.Context, id uint) (bool, error)

	// Page 分页查询：跳过(page-1)*pageSize条，最多返回pageSize条，page从1开始
	Page(ctx context.Context, page, pageSize int) ([]*Book, error)

	// FindByAuthor 作者精确匹配（区分大小写）
	FindByAuthor(ctx context.Context, author string) ([]*Book, error)

	// FindByCategory 分类精确匹配（区分大小写）
	FindByCategory(ctx context.Context, category string) ([]*Book, error)

	// Count 图书总数
	Count(ctx context.Context) (int64, error)
}

// TxManager 事务边界
// fn内通过ctx传递的Repository调用处于同一事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
