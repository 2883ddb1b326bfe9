package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xiebiao/bookapi/internal/domain/book"
)

// BookRepository 内存版图书仓储
// 用于storage.driver=memory和handler测试
// ID自增且不复用，删除后同一ID不会再出现
type BookRepository struct {
	mu     sync.RWMutex
	books  map[uint]book.Book
	nextID uint
}

// NewBookRepository 创建内存仓储
func NewBookRepository() *BookRepository {
	return &BookRepository{
		books:  make(map[uint]book.Book),
		nextID: 1,
	}
}

// List 全部图书，按ID升序
func (r *BookRepository) List(_ context.Context) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(book.Book) bool { return true }), nil
}

// FindByID 不存在返回(nil, nil)
func (r *BookRepository) FindByID(_ context.Context, id uint) (*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// Create 分配新ID并保存副本
func (r *BookRepository) Create(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	r.books[b.ID] = *b
	return nil
}

// Update 覆盖已有记录，不存在返回ErrConcurrencyConflict
func (r *BookRepository) Update(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrConcurrencyConflict
	}
	r.books[b.ID] = *b
	return nil
}

// Delete 删除记录，不存在返回ErrConcurrencyConflict
func (r *BookRepository) Delete(_ context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.books[b.ID]; !ok {
		return book.ErrConcurrencyConflict
	}
	delete(r.books, b.ID)
	return nil
}

// Exists 判断ID是否存在
func (r *BookRepository) Exists(_ context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.books[id]
	return ok, nil
}

// Page 分页查询
func (r *BookRepository) Page(_ context.Context, page, pageSize int) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.filter(func(book.Book) bool { return true })
	start := book.Offset(page, pageSize)
	if start >= len(all) {
		return []*book.Book{}, nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], nil
}

// FindByAuthor 作者精确匹配
func (r *BookRepository) FindByAuthor(_ context.Context, author string) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(b book.Book) bool { return b.Author == author }), nil
}

// FindByCategory 分类精确匹配
func (r *BookRepository) FindByCategory(_ context.Context, category string) ([]*book.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filter(func(b book.Book) bool { return b.Category == category }), nil
}

// Count 图书总数
func (r *BookRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.books)), nil
}

// filter 调用方需持有读锁
func (r *BookRepository) filter(match func(book.Book) bool) []*book.Book {
	result := make([]*book.Book, 0, len(r.books))
	for _, b := range r.books {
		if match(b) {
			copied := b
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// TxManager 内存仓储没有事务，直接执行fn
type TxManager struct{}

// Transaction 实现book.TxManager
func (TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
