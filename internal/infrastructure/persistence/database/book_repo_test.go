package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookapi/internal/domain/book"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

func setupTestDB(t *testing.T) (*gorm.DB, book.Repository) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "books.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db, NewBookRepository(db)
}

func seed(t *testing.T, repo book.Repository, n int) []*book.Book {
	t.Helper()
	books := make([]*book.Book, 0, n)
	for i := 1; i <= n; i++ {
		b := book.NewBook(fmt.Sprintf("Book %d", i), fmt.Sprintf("Author %d", i%2+1), "English", "Fiction")
		require.NoError(t, repo.Create(context.Background(), b))
		books = append(books, b)
	}
	return books
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()

	b := book.NewBook("Book 1", "Author 1", "English", "Fiction")
	b.ID = 999 // 入参ID被忽略
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, b.ID)
	assert.NotEqual(t, uint(999), b.ID)

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, found)

	missing, err := repo.FindByID(ctx, b.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestBookRepository_IDsUnique(t *testing.T) {
	_, repo := setupTestDB(t)
	books := seed(t, repo, 5)

	seen := make(map[uint]bool)
	for _, b := range books {
		assert.False(t, seen[b.ID], "重复ID %d", b.ID)
		seen[b.ID] = true
	}
}

func TestBookRepository_ListEmpty(t *testing.T) {
	_, repo := setupTestDB(t)

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestBookRepository_Update(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()
	b := seed(t, repo, 1)[0]

	b.Title = "Updated"
	require.NoError(t, repo.Update(ctx, b))

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated", found.Title)

	// 写入相同值仍视为成功
	require.NoError(t, repo.Update(ctx, b))

	ghost := book.NewBook("Ghost", "Nobody", "English", "Fiction")
	ghost.ID = b.ID + 100
	err = repo.Update(ctx, ghost)
	assert.True(t, errors.Is(err, book.ErrConcurrencyConflict))
}

func TestBookRepository_Delete(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()
	b := seed(t, repo, 1)[0]

	require.NoError(t, repo.Delete(ctx, b))

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	exists, err := repo.Exists(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	err = repo.Delete(ctx, b)
	assert.True(t, errors.Is(err, book.ErrConcurrencyConflict))
}

func TestBookRepository_Page(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()
	seed(t, repo, 12)

	all, err := repo.List(ctx)
	require.NoError(t, err)

	var concatenated []*book.Book
	for p := 1; p <= 4; p++ {
		page, err := repo.Page(ctx, p, 5)
		require.NoError(t, err)
		want := 5
		if rest := 12 - (p-1)*5; rest < want {
			want = max(0, rest)
		}
		assert.Len(t, page, want, "page %d", p)
		concatenated = append(concatenated, page...)
	}
	assert.Equal(t, all, concatenated)

	// 偏移量超出int范围时不能回绕到第一页
	for _, tc := range []struct{ page, size int }{{(1 << 61) + 1, 5}, {(1 << 62) + 1, 4}} {
		huge, err := repo.Page(ctx, tc.page, tc.size)
		require.NoError(t, err)
		assert.Empty(t, huge)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
}

func TestBookRepository_FindByAuthorAndCategory(t *testing.T) {
	_, repo := setupTestDB(t)
	ctx := context.Background()
	seed(t, repo, 4)
	require.NoError(t, repo.Create(ctx, book.NewBook("Book X", "author 1", "German", "History")))

	byAuthor, err := repo.FindByAuthor(ctx, "Author 1")
	require.NoError(t, err)
	require.Len(t, byAuthor, 2)
	for _, b := range byAuthor {
		assert.Equal(t, "Author 1", b.Author)
	}

	// 区分大小写
	lower, err := repo.FindByAuthor(ctx, "author 1")
	require.NoError(t, err)
	require.Len(t, lower, 1)
	assert.Equal(t, "Book X", lower[0].Title)

	byCategory, err := repo.FindByCategory(ctx, "History")
	require.NoError(t, err)
	assert.Len(t, byCategory, 1)

	none, err := repo.FindByCategory(ctx, "Poetry")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTxManager_Transaction(t *testing.T) {
	db, repo := setupTestDB(t)
	tm := NewTxManager(db)
	ctx := context.Background()
	b := seed(t, repo, 1)[0]

	t.Run("返回错误时回滚", func(t *testing.T) {
		boom := errors.New("boom")
		err := tm.Transaction(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.Delete(ctx, b))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("成功时提交", func(t *testing.T) {
		err := tm.Transaction(ctx, func(ctx context.Context) error {
			found, err := repo.FindByID(ctx, b.ID)
			if err != nil {
				return err
			}
			return repo.Delete(ctx, found)
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestBookRepository_StoreFailure(t *testing.T) {
	db, repo := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.List(context.Background())
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeDatabaseError, appErr.Code)
	assert.True(t, strings.Contains(appErr.Error(), "查询图书列表失败"))
}
