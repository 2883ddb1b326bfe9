package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookapi/internal/domain/book"
	"github.com/xiebiao/bookapi/internal/domain/user"
)

func TestBookRepository_CRUD(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	b := book.NewBook("Book 1", "Author 1", "English", "Fiction")
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, uint(1), b.ID)

	found, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, found)

	// 返回的是副本，修改不影响存储
	found.Title = "changed"
	again, _ := repo.FindByID(ctx, b.ID)
	assert.Equal(t, "Book 1", again.Title)

	b.Title = "Updated"
	require.NoError(t, repo.Update(ctx, b))
	again, _ = repo.FindByID(ctx, b.ID)
	assert.Equal(t, "Updated", again.Title)

	require.NoError(t, repo.Delete(ctx, b))
	missing, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.True(t, errors.Is(repo.Update(ctx, b), book.ErrConcurrencyConflict))
	assert.True(t, errors.Is(repo.Delete(ctx, b), book.ErrConcurrencyConflict))

	// 删除后ID不复用
	next := book.NewBook("Book 2", "Author 2", "English", "Fiction")
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, uint(2), next.ID)
}

func TestBookRepository_PageAndFilter(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()
	for _, a := range []string{"A", "B", "A", "a", "B", "A", "C"} {
		require.NoError(t, repo.Create(ctx, book.NewBook("t", a, "English", "Cat-"+a)))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 7)

	p1, _ := repo.Page(ctx, 1, 3)
	p2, _ := repo.Page(ctx, 2, 3)
	p3, _ := repo.Page(ctx, 3, 3)
	p4, _ := repo.Page(ctx, 4, 3)
	assert.Len(t, p1, 3)
	assert.Len(t, p2, 3)
	assert.Len(t, p3, 1)
	assert.NotNil(t, p4)
	assert.Empty(t, p4)
	assert.Equal(t, all, append(append(p1, p2...), p3...))

	// 偏移量超出int范围时返回空结果
	for _, tc := range []struct{ page, size int }{{(1 << 61) + 1, 5}, {(1 << 62) + 1, 4}} {
		huge, err := repo.Page(ctx, tc.page, tc.size)
		require.NoError(t, err)
		assert.Empty(t, huge)
	}

	byA, _ := repo.FindByAuthor(ctx, "A")
	assert.Len(t, byA, 3)
	byCat, _ := repo.FindByCategory(ctx, "Cat-a")
	assert.Len(t, byCat, 1)

	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(7), count)
}

func TestBookRepository_ConcurrentCreate(t *testing.T) {
	repo := NewBookRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make(chan uint, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := book.NewBook("t", "a", "l", "c")
			_ = repo.Create(ctx, b)
			ids <- b.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, 50)
}

func TestUserRepository_FindByUsername(t *testing.T) {
	repo := NewUserRepository(user.NewUser("test", "hash"))

	u, err := repo.FindByUsername(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)

	missing, err := repo.FindByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
