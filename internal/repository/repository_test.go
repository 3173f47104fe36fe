package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/internal/model"
)

func setupTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routine.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)
	require.NoError(t, InitSchema(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestInitSchemaIdempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	posts := NewPostRepository(db)
	require.NoError(t, posts.Create(ctx, &model.Post{Message: "keep", Timestamp: "2024-01-01T00:00:00"}))

	require.NoError(t, InitSchema(db))
	require.NoError(t, InitSchema(db))

	cnt, err := posts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
	for _, table := range []string{"posts", "replies", "blogs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestPostListDescending(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewPostRepository(db)

	var ids []int64
	for _, msg := range []string{"p1", "p2", "p3"} {
		p := &model.Post{Message: msg, Timestamp: "2024-01-01T00:00:00"}
		require.NoError(t, repo.Create(ctx, p))
		if len(ids) > 0 {
			assert.Greater(t, p.ID, ids[len(ids)-1])
		}
		ids = append(ids, p.ID)
	}

	list, err := repo.ListDesc(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"p3", "p2", "p1"}, []string{list[0].Message, list[1].Message, list[2].Message})
}

func TestReplyOrderingAndOrphans(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	posts := NewPostRepository(db)
	replies := NewReplyRepository(db)

	a := &model.Post{Message: "a", Timestamp: "t"}
	b := &model.Post{Message: "b", Timestamp: "t"}
	require.NoError(t, posts.Create(ctx, a))
	require.NoError(t, posts.Create(ctx, b))

	require.NoError(t, replies.Create(ctx, &model.Reply{PostID: a.ID, Message: "a1", Timestamp: "t"}))
	require.NoError(t, replies.Create(ctx, &model.Reply{PostID: b.ID, Message: "b1", Timestamp: "t"}))
	require.NoError(t, replies.Create(ctx, &model.Reply{PostID: a.ID, Message: "a2", Timestamp: "t"}))

	// 不存在的帖子也能写入回复
	orphan := &model.Reply{PostID: 9999, Message: "orphan", Timestamp: "t"}
	require.NoError(t, replies.Create(ctx, orphan))
	assert.NotZero(t, orphan.ID)

	got, err := replies.ListByPostIDs(ctx, []int64{a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].Message)
	assert.Equal(t, "a2", got[1].Message)
	assert.Less(t, got[0].ID, got[1].ID)

	none, err := replies.ListByPostIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	cnt, err := replies.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cnt)
}

func TestBlogUpdateMissingRowDoesNotInsert(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewBlogRepository(db)

	require.NoError(t, repo.Create(ctx, &model.BlogPost{Title: "t", Category: "c", Content: "x", Timestamp: "t0"}))
	require.NoError(t, repo.Update(ctx, &model.BlogPost{ID: 5000, Title: "ghost", Category: "c", Content: "x", Timestamp: "t1"}))

	cnt, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)
}

func TestBlogUpdateWritesEmptyStrings(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewBlogRepository(db)

	b := &model.BlogPost{Title: "t", Category: "c", Content: "x", Timestamp: "t0"}
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Update(ctx, &model.BlogPost{ID: b.ID, Title: "", Category: "", Content: "", Timestamp: "t1"}))

	list, err := repo.ListDesc(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.BlogPost{ID: b.ID, Timestamp: "t1"}, list[0])
}

func TestBlogDeleteAndIDsNeverReused(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewBlogRepository(db)

	first := &model.BlogPost{Title: "1", Category: "c", Content: "x", Timestamp: "t"}
	require.NoError(t, repo.Create(ctx, first))

	require.NoError(t, repo.Delete(ctx, first.ID+100))
	cnt, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cnt)

	require.NoError(t, repo.Delete(ctx, first.ID))
	second := &model.BlogPost{Title: "2", Category: "c", Content: "x", Timestamp: "t"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Greater(t, second.ID, first.ID)

	list, err := repo.ListDesc(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].Title)
}
