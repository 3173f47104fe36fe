package repository

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/d60-Lab/portfolio/internal/model"
)

func BenchmarkPostAndReplyWrite(b *testing.B) {
	db := setupTestDB(b)
	posts := NewPostRepository(db)
	replies := NewReplyRepository(db)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := &model.Post{Message: fmt.Sprintf("p%d", i), Timestamp: "2024-01-01T00:00:00"}
		_ = posts.Create(ctx, p)
		_ = replies.Create(ctx, &model.Reply{PostID: p.ID, Message: "r", Timestamp: "2024-01-01T00:00:00"})
	}
}

func BenchmarkListPostsWithReplies(b *testing.B) {
	db := setupTestDB(b)
	posts := NewPostRepository(db)
	replies := NewReplyRepository(db)
	ctx := context.Background()

	// 构造：200 个帖子，每个 0~9 条回复
	const N = 200
	r := rand.New(rand.NewSource(1))
	for i := 0; i < N; i++ {
		p := &model.Post{Message: fmt.Sprintf("p%d", i), Timestamp: "2024-01-01T00:00:00"}
		_ = posts.Create(ctx, p)
		for j := 0; j < r.Intn(10); j++ {
			_ = replies.Create(ctx, &model.Reply{PostID: p.ID, Message: "r", Timestamp: "2024-01-01T00:00:00"})
		}
	}

	b.ResetTimer()
	b.Run("Batched", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			list, _ := posts.ListDesc(ctx)
			ids := make([]int64, len(list))
			for k, p := range list {
				ids[k] = p.ID
			}
			_, _ = replies.ListByPostIDs(ctx, ids)
		}
	})

	b.Run("PerPost", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			list, _ := posts.ListDesc(ctx)
			for _, p := range list {
				_, _ = replies.ListByPostIDs(ctx, []int64{p.ID})
			}
		}
	})
}
