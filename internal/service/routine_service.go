package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/portfolio/internal/cache"
	"github.com/d60-Lab/portfolio/internal/model"
	"github.com/d60-Lab/portfolio/internal/repository"
)

// RoutineService 日常动态：发帖、回复、列表
type RoutineService interface {
	CreatePost(ctx context.Context, message string) (*model.Post, error)
	AddReply(ctx context.Context, postID int64, message string) (*model.Reply, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
}

type routineService struct {
	postRepo  repository.PostRepository
	replyRepo repository.ReplyRepository
	cache     *cache.ListCache
	now       Clock
}

func NewRoutineService(postRepo repository.PostRepository, replyRepo repository.ReplyRepository, listCache *cache.ListCache, opts ...Option) RoutineService {
	o := buildOptions(opts)
	return &routineService{postRepo: postRepo, replyRepo: replyRepo, cache: listCache, now: o.now}
}

func (s *routineService) CreatePost(ctx context.Context, message string) (*model.Post, error) {
	post := &model.Post{Message: message, Timestamp: model.FormatTimestamp(s.now())}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Replies = []model.Reply{}
	s.cache.Invalidate(ctx, cache.KeyPosts)
	return post, nil
}

// AddReply 不校验帖子是否存在，与表结构一致
func (s *routineService) AddReply(ctx context.Context, postID int64, message string) (*model.Reply, error) {
	reply := &model.Reply{PostID: postID, Message: message, Timestamp: model.FormatTimestamp(s.now())}
	if err := s.replyRepo.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}
	s.cache.Invalidate(ctx, cache.KeyPosts)
	return reply, nil
}

func (s *routineService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return cache.Fetch(ctx, s.cache, cache.KeyPosts, s.loadPosts)
}

// loadPosts 两次查询：帖子按 id 倒序，再一次取回全部回复按 id 正序分组
func (s *routineService) loadPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.ListDesc(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	replies, err := s.replyRepo.ListByPostIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	byPost := make(map[int64][]model.Reply, len(posts))
	for _, r := range replies {
		byPost[r.PostID] = append(byPost[r.PostID], r)
	}
	res := make([]model.Post, len(posts))
	for i, p := range posts {
		p.Replies = byPost[p.ID]
		if p.Replies == nil {
			p.Replies = []model.Reply{}
		}
		res[i] = p
	}
	return res, nil
}
