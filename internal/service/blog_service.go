package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/portfolio/internal/cache"
	"github.com/d60-Lab/portfolio/internal/model"
	"github.com/d60-Lab/portfolio/internal/repository"
)

// BlogService 博客增删改查
type BlogService interface {
	CreateBlog(ctx context.Context, title, category, content string) (*model.BlogPost, error)
	ListBlogs(ctx context.Context) ([]model.BlogPost, error)
	// UpdateBlog 无条件更新并原样回显提交内容，id 不存在时也返回成功
	UpdateBlog(ctx context.Context, id int64, title, category, content string) (*model.BlogPost, error)
	// DeleteBlog 无条件删除，id 不存在时也返回成功
	DeleteBlog(ctx context.Context, id int64) error
}

type blogService struct {
	blogRepo repository.BlogRepository
	cache    *cache.ListCache
	now      Clock
}

func NewBlogService(blogRepo repository.BlogRepository, listCache *cache.ListCache, opts ...Option) BlogService {
	o := buildOptions(opts)
	return &blogService{blogRepo: blogRepo, cache: listCache, now: o.now}
}

func (s *blogService) CreateBlog(ctx context.Context, title, category, content string) (*model.BlogPost, error) {
	blog := &model.BlogPost{Title: title, Category: category, Content: content, Timestamp: model.FormatTimestamp(s.now())}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	s.cache.Invalidate(ctx, cache.KeyBlogs)
	return blog, nil
}

func (s *blogService) ListBlogs(ctx context.Context) ([]model.BlogPost, error) {
	return cache.Fetch(ctx, s.cache, cache.KeyBlogs, func(ctx context.Context) ([]model.BlogPost, error) {
		blogs, err := s.blogRepo.ListDesc(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blogs: %w", err)
		}
		if blogs == nil {
			blogs = []model.BlogPost{}
		}
		return blogs, nil
	})
}

func (s *blogService) UpdateBlog(ctx context.Context, id int64, title, category, content string) (*model.BlogPost, error) {
	blog := &model.BlogPost{ID: id, Title: title, Category: category, Content: content, Timestamp: model.FormatTimestamp(s.now())}
	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("update blog %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, cache.KeyBlogs)
	return blog, nil
}

func (s *blogService) DeleteBlog(ctx context.Context, id int64) error {
	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete blog %d: %w", id, err)
	}
	s.cache.Invalidate(ctx, cache.KeyBlogs)
	return nil
}
