package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/internal/model"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	// ListDesc 按 id 倒序返回全部帖子（不含回复）
	ListDesc(ctx context.Context) ([]model.Post, error)
	Count(ctx context.Context) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) ListDesc(ctx context.Context) ([]model.Post, error) {
	var res []model.Post
	err := r.db.WithContext(ctx).Order("id DESC").Find(&res).Error
	return res, err
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&cnt).Error
	return cnt, err
}
