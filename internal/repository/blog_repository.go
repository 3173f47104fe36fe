package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/internal/model"
)

// BlogRepository 博客仓储接口
type BlogRepository interface {
	// Create 创建博客，回填自增 id
	Create(ctx context.Context, blog *model.BlogPost) error

	// ListDesc 按 id 倒序返回全部博客
	ListDesc(ctx context.Context) ([]model.BlogPost, error)

	// Update 按 id 覆盖 title/category/content/timestamp，不检查行是否存在
	Update(ctx context.Context, blog *model.BlogPost) error

	// Delete 按 id 删除，未命中也不报错
	Delete(ctx context.Context, id int64) error

	// Count 统计博客数量
	Count(ctx context.Context) (int64, error)
}

// blogRepository gorm 实现
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository 创建博客仓储
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.BlogPost) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

func (r *blogRepository) ListDesc(ctx context.Context) ([]model.BlogPost, error) {
	var blogs []model.BlogPost
	err := r.db.WithContext(ctx).Order("id DESC").Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *model.BlogPost) error {
	// 用 map 更新，空字符串也会写入
	return r.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ?", blog.ID).
		Updates(map[string]any{
			"title":     blog.Title,
			"category":  blog.Category,
			"content":   blog.Content,
			"timestamp": blog.Timestamp,
		}).Error
}

func (r *blogRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BlogPost{}).Error
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlogPost{}).Count(&count).Error
	return count, err
}
