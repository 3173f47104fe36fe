package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/internal/model"
)

// sqlite 单条语句的绑定参数有上限，IN 查询分批执行
const inChunk = 500

type ReplyRepository interface {
	// Create 插入回复，不检查 post_id 是否存在
	Create(ctx context.Context, reply *model.Reply) error
	// ListByPostIDs 返回这些帖子的全部回复，按 id 正序
	ListByPostIDs(ctx context.Context, postIDs []int64) ([]model.Reply, error)
	Count(ctx context.Context) (int64, error)
}

type replyRepository struct{ db *gorm.DB }

func NewReplyRepository(db *gorm.DB) ReplyRepository { return &replyRepository{db: db} }

func (r *replyRepository) Create(ctx context.Context, reply *model.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) ListByPostIDs(ctx context.Context, postIDs []int64) ([]model.Reply, error) {
	res := make([]model.Reply, 0)
	for start := 0; start < len(postIDs); start += inChunk {
		end := start + inChunk
		if end > len(postIDs) {
			end = len(postIDs)
		}
		var batch []model.Reply
		if err := r.db.WithContext(ctx).
			Where("post_id IN ?", postIDs[start:end]).
			Order("id ASC").
			Find(&batch).Error; err != nil {
			return nil, err
		}
		res = append(res, batch...)
	}
	return res, nil
}

func (r *replyRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Reply{}).Count(&cnt).Error
	return cnt, err
}
