package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/portfolio/internal/model"
)

// InitSchema 初始化数据库表结构；表已存在时为空操作
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Post{}, &model.Reply{}, &model.BlogPost{}); err != nil {
		return fmt.Errorf("failed to migrate routine tables: %w", err)
	}
	return nil
}
