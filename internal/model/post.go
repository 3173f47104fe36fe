package model

// Post 日常动态（按 id 倒序展示，回复按 id 正序内嵌）
type Post struct {
	ID        int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Message   string  `json:"message" gorm:"type:text;not null"`
	Timestamp string  `json:"timestamp" gorm:"column:timestamp;type:text;not null"`
	Replies   []Reply `json:"replies" gorm:"-"`
}

func (Post) TableName() string { return "posts" }

// CreatePostRequest 发帖请求体；指针字段用于区分"缺失"与"空字符串"
type CreatePostRequest struct {
	Message *string `json:"message" binding:"required"`
}
