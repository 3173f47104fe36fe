package model

// Reply 帖子下的回复；post_id 不做存在性校验，也不出现在响应里
type Reply struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	PostID    int64  `json:"-" gorm:"not null;index:idx_reply_post"`
	Message   string `json:"message" gorm:"type:text;not null"`
	Timestamp string `json:"timestamp" gorm:"column:timestamp;type:text;not null"`
}

func (Reply) TableName() string { return "replies" }

type CreateReplyRequest struct {
	Message *string `json:"message" binding:"required"`
}
