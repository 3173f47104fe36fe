package model

// BlogPost 博客文章，更新时整体覆盖 title/category/content/timestamp
type BlogPost struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title     string `json:"title" gorm:"type:text;not null"`
	Category  string `json:"category" gorm:"type:text;not null"`
	Content   string `json:"content" gorm:"type:text;not null"`
	Timestamp string `json:"timestamp" gorm:"column:timestamp;type:text;not null"`
}

func (BlogPost) TableName() string { return "blogs" }

// BlogRequest 创建与更新共用的请求体
type BlogRequest struct {
	Title    *string `json:"title" binding:"required"`
	Category *string `json:"category" binding:"required"`
	Content  *string `json:"content" binding:"required"`
}

// ContactRequest 联系表单
type ContactRequest struct {
	FullName *string `json:"fullname" binding:"required"`
	Email    *string `json:"email" binding:"required"`
	Message  *string `json:"message" binding:"required"`
}

// StatusResponse 删除与联系表单的响应
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
