package model

import "time"

// Like 点赞关系
type Like struct {
	ID     string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID string `gorm:"type:varchar(36);index:idx_like_pair,unique;not null" json:"-"`
	UserID string `gorm:"type:varchar(36);index:idx_like_pair,unique;not null" json:"user_id"`
	// 复合唯一键，保证同一用户对同一帖子至多一条点赞
	// idx_like_pair = (post_id, user_id)
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string { return "likes" }
