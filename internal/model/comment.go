package model

import "time"

// Comment 帖子评论；作者展示信息同样在创建时快照
type Comment struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	PostID       string    `gorm:"type:varchar(36);index:idx_comment_post;not null" json:"-"`
	AuthorID     string    `gorm:"type:varchar(36);not null" json:"author_id"`
	AuthorName   string    `gorm:"type:varchar(128)" json:"author_name"`
	AuthorAvatar string    `gorm:"type:varchar(256)" json:"author_avatar"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
