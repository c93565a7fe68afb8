package model

import "time"

// Post 内容主体；作者展示信息在创建时快照，之后不随 User 变化
type Post struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	AuthorID     string    `gorm:"type:varchar(36);index:idx_post_author;not null" json:"author_id"`
	AuthorName   string    `gorm:"type:varchar(128)" json:"author_name"`
	AuthorAvatar string    `gorm:"type:varchar(256)" json:"author_avatar"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time `gorm:"index:idx_post_created" json:"created_at"`

	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments"`
}

func (Post) TableName() string { return "posts" }
