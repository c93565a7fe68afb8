package model

import "time"

// User 注册用户
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	Email     string    `gorm:"type:varchar(256);uniqueIndex:idx_user_email;not null" json:"email"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	Avatar    string    `gorm:"type:varchar(256)" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }
