package models

import (
	"time"
)

// DefaultThumb 新規ユーザーのデフォルトアバター
const DefaultThumb = "images/human.png"

// User ユーザーモデル
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserName string `json:"userName" gorm:"uniqueIndex;size:191;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password string `json:"-" gorm:"not null"`
	Thumb    string `json:"thumb"`
	Fruit    string `json:"fruit"`

	// パスワード再設定用。発行から1時間で失効し、使用後はクリアされる
	ResetToken           *string    `json:"-" gorm:"index;size:191"`
	ResetTokenExpiration *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// リレーション
	Posts []Post `json:"-"`
}

// Post 投稿モデル
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"size:140;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// リレーション
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
