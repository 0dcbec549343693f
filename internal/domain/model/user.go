package model

import "time"

type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleExecutor Role = "EXECUTOR"
)

// Telegramユーザー。tg_idで一意。
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TgID      int64     `gorm:"not null;uniqueIndex" json:"tg_id"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
