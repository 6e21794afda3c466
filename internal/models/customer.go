package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户表（仅读取通知所需字段）
type Customer struct {
	ID          uint           `gorm:"primarykey" json:"id"`                 // 主键
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`    // 邮箱
	DisplayName string         `gorm:"type:varchar(64)" json:"display_name"` // 昵称
	Locale      string         `gorm:"type:varchar(20)" json:"locale"`       // 语言偏好
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                           // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                       // 软删除时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
