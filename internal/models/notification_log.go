package models

import "time"

// NotificationLog 通知发送记录
type NotificationLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Channel   string    `gorm:"type:varchar(32);not null" json:"channel"`
	Recipient string    `gorm:"type:varchar(255)" json:"recipient"`
	Status    string    `gorm:"index;not null" json:"status"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (NotificationLog) TableName() string {
	return "notification_logs"
}
