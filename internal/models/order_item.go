package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
type OrderItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID         uint           `gorm:"index;not null" json:"order_id"`                          // 订单ID
	CatalogItemID   uint           `gorm:"index;not null" json:"catalog_item_id"`                   // 商品ID
	ItemName        string         `gorm:"type:varchar(128)" json:"item_name"`                      // 商品名称快照
	ItemType        string         `gorm:"type:varchar(64)" json:"item_type"`                       // 商品类型快照
	Quantity        int            `gorm:"not null" json:"quantity"`                                // 数量
	UnitPrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 下单时单价
	Status          string         `gorm:"index;not null" json:"status"`                            // 订单项状态
	IssuedCode      *string        `gorm:"type:varchar(64)" json:"issued_code,omitempty"`           // 兑换码
	TargetAccountID *string        `gorm:"type:varchar(128)" json:"target_account_id,omitempty"`    // 直充账号
	FailReason      string         `gorm:"type:varchar(255)" json:"fail_reason,omitempty"`          // 失败原因
	FulfilledAt     *time.Time     `gorm:"index" json:"fulfilled_at,omitempty"`                     // 交付时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// HasTargetAccount 是否为直充订单项
func (i OrderItem) HasTargetAccount() bool {
	return i.TargetAccountID != nil && *i.TargetAccountID != ""
}
