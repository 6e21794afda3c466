package models

import "time"

// CartItem 购物车项
type CartItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                               // 主键
	CustomerID      uint      `gorm:"not null;uniqueIndex:idx_cart_customer_item" json:"customer_id"`     // 客户ID
	CatalogItemID   uint      `gorm:"not null;uniqueIndex:idx_cart_customer_item" json:"catalog_item_id"` // 商品ID
	Quantity        int       `gorm:"not null" json:"quantity"`                                           // 数量
	TargetAccountID *string   `gorm:"type:varchar(128)" json:"target_account_id,omitempty"`               // 直充账号（可选）
	CreatedAt       time.Time `gorm:"index" json:"created_at"`                                            // 创建时间
	UpdatedAt       time.Time `gorm:"index" json:"updated_at"`                                            // 更新时间

	CatalogItem *CatalogItem `gorm:"foreignKey:CatalogItemID" json:"catalog_item,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
