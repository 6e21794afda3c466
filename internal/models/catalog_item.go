package models

import (
	"time"

	"gorm.io/gorm"
)

// CatalogItem 商品表（游戏点卡/道具）
type CatalogItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name       string         `gorm:"type:varchar(128);not null" json:"name"`             // 名称
	ItemType   string         `gorm:"type:varchar(64);index" json:"item_type"`            // 游戏类型（pubg/free_fire）
	Category   string         `gorm:"type:varchar(64)" json:"category"`                   // 分类（currency/item/pass）
	Region     string         `gorm:"type:varchar(64)" json:"region"`                     // 区服
	Price      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 当前价格
	StockCount int            `gorm:"not null;default:0" json:"stock_count"`              // 库存
	IsActive   bool           `gorm:"default:true;index" json:"is_active"`                // 是否上架
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt  time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (CatalogItem) TableName() string {
	return "catalog_items"
}
