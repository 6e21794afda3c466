package repository

import (
	"errors"

	"github.com/gamecode-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByCustomer(customerID uint) ([]models.CartItem, error)
	GetByCustomerAndItem(customerID, catalogItemID uint) (*models.CartItem, error)
	Upsert(item *models.CartItem) error
	DeleteByCustomerAndItem(customerID, catalogItemID uint) (int64, error)
	ClearByCustomer(customerID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByCustomer 获取客户购物车项（按加入顺序）
func (r *GormCartRepository) ListByCustomer(customerID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("CatalogItem").Where("customer_id = ?", customerID).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByCustomerAndItem 获取单个购物车项
func (r *GormCartRepository) GetByCustomerAndItem(customerID, catalogItemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("customer_id = ? AND catalog_item_id = ?", customerID, catalogItemID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert 添加或覆盖购物车项
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("customer_id = ? AND catalog_item_id = ?", item.CustomerID, item.CatalogItemID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":          item.Quantity,
		"target_account_id": item.TargetAccountID,
		"updated_at":        item.UpdatedAt,
	}
	if err := r.db.Model(&existing).Updates(updates).Error; err != nil {
		return err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	return nil
}

// DeleteByCustomerAndItem 删除购物车项
func (r *GormCartRepository) DeleteByCustomerAndItem(customerID, catalogItemID uint) (int64, error) {
	result := r.db.Where("customer_id = ? AND catalog_item_id = ?", customerID, catalogItemID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearByCustomer 清空购物车
func (r *GormCartRepository) ClearByCustomer(customerID uint) error {
	return r.db.Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error
}
