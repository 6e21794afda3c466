package repository

import (
	"errors"

	"github.com/gamecode-next/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository 商品数据访问接口
type CatalogRepository interface {
	GetByID(id uint) (*models.CatalogItem, error)
	ListByIDs(ids []uint) ([]models.CatalogItem, error)
	DecrementStock(id uint, quantity int) (int64, error)
	StockCount(id uint) (int, error)
	WithTx(tx *gorm.DB) *GormCatalogRepository
}

// GormCatalogRepository GORM 实现
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品仓库
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCatalogRepository) WithTx(tx *gorm.DB) *GormCatalogRepository {
	if tx == nil {
		return r
	}
	return &GormCatalogRepository{db: tx}
}

// GetByID 根据 ID 获取商品
func (r *GormCatalogRepository) GetByID(id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByIDs 批量获取商品
func (r *GormCatalogRepository) ListByIDs(ids []uint) ([]models.CatalogItem, error) {
	if len(ids) == 0 {
		return []models.CatalogItem{}, nil
	}
	var items []models.CatalogItem
	if err := r.db.Where("id IN ?", ids).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DecrementStock 条件扣减库存，库存不足时影响行数为 0
func (r *GormCatalogRepository) DecrementStock(id uint, quantity int) (int64, error) {
	if id == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.CatalogItem{}).
		Where("id = ? AND stock_count >= ?", id, quantity).
		UpdateColumn("stock_count", gorm.Expr("stock_count - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// StockCount 读取当前库存，商品不存在返回 0
func (r *GormCatalogRepository) StockCount(id uint) (int, error) {
	var row struct {
		StockCount int
	}
	if err := r.db.Model(&models.CatalogItem{}).
		Select("stock_count").
		Where("id = ?", id).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return row.StockCount, nil
}
