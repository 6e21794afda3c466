package repository

import (
	"github.com/gamecode-next/internal/models"

	"gorm.io/gorm"
)

// NotificationLogRepository 通知记录数据访问接口
type NotificationLogRepository interface {
	Create(log *models.NotificationLog) error
	ListByOrder(orderID uint) ([]models.NotificationLog, error)
}

// GormNotificationLogRepository GORM 实现
type GormNotificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository 创建通知记录仓库
func NewNotificationLogRepository(db *gorm.DB) *GormNotificationLogRepository {
	return &GormNotificationLogRepository{db: db}
}

// Create 写入通知记录
func (r *GormNotificationLogRepository) Create(log *models.NotificationLog) error {
	return r.db.Create(log).Error
}

// ListByOrder 获取订单的通知记录
func (r *GormNotificationLogRepository) ListByOrder(orderID uint) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
