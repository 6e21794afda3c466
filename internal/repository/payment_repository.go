package repository

import (
	"errors"
	"time"

	"github.com/gamecode-next/internal/constants"
	"github.com/gamecode-next/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository 支付数据访问接口
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByOrderID(orderID uint) (*models.Payment, error)
	MarkCompleted(id uint, transactionID string, paidAt time.Time) (int64, error)
	MarkFailed(id uint) (int64, error)
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建支付仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create 创建支付记录
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByOrderID 获取订单的支付记录
func (r *GormPaymentRepository) GetByOrderID(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// MarkCompleted 待支付 -> 已完成，返回影响行数
func (r *GormPaymentRepository) MarkCompleted(id uint, transactionID string, paidAt time.Time) (int64, error) {
	result := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, constants.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         constants.PaymentStatusCompleted,
			"transaction_id": transactionID,
			"paid_at":        paidAt,
			"updated_at":     time.Now(),
		})
	return result.RowsAffected, result.Error
}

// MarkFailed 待支付 -> 失败，返回影响行数
func (r *GormPaymentRepository) MarkFailed(id uint) (int64, error) {
	result := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, constants.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":     constants.PaymentStatusFailed,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
