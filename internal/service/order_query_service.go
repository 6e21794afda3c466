package service

import (
	"fmt"

	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/repository"
)

// OrderQueryService 订单查询（客户与管理端共用）
type OrderQueryService struct {
	orderRepo repository.OrderRepository
	logRepo   repository.NotificationLogRepository
}

// NewOrderQueryService 创建订单查询服务
func NewOrderQueryService(orderRepo repository.OrderRepository, logRepo repository.NotificationLogRepository) *OrderQueryService {
	return &OrderQueryService{orderRepo: orderRepo, logRepo: logRepo}
}

// GetCustomerOrder 获取客户自己的订单，他人订单视为不存在
func (s *OrderQueryService) GetCustomerOrder(customerID, orderID uint) (*models.Order, error) {
	if customerID == 0 || orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrder 管理端获取订单详情
func (s *OrderQueryService) GetOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 分页列出订单
func (s *OrderQueryService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return orders, total, nil
}

// ListNotifications 订单通知发送记录
func (s *OrderQueryService) ListNotifications(orderID uint) ([]models.NotificationLog, error) {
	if _, err := s.GetOrder(orderID); err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}
	return logs, nil
}
