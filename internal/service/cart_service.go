package service

import (
	"time"

	"github.com/gamecode-next/internal/models"
	"github.com/gamecode-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLine 购物车行（用于响应）
type CartLine struct {
	CatalogItemID   uint         `json:"catalog_item_id"`
	Name            string       `json:"name"`
	ItemType        string       `json:"item_type"`
	Quantity        int          `json:"quantity"`
	UnitPrice       models.Money `json:"unit_price"`
	Subtotal        models.Money `json:"subtotal"`
	TargetAccountID *string      `json:"target_account_id,omitempty"`
	Available       bool         `json:"available"`
}

// CartView 购物车视图
type CartView struct {
	Items []CartLine   `json:"items"`
	Total models.Money `json:"total"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	CustomerID      uint
	CatalogItemID   uint
	Quantity        int
	TargetAccountID *string
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	catalogRepo repository.CatalogRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, catalogRepo repository.CatalogRepository) *CartService {
	return &CartService{cartRepo: cartRepo, catalogRepo: catalogRepo}
}

// List 获取客户购物车；下架商品保留但标记不可用
func (s *CartService) List(customerID uint) (*CartView, error) {
	if customerID == 0 {
		return nil, ErrValidation
	}
	lines, err := s.cartRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Items: make([]CartLine, 0, len(lines))}
	total := decimal.Zero
	for _, line := range lines {
		out := CartLine{
			CatalogItemID:   line.CatalogItemID,
			Quantity:        line.Quantity,
			TargetAccountID: line.TargetAccountID,
		}
		if item := line.CatalogItem; item != nil {
			out.Name = item.Name
			out.ItemType = item.ItemType
			out.UnitPrice = item.Price
			out.Subtotal = models.NewMoneyFromDecimal(item.Price.MulQuantity(line.Quantity))
			out.Available = item.IsActive
			if item.IsActive {
				total = total.Add(out.Subtotal.Decimal)
			}
		}
		view.Items = append(view.Items, out)
	}
	view.Total = models.NewMoneyFromDecimal(total)
	return view, nil
}

// AddItem 加购：已存在则累加数量，并以最新的直充账号为准
func (s *CartService) AddItem(input AddCartItemInput) error {
	if input.CustomerID == 0 || input.CatalogItemID == 0 {
		return ErrValidation
	}
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := s.ensureAvailable(input.CatalogItemID); err != nil {
		return err
	}
	existing, err := s.cartRepo.GetByCustomerAndItem(input.CustomerID, input.CatalogItemID)
	if err != nil {
		return ErrCartUpdateFailed
	}
	quantity := input.Quantity
	target := normalizeAccountID(input.TargetAccountID)
	if existing != nil {
		quantity += existing.Quantity
		if target == nil {
			target = existing.TargetAccountID
		}
	}
	item := &models.CartItem{
		CustomerID:      input.CustomerID,
		CatalogItemID:   input.CatalogItemID,
		Quantity:        quantity,
		TargetAccountID: target,
		UpdatedAt:       time.Now(),
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}

// UpdateQuantity 修改数量，<=0 视为移除
func (s *CartService) UpdateQuantity(customerID, catalogItemID uint, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(customerID, catalogItemID)
	}
	existing, err := s.cartRepo.GetByCustomerAndItem(customerID, catalogItemID)
	if err != nil {
		return ErrCartUpdateFailed
	}
	if existing == nil {
		return ErrCartItemNotFound
	}
	existing.Quantity = quantity
	existing.UpdatedAt = time.Now()
	if err := s.cartRepo.Upsert(existing); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}

// RemoveItem 移除购物车项
func (s *CartService) RemoveItem(customerID, catalogItemID uint) error {
	rows, err := s.cartRepo.DeleteByCustomerAndItem(customerID, catalogItemID)
	if err != nil {
		return ErrCartUpdateFailed
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear 清空购物车
func (s *CartService) Clear(customerID uint) error {
	if err := s.cartRepo.ClearByCustomer(customerID); err != nil {
		return ErrCartUpdateFailed
	}
	return nil
}

func (s *CartService) ensureAvailable(catalogItemID uint) error {
	item, err := s.catalogRepo.GetByID(catalogItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCatalogItemNotFound
	}
	if !item.IsActive {
		return ErrCatalogItemUnavailable
	}
	return nil
}
