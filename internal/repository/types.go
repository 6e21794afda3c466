package repository

import "time"

// OrderListFilter 查询订单列表的过滤条件，CustomerID 为 0 时不限客户
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
