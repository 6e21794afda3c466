package repository

import "gorm.io/gorm"

// maxPageSize 单页上限，防止后台列表一次拉取过多订单详情
const maxPageSize = 100

// applyLimit 应用批量查询上限（对账批次），<=0 表示不限制。
func applyLimit(query *gorm.DB, limit int) *gorm.DB {
	if query == nil || limit <= 0 {
		return query
	}
	return query.Limit(limit)
}

// applyPagination 应用分页参数；pageSize<=0 返回全部，超过上限时截断。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
