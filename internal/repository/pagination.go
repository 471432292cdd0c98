package repository

import "gorm.io/gorm"

const maxPageSize = 100

// applyPagination 追加 LIMIT/OFFSET；pageSize<=0 时返回全部结果。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return query.Limit(pageSize).Offset(pageOffset(page, pageSize))
}

func pageOffset(page, pageSize int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * pageSize
}
