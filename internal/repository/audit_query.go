package repository

import (
	"time"

	"gorm.io/gorm"
)

type queryFilter func(*gorm.DB) *gorm.DB

// applyFilters 立即追加条件，Count 与 Find 共用同一组 WHERE
func applyFilters(query *gorm.DB, filters ...queryFilter) *gorm.DB {
	for _, filter := range filters {
		query = filter(query)
	}
	return query
}

// equalIfSet 仅在值非零时追加等值条件
func equalIfSet[T comparable](column string, value T) queryFilter {
	return func(db *gorm.DB) *gorm.DB {
		var zero T
		if value == zero {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}

// createdWithin 按 created_at 闭区间过滤，任一端为空则不限制
func createdWithin(from, to *time.Time) queryFilter {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("created_at >= ?", *from)
		}
		if to != nil {
			db = db.Where("created_at <= ?", *to)
		}
		return db
	}
}

// findNewestPage 统计总数后按 id 倒序取一页
func findNewestPage[T any](query *gorm.DB, page, pageSize int) ([]T, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]T, 0)
	if total == 0 {
		return rows, 0, nil
	}
	if err := applyPagination(query, page, pageSize).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
