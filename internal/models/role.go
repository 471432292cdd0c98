package models

import "time"

// Role 账号角色表
type Role struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 主键
	Code        string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"` // 角色编码（CUSTOMER / RESTAURANT / ADMIN）
	Name        string    `gorm:"type:varchar(64);not null" json:"name"`             // 角色名称
	Description string    `gorm:"type:varchar(255)" json:"description"`              // 描述
	CreatedAt   time.Time `json:"created_at"`                                        // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (Role) TableName() string {
	return "account_roles"
}
