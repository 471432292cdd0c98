package models

import (
	"time"

	"gorm.io/gorm"
)

// Account 账号表（顾客、餐厅、管理员共用）
type Account struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                 // 主键
	Username           string         `gorm:"type:varchar(64);not null;default:''" json:"username"` // 用户名
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`                    // 邮箱
	Phone              string         `gorm:"type:varchar(32);default:''" json:"phone"`             // 电话
	PasswordHash       string         `gorm:"not null" json:"-"`                                    // 密码哈希（不返回给前端）
	RoleID             uint           `gorm:"index;not null" json:"role_id"`                        // 角色ID
	Status             string         `gorm:"default:'active'" json:"status"`                       // 账号状态
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`                          // Token 版本（用于全量失效）
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`                                       // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`                                        // 最后登录时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                              // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"` // 角色
}

// TableName 指定表名
func (Account) TableName() string {
	return "accounts"
}

// RoleCode 返回账号角色编码，未加载角色时为空
func (a *Account) RoleCode() string {
	if a == nil || a.Role == nil {
		return ""
	}
	return a.Role.Code
}
