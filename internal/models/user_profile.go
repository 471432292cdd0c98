package models

import "time"

// UserProfile 顾客资料表
type UserProfile struct {
	ID        uint      `gorm:"primarykey" json:"id"`                          // 主键
	AccountID uint      `gorm:"uniqueIndex;not null" json:"account_id"`        // 账号ID
	FullName  string    `gorm:"type:varchar(128);default:''" json:"full_name"` // 姓名
	Phone     string    `gorm:"type:varchar(32);default:''" json:"phone"`      // 联系电话
	Address   string    `gorm:"type:varchar(500);default:''" json:"address"`   // 收货地址
	Avatar    string    `gorm:"type:varchar(500);default:''" json:"avatar"`    // 头像地址
	CreatedAt time.Time `json:"created_at"`                                    // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                    // 更新时间

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"` // 关联账号
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profiles"
}
