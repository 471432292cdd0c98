package models

import "time"

// AuthzAuditLog 后台审计日志
// 说明：记录管理员的授权策略变更与账号状态变更。
type AuthzAuditLog struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	OperatorID      uint      `gorm:"index;not null" json:"operator_id"`
	OperatorEmail   string    `gorm:"type:varchar(255);not null;default:''" json:"operator_email"`
	TargetAccountID *uint     `gorm:"index" json:"target_account_id,omitempty"`
	Action          string    `gorm:"type:varchar(64);index;not null" json:"action"`
	Role            string    `gorm:"type:varchar(120);index;not null;default:''" json:"role"`
	Object          string    `gorm:"type:varchar(255);not null;default:''" json:"object"`
	Method          string    `gorm:"type:varchar(20);not null;default:''" json:"method"`
	Detail          string    `gorm:"type:varchar(255);not null;default:''" json:"detail"`
	RequestID       string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (AuthzAuditLog) TableName() string {
	return "authz_audit_logs"
}
