package service

import (
	"errors"
	"strings"
	"time"

	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"
)

// RecordLoginInput 登录日志记录输入
type RecordLoginInput struct {
	AccountID  uint
	Email      string
	Role       string
	Success    bool
	FailReason string
	ClientIP   string
	UserAgent  string
	RequestID  string
}

// AuthzAuditInput 后台审计记录输入
type AuthzAuditInput struct {
	OperatorID      uint
	OperatorEmail   string
	TargetAccountID *uint
	Action          string
	Role            string
	Object          string
	Method          string
	Detail          string
	RequestID       string
}

// AuditService 登录日志与后台审计服务
type AuditService struct {
	loginRepo repository.LoginLogRepository
	authzRepo repository.AuthzAuditLogRepository
}

// NewAuditService 创建审计服务
func NewAuditService(loginRepo repository.LoginLogRepository, authzRepo repository.AuthzAuditLogRepository) *AuditService {
	return &AuditService{loginRepo: loginRepo, authzRepo: authzRepo}
}

// RecordLogin 记录登录行为
func (s *AuditService) RecordLogin(input RecordLoginInput) error {
	if s == nil || s.loginRepo == nil {
		return nil
	}

	email := strings.TrimSpace(input.Email)
	if normalized, err := NormalizeEmail(email); err == nil {
		email = normalized
	}

	status := constants.LoginLogStatusSuccess
	failReason := ""
	if !input.Success {
		status = constants.LoginLogStatusFailed
		failReason = strings.ToLower(strings.TrimSpace(input.FailReason))
		if failReason == "" {
			failReason = constants.LoginLogFailReasonInternalError
		}
	}

	return s.loginRepo.Create(&models.LoginLog{
		AccountID:  input.AccountID,
		Email:      email,
		Role:       strings.ToUpper(strings.TrimSpace(input.Role)),
		Status:     status,
		FailReason: failReason,
		ClientIP:   strings.TrimSpace(input.ClientIP),
		UserAgent:  strings.TrimSpace(input.UserAgent),
		RequestID:  strings.TrimSpace(input.RequestID),
		CreatedAt:  time.Now(),
	})
}

// LoginFailReason 将登录错误归类为日志失败原因
func LoginFailReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidEmail):
		return constants.LoginLogFailReasonInvalidCredentials
	case errors.Is(err, ErrAccountDisabled):
		return constants.LoginLogFailReasonAccountDisabled
	case errors.Is(err, ErrRoleMismatch), errors.Is(err, ErrRoleInvalid):
		return constants.LoginLogFailReasonRoleMismatch
	default:
		return constants.LoginLogFailReasonInternalError
	}
}

// ListLoginLogs 管理端查询登录日志
func (s *AuditService) ListLoginLogs(filter repository.LoginLogListFilter) ([]models.LoginLog, int64, error) {
	if s == nil || s.loginRepo == nil {
		return []models.LoginLog{}, 0, nil
	}
	if filter.Email != "" {
		if normalized, err := NormalizeEmail(filter.Email); err == nil {
			filter.Email = normalized
		}
	}
	return s.loginRepo.ListAdmin(filter)
}

// RecordAuthz 记录后台审计日志，缺少操作人或动作时忽略
func (s *AuditService) RecordAuthz(input AuthzAuditInput) error {
	if s == nil || s.authzRepo == nil {
		return nil
	}
	if input.OperatorID == 0 || strings.TrimSpace(input.Action) == "" {
		return nil
	}
	return s.authzRepo.Create(&models.AuthzAuditLog{
		OperatorID:      input.OperatorID,
		OperatorEmail:   strings.TrimSpace(input.OperatorEmail),
		TargetAccountID: input.TargetAccountID,
		Action:          strings.TrimSpace(input.Action),
		Role:            strings.TrimSpace(input.Role),
		Object:          strings.TrimSpace(input.Object),
		Method:          strings.ToUpper(strings.TrimSpace(input.Method)),
		Detail:          strings.TrimSpace(input.Detail),
		RequestID:       strings.TrimSpace(input.RequestID),
		CreatedAt:       time.Now(),
	})
}

// ListAuthzAuditLogs 管理端查询后台审计日志
func (s *AuditService) ListAuthzAuditLogs(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.authzRepo == nil {
		return []models.AuthzAuditLog{}, 0, nil
	}
	return s.authzRepo.ListAdmin(filter)
}
