package service

import (
	"errors"
	"testing"

	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestAuditServiceRecordLogin(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewAuditService(repository.NewLoginLogRepository(env.db), repository.NewAuthzAuditLogRepository(env.db))

	require.NoError(t, svc.RecordLogin(RecordLoginInput{
		AccountID: 7,
		Email:     " Lan@Example.com ",
		Role:      "customer",
		Success:   true,
		ClientIP:  "10.0.0.1",
	}))
	require.NoError(t, svc.RecordLogin(RecordLoginInput{
		Email:    "lan@example.com",
		Success:  false,
		ClientIP: "10.0.0.2",
	}))

	logs, total, err := svc.ListLoginLogs(repository.LoginLogListFilter{Page: 1, PageSize: 10, Email: "LAN@example.com"})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, constants.LoginLogStatusFailed, logs[0].Status)
	require.Equal(t, constants.LoginLogFailReasonInternalError, logs[0].FailReason)
	require.Equal(t, constants.LoginLogStatusSuccess, logs[1].Status)
	require.Empty(t, logs[1].FailReason)
	require.Equal(t, "CUSTOMER", logs[1].Role)

	failed, total, err := svc.ListLoginLogs(repository.LoginLogListFilter{Status: constants.LoginLogStatusFailed})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "10.0.0.2", failed[0].ClientIP)
}

func TestLoginFailReason(t *testing.T) {
	require.Equal(t, constants.LoginLogFailReasonInvalidCredentials, LoginFailReason(ErrInvalidCredentials))
	require.Equal(t, constants.LoginLogFailReasonAccountDisabled, LoginFailReason(ErrAccountDisabled))
	require.Equal(t, constants.LoginLogFailReasonRoleMismatch, LoginFailReason(ErrRoleMismatch))
	require.Equal(t, constants.LoginLogFailReasonInternalError, LoginFailReason(errors.New("db down")))
}

func TestAuditServiceRecordAuthz(t *testing.T) {
	env := setupServiceTest(t)
	svc := NewAuditService(repository.NewLoginLogRepository(env.db), repository.NewAuthzAuditLogRepository(env.db))

	// 缺少操作人时忽略
	require.NoError(t, svc.RecordAuthz(AuthzAuditInput{Action: constants.AuditActionPolicyGrant}))

	target := uint(9)
	require.NoError(t, svc.RecordAuthz(AuthzAuditInput{
		OperatorID: 1,
		Action:     constants.AuditActionPolicyGrant,
		Role:       "role:courier",
		Object:     "/orders/:id",
		Method:     "get",
	}))
	require.NoError(t, svc.RecordAuthz(AuthzAuditInput{
		OperatorID:      1,
		TargetAccountID: &target,
		Action:          constants.AuditActionUserStatus,
		Detail:          "disabled",
	}))

	logs, total, err := svc.ListAuthzAuditLogs(repository.AuthzAuditLogListFilter{OperatorID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, constants.AuditActionUserStatus, logs[0].Action)
	require.Equal(t, "GET", logs[1].Method)

	logs, total, err = svc.ListAuthzAuditLogs(repository.AuthzAuditLogListFilter{TargetAccountID: target})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "disabled", logs[0].Detail)
}
