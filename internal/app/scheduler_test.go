package app

import (
	"testing"

	"github.com/foodhub-next/internal/authz"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSchedulerReloadPicksUpPolicyFromOtherInstance(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:scheduler_reload?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	local, err := authz.NewService(db)
	require.NoError(t, err)
	remote, err := authz.NewService(db)
	require.NoError(t, err)

	scheduler, err := NewSchedulerService(local, "")
	require.NoError(t, err)
	require.Equal(t, defaultAuthzReloadSpec, scheduler.spec)

	_, err = remote.GrantRolePolicy("courier", "/orders/:id", "GET")
	require.NoError(t, err)
	allowed, err := local.EnforceRole("courier", "/api/v1/orders/:id", "GET")
	require.NoError(t, err)
	require.False(t, allowed)

	scheduler.reloadPolicy()
	allowed, err = local.EnforceRole("courier", "/api/v1/orders/:id", "GET")
	require.NoError(t, err)
	require.True(t, allowed)
}

func TestNewSchedulerServiceRejectsBadSpec(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:scheduler_bad_spec?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	svc, err := authz.NewService(db)
	require.NoError(t, err)

	_, err = NewSchedulerService(svc, "not a cron")
	require.Error(t, err)
}
