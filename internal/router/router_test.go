package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodhub-next/internal/authz"
	"github.com/foodhub-next/internal/constants"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRBACTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:router_rbac?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	svc, err := authz.NewService(db)
	require.NoError(t, err)
	require.NoError(t, svc.BootstrapBuiltinRoles())

	r := gin.New()
	secured := r.Group(apiPrefix, func(c *gin.Context) {
		c.Set(constants.ContextKeyAccountID, uint(1))
		c.Set(constants.ContextKeyRole, c.GetHeader("X-Test-Role"))
		c.Next()
	}, RBACMiddleware(svc))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	secured.GET("/cart", ok)
	secured.POST("/orders", ok)
	secured.GET("/orders", ok)
	secured.GET("/orders/my-orders", ok)
	secured.GET("/orders/:id/ws", ok)
	secured.PATCH("/orders/:id/status", ok)
	secured.PATCH("/orders/:id/cancel", ok)
	secured.POST("/dishes", ok)
	secured.GET("/admin/users", ok)
	return r
}

func TestRBACMiddlewareBuiltinPolicies(t *testing.T) {
	r := newRBACTestEngine(t)

	cases := []struct {
		role   string
		method string
		path   string
		want   int
	}{
		{constants.RoleCustomer, http.MethodGet, "/api/v1/cart", http.StatusOK},
		{constants.RoleCustomer, http.MethodPost, "/api/v1/orders", http.StatusOK},
		{constants.RoleCustomer, http.MethodGet, "/api/v1/orders/my-orders", http.StatusOK},
		{constants.RoleCustomer, http.MethodPatch, "/api/v1/orders/5/cancel", http.StatusOK},
		{constants.RoleCustomer, http.MethodGet, "/api/v1/orders/5/ws", http.StatusOK},
		{constants.RoleCustomer, http.MethodPatch, "/api/v1/orders/5/status", http.StatusForbidden},
		{constants.RoleCustomer, http.MethodPost, "/api/v1/dishes", http.StatusForbidden},
		{constants.RoleCustomer, http.MethodGet, "/api/v1/orders", http.StatusForbidden},
		{constants.RoleRestaurant, http.MethodPatch, "/api/v1/orders/5/status", http.StatusOK},
		{constants.RoleRestaurant, http.MethodPost, "/api/v1/dishes", http.StatusOK},
		{constants.RoleRestaurant, http.MethodGet, "/api/v1/cart", http.StatusForbidden},
		{constants.RoleRestaurant, http.MethodPost, "/api/v1/orders", http.StatusForbidden},
		{constants.RoleRestaurant, http.MethodGet, "/api/v1/admin/users", http.StatusForbidden},
		{constants.RoleAdmin, http.MethodGet, "/api/v1/admin/users", http.StatusOK},
		{constants.RoleAdmin, http.MethodGet, "/api/v1/orders", http.StatusOK},
		{constants.RoleAdmin, http.MethodPatch, "/api/v1/orders/5/status", http.StatusOK},
		{"", http.MethodGet, "/api/v1/cart", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.role+" "+tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("X-Test-Role", tc.role)
			r.ServeHTTP(w, req)
			require.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestBuildPermissionCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	noop := func(c *gin.Context) {}
	r.POST("/api/v1/auth/login", noop)
	r.GET("/api/v1/cart", noop)
	r.DELETE("/api/v1/cart", noop)
	r.GET("/api/v1/admin/users/:id", noop)
	r.POST("/api/v1/admin/authz/policies", noop)
	r.GET("/health", noop)

	items := buildPermissionCatalog(r)
	require.Len(t, items, 4)

	perms := make(map[string]string, len(items))
	for _, item := range items {
		perms[item.Permission] = item.Module
	}
	require.Equal(t, "cart", perms["GET:/cart"])
	require.Equal(t, "cart", perms["DELETE:/cart"])
	require.Equal(t, "users", perms["GET:/admin/users/:id"])
	require.Equal(t, "authz", perms["POST:/admin/authz/policies"])
	require.Empty(t, buildPermissionCatalog(nil))
}
