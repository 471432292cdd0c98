package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/provider"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type flowEnvelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type flowClient struct {
	t      *testing.T
	engine *gin.Engine
}

func (f flowClient) do(method, path, token string, body interface{}) (int, flowEnvelope) {
	f.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env flowEnvelope
	if w.Body.Len() > 0 {
		require.NoError(f.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

func (f flowClient) register(email, role, restaurantName string) string {
	f.t.Helper()
	code, env := f.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":           email,
		"password":        "Secret#2024",
		"role":            role,
		"restaurant_name": restaurantName,
	})
	require.Equal(f.t, http.StatusOK, code, env.Msg)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(f.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(f.t, data.Token)
	return data.Token
}

func setupFlowEngine(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	require.NoError(t, models.InitDefaultRoles(db))
	models.DB = db

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = testJWTSecret
	cfg.Redis = config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port, Prefix: "flow"}
	cfg.Captcha.Provider = constants.CaptchaProviderNone
	cfg.Scheduler.Enabled = false

	container := provider.NewContainer(cfg)
	t.Cleanup(func() { cache.UseClient(nil, "") })
	return SetupRouter(cfg, container), mr
}

func TestOrderFlowThroughHTTP(t *testing.T) {
	engine, _ := setupFlowEngine(t)
	client := flowClient{t: t, engine: engine}

	customerToken := client.register("lan@example.com", constants.RoleCustomer, "")
	ownerToken := client.register("owner@example.com", constants.RoleRestaurant, "Pho Corner")

	code, env := client.do(http.MethodPost, "/api/v1/dishes", ownerToken, gin.H{"name": "Beef Pho", "price": "6.50", "category_name": "Noodles"})
	require.Equal(t, http.StatusOK, code, env.Msg)
	var dish struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dish))

	// 顾客不能创建菜品
	code, _ = client.do(http.MethodPost, "/api/v1/dishes", customerToken, gin.H{"name": "x", "price": "1"})
	require.Equal(t, http.StatusForbidden, code)

	code, env = client.do(http.MethodPost, fmt.Sprintf("/api/v1/cart/%d?quantity=2", dish.ID), customerToken, nil)
	require.Equal(t, http.StatusOK, code, env.Msg)
	var cart struct {
		TotalItems int    `json:"total_items"`
		TotalPrice string `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Equal(t, 2, cart.TotalItems)
	require.Equal(t, "13.00", cart.TotalPrice)

	code, env = client.do(http.MethodPost, "/api/v1/orders", customerToken, gin.H{"note": "no onions"})
	require.Equal(t, http.StatusOK, code, env.Msg)
	var order struct {
		ID         uint   `json:"id"`
		Status     string `json:"status"`
		TotalPrice string `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	require.Equal(t, constants.OrderStatusPending, order.Status)
	require.Equal(t, "13.00", order.TotalPrice)

	// 下单后购物车清空
	code, env = client.do(http.MethodGet, "/api/v1/cart", customerToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Zero(t, cart.TotalItems)

	// 顾客不能推进状态，餐厅可以
	statusPath := fmt.Sprintf("/api/v1/orders/%d/status", order.ID)
	code, _ = client.do(http.MethodPatch, statusPath, customerToken, gin.H{"status": constants.OrderStatusConfirmed})
	require.Equal(t, http.StatusForbidden, code)
	code, env = client.do(http.MethodPatch, statusPath, ownerToken, gin.H{"status": constants.OrderStatusConfirmed})
	require.Equal(t, http.StatusOK, code, env.Msg)

	// 已确认订单不能取消
	code, _ = client.do(http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID), customerToken, nil)
	require.Equal(t, http.StatusBadRequest, code)

	// 跳级流转被拒绝
	code, _ = client.do(http.MethodPatch, statusPath, ownerToken, gin.H{"status": constants.OrderStatusCompleted})
	require.Equal(t, http.StatusBadRequest, code)

	code, env = client.do(http.MethodGet, "/api/v1/orders/my-orders", customerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var mine []struct {
		ID     uint   `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	require.Equal(t, constants.OrderStatusConfirmed, mine[0].Status)

	// 未携带 token 的请求被拒绝
	code, _ = client.do(http.MethodGet, "/api/v1/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestOrderStatusWebSocket(t *testing.T) {
	engine, _ := setupFlowEngine(t)
	client := flowClient{t: t, engine: engine}

	customerToken := client.register("minh@example.com", constants.RoleCustomer, "")
	ownerToken := client.register("chef@example.com", constants.RoleRestaurant, "Banh Mi Bar")

	_, env := client.do(http.MethodPost, "/api/v1/dishes", ownerToken, gin.H{"name": "Banh Mi", "price": "3.00"})
	var dish struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dish))
	code, _ := client.do(http.MethodPost, fmt.Sprintf("/api/v1/cart/%d", dish.ID), customerToken, nil)
	require.Equal(t, http.StatusOK, code)
	_, env = client.do(http.MethodPost, "/api/v1/orders", customerToken, nil)
	var order struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	require.NotZero(t, order.ID)

	server := httptest.NewServer(engine)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + fmt.Sprintf("/api/v1/orders/%d/ws?token=%s", order.ID, customerToken)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var event cache.OrderStatusEvent
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, constants.OrderStatusPending, event.Status)

	statusPath := fmt.Sprintf("/api/v1/orders/%d/status", order.ID)
	for _, next := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusDelivering,
		constants.OrderStatusCompleted,
	} {
		code, env := client.do(http.MethodPatch, statusPath, ownerToken, gin.H{"status": next})
		require.Equal(t, http.StatusOK, code, env.Msg)

		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		require.NoError(t, conn.ReadJSON(&event))
		require.Equal(t, next, event.Status)
	}

	// 终态后服务端关闭连接
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
}

func TestOrderStatusWebSocketSnapshotIsCurrent(t *testing.T) {
	engine, _ := setupFlowEngine(t)
	client := flowClient{t: t, engine: engine}

	customerToken := client.register("lan@example.com", constants.RoleCustomer, "")
	ownerToken := client.register("cook@example.com", constants.RoleRestaurant, "Com Tam")

	_, env := client.do(http.MethodPost, "/api/v1/dishes", ownerToken, gin.H{"name": "Com Suon", "price": "4.00"})
	var dish struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dish))
	code, _ := client.do(http.MethodPost, fmt.Sprintf("/api/v1/cart/%d", dish.ID), customerToken, nil)
	require.Equal(t, http.StatusOK, code)
	_, env = client.do(http.MethodPost, "/api/v1/orders", customerToken, nil)
	var order struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))

	code, env = client.do(http.MethodPatch, fmt.Sprintf("/api/v1/orders/%d/cancel", order.ID), customerToken, nil)
	require.Equal(t, http.StatusOK, code, env.Msg)

	server := httptest.NewServer(engine)
	defer server.Close()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + fmt.Sprintf("/api/v1/orders/%d/ws?token=%s", order.ID, customerToken)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var event cache.OrderStatusEvent
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	require.NoError(t, conn.ReadJSON(&event))
	require.Equal(t, constants.OrderStatusCancelled, event.Status)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err = conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "unexpected error: %v", err)
}

func TestAdminPolicyGrantRevokeAndAudit(t *testing.T) {
	engine, _ := setupFlowEngine(t)
	client := flowClient{t: t, engine: engine}
	require.NoError(t, models.InitDefaultAdmin(models.DB, "root@foodhub.local", "Admin#2024"))

	code, env := client.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "root@foodhub.local", "password": "Admin#2024"})
	require.Equal(t, http.StatusOK, code, env.Msg)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	adminToken := login.Token

	code, env = client.do(http.MethodPost, "/api/v1/admin/authz/policies", adminToken, gin.H{"role": "Courier", "object": "/api/v1/orders/:id", "action": "get"})
	require.Equal(t, http.StatusOK, code, env.Msg)
	var granted struct {
		Subject string `json:"subject"`
		Object  string `json:"object"`
		Action  string `json:"action"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &granted))
	require.Equal(t, "role:courier", granted.Subject)
	require.Equal(t, "/orders/:id", granted.Object)
	require.Equal(t, "GET", granted.Action)

	code, _ = client.do(http.MethodPost, "/api/v1/admin/authz/policies", adminToken, gin.H{"role": "courier", "object": "/orders", "action": "FETCH"})
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = client.do(http.MethodDelete, "/api/v1/admin/authz/policies", adminToken, gin.H{"role": "customer", "object": "/orders", "action": "POST"})
	require.Equal(t, http.StatusForbidden, code)

	code, env = client.do(http.MethodDelete, "/api/v1/admin/authz/policies", adminToken, gin.H{"role": "courier", "object": "/orders/:id", "action": "GET"})
	require.Equal(t, http.StatusOK, code, env.Msg)

	code, env = client.do(http.MethodGet, "/api/v1/admin/authz/audit-logs?role=role:courier", adminToken, nil)
	require.Equal(t, http.StatusOK, code, env.Msg)
	require.NotNil(t, env.Pagination)
	require.Equal(t, int64(2), env.Pagination.Total)
	var logs []struct {
		Action string `json:"action"`
		Method string `json:"method"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &logs))
	require.Len(t, logs, 2)
	require.Equal(t, constants.AuditActionPolicyRevoke, logs[0].Action)
	require.Equal(t, constants.AuditActionPolicyGrant, logs[1].Action)
	require.Equal(t, "GET", logs[1].Method)

	customerToken := client.register("thu@example.com", constants.RoleCustomer, "")
	code, _ = client.do(http.MethodGet, "/api/v1/admin/authz/audit-logs", customerToken, nil)
	require.Equal(t, http.StatusForbidden, code)
}
