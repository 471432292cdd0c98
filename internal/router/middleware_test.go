package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const testJWTSecret = "router-test-secret-0123456789abcdef"

type stubAccountRepo struct {
	accounts map[uint]*models.Account
}

func (r *stubAccountRepo) GetByEmail(email string) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, nil
}

func (r *stubAccountRepo) GetByID(id uint) (*models.Account, error) {
	return r.accounts[id], nil
}

func (r *stubAccountRepo) Create(account *models.Account) error { return nil }
func (r *stubAccountRepo) Update(account *models.Account) error { return nil }
func (r *stubAccountRepo) UpdateStatus(id uint, status string) error {
	return nil
}
func (r *stubAccountRepo) List(filter repository.AccountListFilter) ([]models.Account, int64, error) {
	return nil, 0, nil
}
func (r *stubAccountRepo) WithTx(tx *gorm.DB) *repository.GormAccountRepository { return nil }

func signTestToken(t *testing.T, account *models.Account, issuedAt time.Time) string {
	t.Helper()
	claims := service.JWTClaims{
		AccountID:    account.ID,
		Email:        account.Email,
		Role:         account.RoleCode(),
		TokenVersion: account.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return resp.StatusCode
}

func TestBuildCORSConfig(t *testing.T) {
	cfg := buildCORSConfig(config.CORSConfig{})
	if !cfg.AllowAllOrigins {
		t.Fatalf("empty origin list should allow all origins")
	}
	if len(cfg.AllowMethods) == 0 || len(cfg.AllowHeaders) == 0 {
		t.Fatalf("default methods and headers should be filled")
	}

	cfg = buildCORSConfig(config.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true, MaxAge: 600})
	if cfg.AllowAllOrigins || cfg.AllowOriginFunc == nil {
		t.Fatalf("wildcard with credentials should echo origin")
	}
	if cfg.MaxAge != 10*time.Minute {
		t.Fatalf("max age want 10m got %v", cfg.MaxAge)
	}

	cfg = buildCORSConfig(config.CORSConfig{AllowedOrigins: []string{" https://a.example.com ", ""}})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "https://a.example.com" {
		t.Fatalf("allow-list should be trimmed, got %+v", cfg.AllowOrigins)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://shop.example.com"}}))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shop.example.com" {
		t.Fatalf("allow origin want shop origin got %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown origin should be rejected, got %d", w.Code)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/cart", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status want 401 got %d", w.Code)
	}
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	invalidBefore := time.Now().Add(-time.Minute)
	active := &models.Account{
		ID:           1,
		Email:        "lan@example.com",
		Status:       constants.AccountStatusActive,
		TokenVersion: 2,
		Role:         &models.Role{Code: constants.RoleCustomer},
	}
	revoked := &models.Account{
		ID:                 2,
		Email:              "minh@example.com",
		Status:             constants.AccountStatusActive,
		TokenInvalidBefore: &invalidBefore,
		Role:               &models.Role{Code: constants.RoleRestaurant},
	}
	disabled := &models.Account{
		ID:     3,
		Email:  "hoa@example.com",
		Status: constants.AccountStatusDisabled,
		Role:   &models.Role{Code: constants.RoleCustomer},
	}
	repo := &stubAccountRepo{accounts: map[uint]*models.Account{1: active, 2: revoked, 3: disabled}}

	r := gin.New()
	r.Use(JWTAuthMiddleware(testJWTSecret, repo))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"account_id": c.GetUint(constants.ContextKeyAccountID),
			"role":       c.GetString(constants.ContextKeyRole),
		})
	})

	call := func(header string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		return w
	}

	now := time.Now()
	w := call("Bearer " + signTestToken(t, active, now))
	if w.Code != http.StatusOK {
		t.Fatalf("valid token want 200 got %d body=%s", w.Code, w.Body.String())
	}
	var whoami struct {
		AccountID uint   `json:"account_id"`
		Role      string `json:"role"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &whoami); err != nil {
		t.Fatalf("unmarshal whoami failed: %v", err)
	}
	if whoami.AccountID != 1 || whoami.Role != constants.RoleCustomer {
		t.Fatalf("unexpected context values: %+v", whoami)
	}

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "not bearer", header: "Token abc"},
		{name: "garbage", header: "Bearer abc.def.ghi"},
		{name: "stale version", header: "Bearer " + signTestToken(t, &models.Account{ID: 1, Email: active.Email, TokenVersion: 1}, now)},
		{name: "issued before logout", header: "Bearer " + signTestToken(t, revoked, invalidBefore.Add(-time.Hour))},
		{name: "disabled", header: "Bearer " + signTestToken(t, disabled, now)},
		{name: "unknown account", header: "Bearer " + signTestToken(t, &models.Account{ID: 99}, now)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := call(tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("want 401 got %d body=%s", w.Code, w.Body.String())
			}
		})
	}

	if w := call("Bearer " + signTestToken(t, revoked, now)); w.Code != http.StatusOK {
		t.Fatalf("token issued after logout should pass, got %d", w.Code)
	}
}

func TestExtractBearerTokenWebSocketQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/1/ws?token=abc", nil)
	if _, key := extractBearerToken(c); key != "error.auth_header_missing" {
		t.Fatalf("plain request must not read query token, got key %q", key)
	}

	c.Request.Header.Set("Connection", "Upgrade")
	c.Request.Header.Set("Upgrade", "websocket")
	token, key := extractBearerToken(c)
	if key != "" || token != "abc" {
		t.Fatalf("websocket handshake should read query token, got %q %q", token, key)
	}
}
