package router

import (
	"strings"
	"time"

	"github.com/foodhub-next/internal/authz"
	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/i18n"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const requestIDKey = constants.ContextKeyRequestID
const requestIDHeader = "X-Request-ID"

var defaultCORSMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

var defaultCORSHeaders = []string{
	"Origin",
	"Content-Type",
	"Content-Length",
	"Accept-Encoding",
	"Accept-Language",
	"Authorization",
	"Cache-Control",
	"X-Requested-With",
	requestIDHeader,
}

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(buildCORSConfig(cfg))
}

func buildCORSConfig(cfg config.CORSConfig) cors.Config {
	result := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
	}
	if len(result.AllowMethods) == 0 {
		result.AllowMethods = defaultCORSMethods
	}
	if len(result.AllowHeaders) == 0 {
		result.AllowHeaders = defaultCORSHeaders
	}
	if cfg.MaxAge > 0 {
		result.MaxAge = time.Duration(cfg.MaxAge) * time.Second
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	wildcard := len(cfg.AllowedOrigins) == 0
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			wildcard = true
			break
		}
		origins = append(origins, origin)
	}
	switch {
	case wildcard && cfg.AllowCredentials:
		// 携带凭证时浏览器不接受 *，回显请求来源
		result.AllowOriginFunc = func(string) bool { return true }
	case wildcard || len(origins) == 0:
		result.AllowAllOrigins = true
	default:
		result.AllowOrigins = origins
	}
	return result
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if accountID, ok := c.Get(constants.ContextKeyAccountID); ok {
			log = log.With("account_id", accountID)
		}
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

func abortUnauthorized(c *gin.Context, key string) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	response.Unauthorized(c, msg)
	c.Abort()
}

// extractBearerToken 读取 Bearer token，WebSocket 握手允许使用 ?token= 传递
func extractBearerToken(c *gin.Context) (string, string) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		if websocket.IsWebSocketUpgrade(c.Request) {
			if token := strings.TrimSpace(c.Query("token")); token != "" {
				return token, ""
			}
		}
		return "", "error.auth_header_missing"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "error.auth_header_invalid"
	}
	return strings.TrimSpace(parts[1]), ""
}

// JWTAuthMiddleware 账号 JWT 鉴权中间件
func JWTAuthMiddleware(secretKey string, accountRepo repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		if accountRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		tokenString, failKey := extractBearerToken(c)
		if failKey != "" {
			abortUnauthorized(c, failKey)
			return
		}

		parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		claims := &service.JWTClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid || claims.AccountID == 0 {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		if cached, hit, cacheErr := cache.GetAccountAuthState(c.Request.Context(), claims.AccountID); cacheErr == nil && hit && cached != nil {
			if !isActiveAccountStatus(cached.Status) {
				abortUnauthorized(c, "error.account_disabled")
				return
			}
			if claims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(claims.IssuedAt, cached.TokenInvalidBefore) {
				abortUnauthorized(c, "error.token_revoked")
				return
			}
			setAccountContext(c, claims.AccountID, cached.Role, claims.Email)
			c.Next()
			return
		}

		account, err := accountRepo.GetByID(claims.AccountID)
		if err != nil || account == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if !isActiveAccountStatus(account.Status) {
			abortUnauthorized(c, "error.account_disabled")
			return
		}
		if claims.TokenVersion != account.TokenVersion || !isIssuedAfterInvalidBefore(claims.IssuedAt, account.TokenInvalidBefore) {
			abortUnauthorized(c, "error.token_revoked")
			return
		}
		_ = cache.SetAccountAuthState(c.Request.Context(), cache.BuildAccountAuthState(account))

		setAccountContext(c, account.ID, account.RoleCode(), account.Email)
		c.Next()
	}
}

func setAccountContext(c *gin.Context, accountID uint, role, email string) {
	c.Set(constants.ContextKeyAccountID, accountID)
	c.Set(constants.ContextKeyRole, strings.ToUpper(strings.TrimSpace(role)))
	c.Set(constants.ContextKeyEmail, email)
}

// RBACMiddleware 按账号角色执行路由级授权
func RBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("rbac_service_unavailable")
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		role := c.GetString(constants.ContextKeyRole)
		accountID := c.GetUint(constants.ContextKeyAccountID)
		if role == "" || accountID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("rbac_enforce_failed",
				"account_id", accountID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("rbac_permission_denied",
				"account_id", accountID,
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			msg := i18n.T(i18n.ResolveLocale(c), "error.forbidden")
			response.Forbidden(c, msg)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore.Unix()
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}

func isActiveAccountStatus(status string) bool {
	return strings.ToLower(strings.TrimSpace(status)) == constants.AccountStatusActive
}
