package router

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/foodhub-next/internal/authz"
	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/config"
	adminhandlers "github.com/foodhub-next/internal/http/handlers/admin"
	publichandlers "github.com/foodhub-next/internal/http/handlers/public"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/provider"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	authRule := func(name string) RateLimitRule {
		return RateLimitRule{
			Prefix:        fmt.Sprintf("%s:rate:%s", cache.Prefix(), name),
			WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
			MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		}
	}
	emailKey := KeyByIPAndJSONField("email")

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group(apiPrefix)
	{
		// 认证接口（无需鉴权）
		auth := apiV1.Group("/auth")
		{
			auth.GET("/captcha", publicHandler.GetImageCaptcha)
			auth.POST("/register", RateLimitMiddleware(redisClient, authRule("register"), emailKey), publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, authRule("login"), emailKey), publicHandler.Login)
			auth.POST("/forgot-password", RateLimitMiddleware(redisClient, authRule("forgot_password"), emailKey), publicHandler.ForgotPassword)
			auth.POST("/verify-otp", RateLimitMiddleware(redisClient, authRule("verify_otp"), emailKey), publicHandler.VerifyOTP)
			auth.POST("/reset-password", RateLimitMiddleware(redisClient, authRule("reset_password"), emailKey), publicHandler.ResetPassword)
		}

		// 公开浏览接口
		apiV1.GET("/restaurants", publicHandler.ListRestaurants)
		apiV1.GET("/restaurants/:id", publicHandler.GetRestaurant)
		apiV1.GET("/dishes", publicHandler.ListDishes)
		apiV1.GET("/dishes/:id", publicHandler.GetDish)
		apiV1.GET("/dishes/restaurant/:restaurantId", publicHandler.ListDishesByRestaurant)
		apiV1.GET("/dishes/category/:categoryId", publicHandler.ListDishesByCategory)

		// 仅需登录态的接口
		session := apiV1.Group("/auth", JWTAuthMiddleware(cfg.JWT.SecretKey, c.AccountRepo))
		{
			session.POST("/logout", publicHandler.Logout)
			session.POST("/change-password", publicHandler.ChangePassword)
		}

		// 登录态 + 角色授权
		secured := apiV1.Group("", JWTAuthMiddleware(cfg.JWT.SecretKey, c.AccountRepo), RBACMiddleware(c.AuthzService))
		{
			// 个人资料
			secured.GET("/users/profile", publicHandler.GetProfile)
			secured.PATCH("/users/profile", publicHandler.UpdateProfile)

			// 餐厅管理
			secured.GET("/restaurants/profile", publicHandler.GetMyRestaurant)
			secured.PATCH("/restaurants/:id", publicHandler.UpdateRestaurant)
			secured.DELETE("/restaurants/:id", publicHandler.DeleteRestaurant)

			// 分类管理
			secured.GET("/categories", publicHandler.ListCategories)
			secured.POST("/categories", publicHandler.CreateCategory)
			secured.GET("/categories/:id", publicHandler.GetCategory)
			secured.PATCH("/categories/:id", publicHandler.UpdateCategory)
			secured.DELETE("/categories/:id", publicHandler.DeleteCategory)

			// 菜品管理
			secured.POST("/dishes", publicHandler.CreateDish)
			secured.PATCH("/dishes/:id", publicHandler.UpdateDish)
			secured.DELETE("/dishes/:id", publicHandler.DeleteDish)

			// 购物车
			secured.GET("/cart", publicHandler.GetCart)
			secured.DELETE("/cart", publicHandler.ClearCart)
			secured.POST("/cart/:dishId", publicHandler.AddToCart)
			secured.DELETE("/cart/:dishId", publicHandler.RemoveCartItem)
			secured.PATCH("/cart/item/:dishId", publicHandler.UpdateCartItem)

			// 订单
			secured.POST("/orders", publicHandler.CreateOrder)
			secured.GET("/orders", adminHandler.ListOrders)
			secured.GET("/orders/my-orders", publicHandler.ListMyOrders)
			secured.GET("/orders/restaurant-orders", publicHandler.ListRestaurantOrders)
			secured.GET("/orders/:id", publicHandler.GetOrder)
			secured.GET("/orders/:id/ws", publicHandler.WatchOrderStatus)
			secured.PATCH("/orders/:id/status", publicHandler.UpdateOrderStatus)
			secured.PATCH("/orders/:id/cancel", publicHandler.CancelOrder)

			// 账号管理
			secured.GET("/admin/users", adminHandler.ListUsers)
			secured.GET("/admin/users/:id", adminHandler.GetUser)
			secured.PATCH("/admin/users/:id/status", adminHandler.UpdateUserStatus)

			// 审计日志
			secured.GET("/admin/login-logs", adminHandler.ListLoginLogs)
			secured.GET("/admin/authz/audit-logs", adminHandler.ListAuthzAuditLogs)

			// 权限管理
			secured.GET("/admin/authz/roles", adminHandler.ListAuthzRoles)
			secured.GET("/admin/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
			secured.POST("/admin/authz/policies", adminHandler.GrantAuthzPolicy)
			secured.DELETE("/admin/authz/policies", adminHandler.RevokeAuthzPolicy)
			secured.GET("/admin/authz/permissions", func(ctx *gin.Context) {
				response.Success(ctx, buildPermissionCatalog(r))
			})
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildPermissionCatalog 列出可授权的路由，供管理员配置角色策略
func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		if !strings.HasPrefix(item.Path, apiPrefix+"/") || strings.HasPrefix(item.Path, apiPrefix+"/auth/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if segments[0] != "admin" || len(segments) == 1 {
		return segments[0]
	}
	return segments[1]
}
