package provider

import (
	"time"

	"github.com/foodhub-next/internal/authz"
	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/queue"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/mojocn/base64Captcha"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Redis 存储
	CartStore    *cache.CartStore
	OTPStore     *cache.OTPStore
	Locker       *cache.Locker
	CaptchaStore base64Captcha.Store

	// Repositories
	AccountRepo     repository.AccountRepository
	RoleRepo        repository.RoleRepository
	UserProfileRepo repository.UserProfileRepository
	RestaurantRepo  repository.RestaurantRepository
	CategoryRepo    repository.CategoryRepository
	DishRepo        repository.DishRepository
	OrderRepo       repository.OrderRepository
	LoginLogRepo    repository.LoginLogRepository
	AuthzAuditRepo  repository.AuthzAuditLogRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	UserService       *service.UserService
	EmailService      *service.EmailService
	CaptchaService    *service.CaptchaService
	RestaurantService *service.RestaurantService
	CategoryService   *service.CategoryService
	DishService       *service.DishService
	CartService       *service.CartService
	OrderService      *service.OrderService
	AuditService      *service.AuditService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Redis 存储
	c.initStores()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initStores() {
	client := cache.Client()
	prefix := cache.Prefix()
	cartCfg := c.Config.Cart
	otpCfg := c.Config.Email.OTP

	c.CartStore = cache.NewCartStore(client, prefix, cartCfg.TTL(), cartCfg.CASMaxRetries)
	c.OTPStore = cache.NewOTPStore(
		client,
		prefix,
		time.Duration(otpCfg.ExpireMinutes)*time.Minute,
		time.Duration(otpCfg.SendIntervalSeconds)*time.Second,
		otpCfg.MaxAttempts,
	)
	captchaTTL := time.Duration(c.Config.Captcha.Image.ExpireSeconds) * time.Second
	if client != nil {
		c.Locker = cache.NewLocker(client, prefix)
		c.CaptchaStore = cache.NewCaptchaStore(client, prefix, captchaTTL)
		return
	}
	logger.Warnw("provider_redis_disabled",
		"cart", "unavailable",
		"checkout_lock", "disabled",
		"captcha_store", "memory",
	)
	if captchaTTL <= 0 {
		captchaTTL = 5 * time.Minute
	}
	c.CaptchaStore = base64Captcha.NewMemoryStore(base64Captcha.GCLimitNumber, captchaTTL)
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AccountRepo = repository.NewAccountRepository(db)
	c.RoleRepo = repository.NewRoleRepository(db)
	c.UserProfileRepo = repository.NewUserProfileRepository(db)
	c.RestaurantRepo = repository.NewRestaurantRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.DishRepo = repository.NewDishRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.LoginLogRepo = repository.NewLoginLogRepository(db)
	c.AuthzAuditRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha, c.CaptchaStore)
	c.AuthService = service.NewAuthService(
		c.Config,
		c.AccountRepo,
		c.RoleRepo,
		c.UserProfileRepo,
		c.RestaurantRepo,
		c.OTPStore,
		c.EmailService,
		c.QueueClient,
	)
	c.AuditService = service.NewAuditService(c.LoginLogRepo, c.AuthzAuditRepo)
	c.UserService = service.NewUserService(c.AccountRepo, c.UserProfileRepo, c.RestaurantRepo)
	c.RestaurantService = service.NewRestaurantService(c.RestaurantRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.RestaurantService)
	c.DishService = service.NewDishService(c.DishRepo, c.CategoryRepo, c.RestaurantService, c.CategoryService)
	c.CartService = service.NewCartService(c.CartStore, c.DishRepo, c.Config.Cart.MaxLineQuantity)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.AccountRepo,
		c.DishRepo,
		c.RestaurantRepo,
		c.RestaurantService,
		c.CartStore,
		c.Locker,
		c.QueueClient,
		time.Duration(c.Config.Cart.CheckoutLockSeconds)*time.Second,
	)
}
