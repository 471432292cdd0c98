package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/foodhub-next/internal/cache"
	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/queue"
	"github.com/foodhub-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService 账号认证服务
type AuthService struct {
	cfg            *config.Config
	accountRepo    repository.AccountRepository
	roleRepo       repository.RoleRepository
	profileRepo    repository.UserProfileRepository
	restaurantRepo repository.RestaurantRepository
	otpStore       *cache.OTPStore
	emailService   *EmailService
	queueClient    *queue.Client
}

// NewAuthService 创建认证服务
func NewAuthService(
	cfg *config.Config,
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	profileRepo repository.UserProfileRepository,
	restaurantRepo repository.RestaurantRepository,
	otpStore *cache.OTPStore,
	emailService *EmailService,
	queueClient *queue.Client,
) *AuthService {
	return &AuthService{
		cfg:            cfg,
		accountRepo:    accountRepo,
		roleRepo:       roleRepo,
		profileRepo:    profileRepo,
		restaurantRepo: restaurantRepo,
		otpStore:       otpStore,
		emailService:   emailService,
		queueClient:    queueClient,
	}
}

// JWTClaims 账号 JWT 声明
type JWTClaims struct {
	AccountID    uint   `json:"account_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username              string
	Email                 string
	Password              string
	Phone                 string
	Role                  string
	FullName              string
	Address               string
	RestaurantName        string
	RestaurantDescription string
	RestaurantAddress     string
	RestaurantPhone       string
	Locale                string
}

// LoginInput 登录输入
type LoginInput struct {
	Email      string
	Password   string
	Role       string
	RememberMe bool
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return validatePassword(config.PasswordPolicyConfig{}, password)
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(account *models.Account, expireHours int) (string, time.Time, error) {
	if expireHours <= 0 {
		expireHours = resolveJWTExpireHours(s.cfg.JWT)
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)
	claims := JWTClaims{
		AccountID:    account.ID,
		Email:        account.Email,
		Role:         account.RoleCode(),
		TokenVersion: account.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 注册账号，顾客同时创建资料，餐厅同时创建餐厅信息
func (s *AuthService) Register(input RegisterInput) (*models.Account, string, time.Time, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, "", time.Time{}, err
	}
	roleCode := strings.ToUpper(strings.TrimSpace(input.Role))
	if roleCode == "" {
		roleCode = constants.RoleCustomer
	}
	if roleCode != constants.RoleCustomer && roleCode != constants.RoleRestaurant {
		return nil, "", time.Time{}, ErrRoleInvalid
	}
	if roleCode == constants.RoleRestaurant && strings.TrimSpace(input.RestaurantName) == "" {
		return nil, "", time.Time{}, ErrRestaurantNameRequired
	}

	exist, err := s.accountRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}
	role, err := s.roleRepo.GetByCode(roleCode)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if role == nil {
		return nil, "", time.Time{}, ErrRoleInvalid
	}

	hashedPassword, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = resolveNicknameFromEmail(normalized)
	}
	now := time.Now()
	account := &models.Account{
		Username:     username,
		Email:        normalized,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hashedPassword,
		RoleID:       role.ID,
		Status:       constants.AccountStatusActive,
		LastLoginAt:  &now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.accountRepo.WithTx(tx).Create(account); err != nil {
			return err
		}
		switch roleCode {
		case constants.RoleCustomer:
			profile := &models.UserProfile{
				AccountID: account.ID,
				FullName:  strings.TrimSpace(input.FullName),
				Phone:     account.Phone,
				Address:   strings.TrimSpace(input.Address),
			}
			return s.profileRepo.WithTx(tx).Create(profile)
		case constants.RoleRestaurant:
			phone := strings.TrimSpace(input.RestaurantPhone)
			if phone == "" {
				phone = account.Phone
			}
			restaurant := &models.Restaurant{
				AccountID:   account.ID,
				Name:        strings.TrimSpace(input.RestaurantName),
				Description: strings.TrimSpace(input.RestaurantDescription),
				Address:     strings.TrimSpace(input.RestaurantAddress),
				Phone:       phone,
			}
			return s.restaurantRepo.WithTx(tx).Create(restaurant)
		}
		return nil
	})
	if err != nil {
		return nil, "", time.Time{}, err
	}
	account.Role = role

	token, expiresAt, err := s.GenerateJWT(account, 0)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAccountAuthState(context.Background(), cache.BuildAccountAuthState(account))

	if s.queueClient != nil {
		if err := s.queueClient.EnqueueWelcomeEmail(queue.WelcomeEmailPayload{AccountID: account.ID, Locale: input.Locale}); err != nil {
			logger.Warnw("auth_enqueue_welcome_email_failed", "account_id", account.ID, "error", err)
		}
	}
	return account, token, expiresAt, nil
}

// Login 账号登录，指定角色时校验角色一致
func (s *AuthService) Login(input LoginInput) (*models.Account, string, time.Time, error) {
	normalized, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	account, err := s.accountRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if account == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if strings.ToLower(account.Status) != constants.AccountStatusActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}
	if role := strings.ToUpper(strings.TrimSpace(input.Role)); role != "" && role != account.RoleCode() {
		return nil, "", time.Time{}, ErrRoleMismatch
	}

	expireHours := resolveJWTExpireHours(s.cfg.JWT)
	if input.RememberMe {
		expireHours = resolveRememberMeExpireHours(s.cfg.JWT)
	}
	token, expiresAt, err := s.GenerateJWT(account, expireHours)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	account.LastLoginAt = &now
	if err := s.accountRepo.Update(account); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAccountAuthState(context.Background(), cache.BuildAccountAuthState(account))
	return account, token, expiresAt, nil
}

// Logout 注销当前账号已签发的全部 Token
func (s *AuthService) Logout(accountID uint) error {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return err
	}
	now := time.Now()
	account.TokenInvalidBefore = &now
	if err := s.accountRepo.Update(account); err != nil {
		return err
	}
	_ = cache.SetAccountAuthState(context.Background(), cache.BuildAccountAuthState(account))
	return nil
}

// ForgotPassword 生成重置密码验证码并发送到邮箱
func (s *AuthService) ForgotPassword(ctx context.Context, email, locale string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	account, err := s.accountRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrNotFound
	}
	if s.otpStore == nil {
		return ErrEmailServiceNotConfigured
	}

	otpCfg := s.cfg.Email.OTP
	code, err := randomNumericCode(resolveCodeLength(otpCfg))
	if err != nil {
		return err
	}
	if err := s.otpStore.Issue(ctx, constants.OTPPurposeResetPassword, normalized, code); err != nil {
		return mapOTPError(err)
	}

	expireMinutes := resolveExpireMinutes(otpCfg)
	if s.queueClient != nil && s.queueClient.Enabled() {
		return s.queueClient.EnqueueOTPEmail(queue.OTPEmailPayload{
			Email:         normalized,
			Code:          code,
			Purpose:       constants.OTPPurposeResetPassword,
			ExpireMinutes: expireMinutes,
			Locale:        locale,
		}, s.otpStore.TTL())
	}
	if s.emailService == nil {
		return ErrEmailServiceNotConfigured
	}
	return s.emailService.SendOTP(normalized, code, constants.OTPPurposeResetPassword, expireMinutes, locale)
}

// VerifyOTP 校验重置密码验证码（不消费）
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if s.otpStore == nil {
		return ErrOTPExpired
	}
	return mapOTPError(s.otpStore.Verify(ctx, constants.OTPPurposeResetPassword, normalized, code))
}

// ResetPassword 使用验证码重置密码
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}
	account, err := s.accountRepo.GetByEmail(normalized)
	if err != nil {
		return err
	}
	if account == nil {
		return ErrNotFound
	}
	if s.otpStore == nil {
		return ErrOTPExpired
	}
	if err := s.otpStore.Consume(ctx, constants.OTPPurposeResetPassword, normalized, code); err != nil {
		return mapOTPError(err)
	}
	return s.replacePassword(account, newPassword)
}

// ChangePassword 登录态修改密码
func (s *AuthService) ChangePassword(accountID uint, oldPassword, newPassword string) error {
	account, err := s.GetAccount(accountID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}
	return s.replacePassword(account, newPassword)
}

// GetAccount 获取账号
func (s *AuthService) GetAccount(accountID uint) (*models.Account, error) {
	if accountID == 0 {
		return nil, ErrNotFound
	}
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrNotFound
	}
	return account, nil
}

func (s *AuthService) replacePassword(account *models.Account, newPassword string) error {
	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	now := time.Now()
	account.PasswordHash = hashedPassword
	account.TokenVersion++
	account.TokenInvalidBefore = &now
	if err := s.accountRepo.Update(account); err != nil {
		return err
	}
	_ = cache.SetAccountAuthState(context.Background(), cache.BuildAccountAuthState(account))
	return nil
}

func mapOTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cache.ErrOTPNotFound):
		return ErrOTPExpired
	case errors.Is(err, cache.ErrOTPInvalid):
		return ErrOTPInvalid
	case errors.Is(err, cache.ErrOTPTooManyAttempts):
		return ErrOTPTooManyAttempts
	case errors.Is(err, cache.ErrOTPTooFrequent):
		return ErrOTPTooFrequent
	default:
		return err
	}
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

// NormalizeEmail 统一邮箱格式
func NormalizeEmail(email string) (string, error) {
	return normalizeEmail(email)
}

func resolveJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 168
	}
	return cfg.ExpireHours
}

func resolveRememberMeExpireHours(cfg config.JWTConfig) int {
	if cfg.RememberMeExpireHours <= 0 {
		return resolveJWTExpireHours(cfg)
	}
	return cfg.RememberMeExpireHours
}

func resolveNicknameFromEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) == 2 && strings.TrimSpace(parts[0]) != "" {
		return strings.TrimSpace(parts[0])
	}
	return email
}

func resolveExpireMinutes(cfg config.OTPConfig) int {
	if cfg.ExpireMinutes <= 0 {
		return 5
	}
	return cfg.ExpireMinutes
}

func resolveCodeLength(cfg config.OTPConfig) int {
	if cfg.Length < 4 || cfg.Length > 10 {
		return 6
	}
	return cfg.Length
}

func randomNumericCode(length int) (string, error) {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String(), nil
}
