package service

import "errors"

// 通用
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// 账号与认证
var (
	ErrInvalidEmail              = errors.New("invalid email")
	ErrEmailExists               = errors.New("email already registered")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidPassword           = errors.New("invalid password")
	ErrWeakPassword              = errors.New("weak password")
	ErrAccountDisabled           = errors.New("account disabled")
	ErrRoleInvalid               = errors.New("role invalid")
	ErrRoleMismatch              = errors.New("role mismatch")
	ErrRestaurantNameRequired    = errors.New("restaurant name required")
	ErrProfileEmpty              = errors.New("profile update empty")
	ErrAccountStatusInvalid      = errors.New("account status invalid")
	ErrCannotDisableSelf         = errors.New("cannot disable self")
	ErrOTPInvalid                = errors.New("otp invalid")
	ErrOTPExpired                = errors.New("otp expired")
	ErrOTPTooManyAttempts        = errors.New("otp too many attempts")
	ErrOTPTooFrequent            = errors.New("otp too frequent")
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)

// 验证码
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 餐厅、分类、菜品
var (
	ErrRestaurantNotFound   = errors.New("restaurant not found")
	ErrRestaurantRequired   = errors.New("account has no restaurant")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryExists       = errors.New("category already exists")
	ErrCategoryNameRequired = errors.New("category name required")
	ErrDishNotFound         = errors.New("dish not found")
	ErrDishNameRequired     = errors.New("dish name required")
	ErrDishPriceInvalid     = errors.New("dish price invalid")
	ErrDishUnavailable      = errors.New("dish unavailable")
)

// 购物车与订单
var (
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrQuantityExceeded       = errors.New("quantity exceeds limit")
	ErrCartItemNotFound       = errors.New("dish not in cart")
	ErrCartRestaurantMismatch = errors.New("cart contains dishes from another restaurant")
	ErrCartEmpty              = errors.New("cart is empty")
	ErrCartUnavailable        = errors.New("cart store unavailable")
	ErrCheckoutInProgress     = errors.New("checkout already in progress")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderStatusInvalid     = errors.New("order status transition invalid")
	ErrOrderCancelNotAllowed  = errors.New("only pending orders can be cancelled")
	ErrOrderStatusConflict    = errors.New("order status changed concurrently")
)
