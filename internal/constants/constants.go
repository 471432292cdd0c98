package constants

// 账号角色编码
const (
	RoleCustomer   = "CUSTOMER"
	RoleRestaurant = "RESTAURANT"
	RoleAdmin      = "ADMIN"
)

// 账号状态
const (
	AccountStatusActive   = "active"
	AccountStatusDisabled = "disabled"
)

// 订单状态
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusDelivering = "delivering"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// OTP 用途
const (
	OTPPurposeResetPassword = "reset_password"
)

// 验证码场景
const (
	CaptchaSceneLogin          = "login"
	CaptchaSceneRegister       = "register"
	CaptchaSceneForgotPassword = "forgot_password"
)

// 验证码提供方
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 队列与任务
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskOrderStatusEmail = "order:status_email"
	TaskOTPEmail         = "account:otp_email"
	TaskWelcomeEmail     = "account:welcome_email"
)

// 上下文键
const (
	ContextKeyAccountID = "account_id"
	ContextKeyRole      = "role"
	ContextKeyEmail     = "email"
	ContextKeyRequestID = "request_id"
)

// 订单号前缀
const OrderNoPrefix = "FO"

// 登录日志
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"

	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonAccountDisabled    = "account_disabled"
	LoginLogFailReasonRoleMismatch       = "role_mismatch"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 后台审计动作
const (
	AuditActionPolicyGrant  = "policy_grant"
	AuditActionPolicyRevoke = "policy_revoke"
	AuditActionUserStatus   = "user_status_update"
)
