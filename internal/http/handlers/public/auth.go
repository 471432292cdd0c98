package public

import (
	"time"

	"github.com/foodhub-next/internal/constants"
	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/i18n"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求，role 为 RESTAURANT 时需要 restaurant_name
type RegisterRequest struct {
	Username              string                `json:"username"`
	Email                 string                `json:"email" binding:"required"`
	Password              string                `json:"password" binding:"required"`
	Phone                 string                `json:"phone"`
	Role                  string                `json:"role"`
	FullName              string                `json:"full_name"`
	Address               string                `json:"address"`
	RestaurantName        string                `json:"restaurant_name"`
	RestaurantDescription string                `json:"restaurant_description"`
	RestaurantAddress     string                `json:"restaurant_address"`
	RestaurantPhone       string                `json:"restaurant_phone"`
	CaptchaPayload        CaptchaPayloadRequest `json:"captcha_payload"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email          string                `json:"email" binding:"required"`
	Password       string                `json:"password" binding:"required"`
	Role           string                `json:"role"`
	RememberMe     bool                  `json:"remember_me"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// ForgotPasswordRequest 忘记密码请求
type ForgotPasswordRequest struct {
	Email          string                `json:"email" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// VerifyOTPRequest 校验验证码请求
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func accountSummary(account *models.Account) gin.H {
	return gin.H{
		"id":            account.ID,
		"username":      account.Username,
		"email":         account.Email,
		"phone":         account.Phone,
		"role":          account.RoleCode(),
		"status":        account.Status,
		"last_login_at": account.LastLoginAt,
	}
}

func tokenResponse(account *models.Account, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"account":    accountSummary(account),
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expiresAt.Format(time.RFC3339),
	}
}

// Register 账号注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneRegister, req.CaptchaPayload) {
		return
	}

	account, token, expiresAt, err := h.AuthService.Register(service.RegisterInput{
		Username:              req.Username,
		Email:                 req.Email,
		Password:              req.Password,
		Phone:                 req.Phone,
		Role:                  req.Role,
		FullName:              req.FullName,
		Address:               req.Address,
		RestaurantName:        req.RestaurantName,
		RestaurantDescription: req.RestaurantDescription,
		RestaurantAddress:     req.RestaurantAddress,
		RestaurantPhone:       req.RestaurantPhone,
		Locale:                i18n.ResolveLocale(c),
	})
	if err != nil {
		if respondLocalizedError(c, err) {
			return
		}
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, tokenResponse(account, token, expiresAt))
}

// Login 账号登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	account, token, expiresAt, err := h.AuthService.Login(service.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		RememberMe: req.RememberMe,
	})
	h.recordLogin(c, req, account, err)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, tokenResponse(account, token, expiresAt))
}

// recordLogin 写入登录日志，失败不影响登录结果
func (h *Handler) recordLogin(c *gin.Context, req LoginRequest, account *models.Account, loginErr error) {
	input := service.RecordLoginInput{
		Email:     req.Email,
		Role:      req.Role,
		Success:   loginErr == nil,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: handlershared.RequestID(c),
	}
	if account != nil {
		input.AccountID = account.ID
		input.Role = account.RoleCode()
	}
	if loginErr != nil {
		input.FailReason = service.LoginFailReason(loginErr)
	}
	if err := h.AuditService.RecordLogin(input); err != nil {
		handlershared.RequestLog(c).Warnw("login_log_record_failed", "email", req.Email, "error", err)
	}
}

// Logout 注销当前账号全部登录态
func (h *Handler) Logout(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(actor.AccountID); err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// ForgotPassword 发送重置密码验证码
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneForgotPassword, req.CaptchaPayload) {
		return
	}
	if err := h.AuthService.ForgotPassword(c.Request.Context(), req.Email, i18n.ResolveLocale(c)); err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(otpErrorRules, accountErrorRules), response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, gin.H{"sent": true})
}

// VerifyOTP 校验重置密码验证码
func (h *Handler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthService.VerifyOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		respondWithMappedError(c, err, concatMappedHandlerErrors(otpErrorRules, accountErrorRules), response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, gin.H{"valid": true})
}

// ResetPassword 使用验证码重置密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthService.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		if respondLocalizedError(c, err) {
			return
		}
		respondWithMappedError(c, err, concatMappedHandlerErrors(otpErrorRules, accountErrorRules), response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// ChangePassword 登录态修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthService.ChangePassword(actor.AccountID, req.OldPassword, req.NewPassword); err != nil {
		if respondLocalizedError(c, err) {
			return
		}
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
