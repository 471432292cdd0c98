package service

import (
	"bytes"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"github.com/foodhub-next/internal/config"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/i18n"
	"github.com/foodhub-next/internal/models"
)

// EmailService 邮件发送服务
type EmailService struct {
	cfg       *config.EmailConfig
	transport mailTransport
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg, transport: smtpTransport{cfg: cfg}}
}

// Enabled 是否已启用并完成配置
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled && s.cfg.Host != "" && s.cfg.Port != 0 && s.cfg.From != ""
}

// SendOTP 发送一次性验证码
func (s *EmailService) SendOTP(toEmail, code, purpose string, expireMinutes int, locale string) error {
	subject, body := buildOTPContent(code, purpose, expireMinutes, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

// SendWelcome 发送注册欢迎邮件
func (s *EmailService) SendWelcome(account *models.Account, locale string) error {
	if account == nil {
		return ErrNotFound
	}
	subject, body := buildWelcomeContent(account, locale)
	return s.sendTextEmail(account.Email, subject, body)
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo        string
	Status         string
	RestaurantName string
	TotalPrice     models.Money
	ToRestaurant   bool
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput, locale string) error {
	subject, body := buildOrderStatusContent(input, locale)
	return s.sendTextEmail(toEmail, subject, body)
}

func (s *EmailService) sendTextEmail(toEmail, subject, body string) error {
	if s == nil || s.cfg == nil || !s.cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if s.cfg.Host == "" || s.cfg.Port == 0 || s.cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	if _, err := mail.ParseAddress(toEmail); err != nil {
		return ErrInvalidEmail
	}
	msg := buildEmailMessage(buildFromAddress(s.cfg.From, s.cfg.FromName), toEmail, subject, body)
	return s.transport.Send(s.cfg.From, []string{toEmail}, msg)
}

func buildOTPContent(code, purpose string, expireMinutes int, locale string) (string, string) {
	normalized := i18n.NormalizeLocale(locale)
	if expireMinutes <= 0 {
		expireMinutes = 5
	}
	subject := i18n.T(normalized, "email.otp.subject")
	switch strings.ToLower(strings.TrimSpace(purpose)) {
	case constants.OTPPurposeResetPassword, "":
	default:
		subject = subject + " (" + purpose + ")"
	}
	return subject, i18n.Sprintf(normalized, "email.otp.body", code, expireMinutes)
}

func buildWelcomeContent(account *models.Account, locale string) (string, string) {
	normalized := i18n.NormalizeLocale(locale)
	name := strings.TrimSpace(account.Username)
	if name == "" {
		name = account.Email
	}
	subject := i18n.T(normalized, "email.welcome.subject")
	if account.RoleCode() == constants.RoleRestaurant {
		return subject, i18n.Sprintf(normalized, "email.welcome.body_restaurant", name)
	}
	return subject, i18n.Sprintf(normalized, "email.welcome.body", name)
}

func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	normalized := i18n.NormalizeLocale(locale)
	status := strings.ToLower(strings.TrimSpace(input.Status))
	statusKey := "order.status." + status
	statusLabel := i18n.T(normalized, statusKey)
	if statusLabel == statusKey {
		statusLabel = input.Status
	}
	total := input.TotalPrice.String()
	subject := i18n.Sprintf(normalized, "email.order_status.subject", statusLabel)
	switch {
	case input.ToRestaurant:
		return subject, i18n.Sprintf(normalized, "email.order_status.body_restaurant", input.OrderNo, input.RestaurantName, total)
	case status == constants.OrderStatusCancelled:
		return subject, i18n.Sprintf(normalized, "email.order_status.body_cancelled", input.OrderNo, input.RestaurantName, total)
	default:
		return subject, i18n.Sprintf(normalized, "email.order_status.body", input.OrderNo, input.RestaurantName, statusLabel, total)
	}
}

func buildFromAddress(from, name string) string {
	if strings.TrimSpace(name) == "" {
		return from
	}
	encoded := mime.QEncoding.Encode("UTF-8", name)
	return (&mail.Address{Name: encoded, Address: from}).String()
}

// buildEmailMessage 纯文本邮件，主题按 RFC 2047 编码
func buildEmailMessage(from, to, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\nTo: %s\r\nSubject: %s\r\n", from, to, mime.QEncoding.Encode("UTF-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	buf.WriteString(body)
	return buf.Bytes()
}
