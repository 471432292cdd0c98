package queue

import (
	"encoding/json"

	"github.com/foodhub-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEmail 订单状态邮件通知任务
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
	// TaskOTPEmail 验证码邮件任务
	TaskOTPEmail = constants.TaskOTPEmail
	// TaskWelcomeEmail 注册欢迎邮件任务
	TaskWelcomeEmail = constants.TaskWelcomeEmail
)

// OrderStatusEmailPayload 订单状态邮件任务载荷
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
	Locale  string `json:"locale,omitempty"`
}

// OTPEmailPayload 验证码邮件任务载荷
type OTPEmailPayload struct {
	Email         string `json:"email"`
	Code          string `json:"code"`
	Purpose       string `json:"purpose"`
	ExpireMinutes int    `json:"expire_minutes"`
	Locale        string `json:"locale,omitempty"`
}

// WelcomeEmailPayload 欢迎邮件任务载荷
type WelcomeEmailPayload struct {
	AccountID uint   `json:"account_id"`
	Locale    string `json:"locale,omitempty"`
}

// NewOrderStatusEmailTask 创建订单状态邮件任务
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOrderStatusEmail, payload)
}

// NewOTPEmailTask 创建验证码邮件任务
func NewOTPEmailTask(payload OTPEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskOTPEmail, payload)
}

// NewWelcomeEmailTask 创建欢迎邮件任务
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	return newJSONTask(TaskWelcomeEmail, payload)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}
