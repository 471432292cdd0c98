package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/logger"
	"github.com/foodhub-next/internal/models"
	"github.com/foodhub-next/internal/provider"
	"github.com/foodhub-next/internal/queue"
	"github.com/foodhub-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskOTPEmail, c.handleOTPEmail)
	mux.HandleFunc(queue.TaskWelcomeEmail, c.handleWelcomeEmail)
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_order_status_email_skip_email_disabled", "order_id", payload.OrderID)
		return nil
	}
	order, err := c.OrderRepo.GetDetail(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}
	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}

	receiverID, toRestaurant := resolveOrderStatusReceiver(order, status)
	if receiverID == 0 {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	receiver, err := c.AccountRepo.GetByID(receiverID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_receiver_failed", "order_id", order.ID, "account_id", receiverID, "error", err)
		return err
	}
	if receiver == nil || strings.TrimSpace(receiver.Email) == "" {
		logger.Debugw("worker_order_status_email_skip_receiver_not_found", "order_id", order.ID, "account_id", receiverID)
		return nil
	}

	input := service.OrderStatusEmailInput{
		OrderNo:      order.OrderNo,
		Status:       status,
		TotalPrice:   order.TotalPrice,
		ToRestaurant: toRestaurant,
	}
	if order.Restaurant != nil {
		input.RestaurantName = order.Restaurant.Name
	}
	if err := c.EmailService.SendOrderStatusEmail(receiver.Email, input, payload.Locale); err != nil {
		if isPermanentEmailError(err) {
			logger.Warnw("worker_order_status_email_dropped",
				"order_id", order.ID,
				"order_no", order.OrderNo,
				"receiver_email", receiver.Email,
				"error", err,
			)
			return nil
		}
		logger.Warnw("worker_order_status_email_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiver.Email,
			"status", status,
			"error", err,
		)
		return err
	}
	return nil
}

func (c *Consumer) handleOTPEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_otp_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OTPEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_otp_email_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" || strings.TrimSpace(payload.Code) == "" {
		logger.Debugw("worker_otp_email_skip_invalid_payload", "email", email)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_otp_email_skip_email_service_nil", "email", email)
		return nil
	}
	if err := c.EmailService.SendOTP(email, payload.Code, payload.Purpose, payload.ExpireMinutes, payload.Locale); err != nil {
		if isPermanentEmailError(err) {
			logger.Warnw("worker_otp_email_dropped", "email", email, "purpose", payload.Purpose, "error", err)
			return nil
		}
		logger.Warnw("worker_otp_email_send_failed", "email", email, "purpose", payload.Purpose, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || c.Container == nil || task == nil {
		logger.Debugw("worker_welcome_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WelcomeEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_welcome_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.AccountID == 0 {
		logger.Debugw("worker_welcome_email_skip_invalid_payload", "account_id", payload.AccountID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_welcome_email_skip_email_disabled", "account_id", payload.AccountID)
		return nil
	}
	account, err := c.AccountRepo.GetByID(payload.AccountID)
	if err != nil {
		logger.Warnw("worker_welcome_email_fetch_account_failed", "account_id", payload.AccountID, "error", err)
		return err
	}
	if account == nil {
		logger.Debugw("worker_welcome_email_skip_account_not_found", "account_id", payload.AccountID)
		return nil
	}
	if err := c.EmailService.SendWelcome(account, payload.Locale); err != nil {
		if isPermanentEmailError(err) {
			logger.Warnw("worker_welcome_email_dropped", "account_id", account.ID, "error", err)
			return nil
		}
		logger.Warnw("worker_welcome_email_send_failed", "account_id", account.ID, "error", err)
		return err
	}
	return nil
}

// resolveOrderStatusReceiver 新订单通知餐厅，其余状态通知下单顾客
func resolveOrderStatusReceiver(order *models.Order, status string) (uint, bool) {
	if order == nil {
		return 0, false
	}
	if status == constants.OrderStatusPending {
		if order.Restaurant == nil {
			return 0, true
		}
		return order.Restaurant.AccountID, true
	}
	return order.CustomerID, false
}

// isPermanentEmailError 重试无意义的发送错误
func isPermanentEmailError(err error) bool {
	switch {
	case errors.Is(err, service.ErrEmailServiceDisabled),
		errors.Is(err, service.ErrEmailServiceNotConfigured),
		errors.Is(err, service.ErrEmailRecipientRejected),
		errors.Is(err, service.ErrInvalidEmail):
		return true
	default:
		return false
	}
}
