package service

import (
	"strings"

	"github.com/foodhub-next/internal/constants"
)

// 订单状态只能逐级前进；取消仅允许从待确认发起，由 CancelOrder 处理
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusProcessing: true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusDelivering: true,
	},
	constants.OrderStatusDelivering: {
		constants.OrderStatusCompleted: true,
	},
}

// CanTransitOrderStatus 判断状态流转是否合法（不含取消）
func CanTransitOrderStatus(from, to string) bool {
	return allowedTransitions[normalizeOrderStatus(from)][normalizeOrderStatus(to)]
}

// IsValidOrderStatus 是否为已知订单状态
func IsValidOrderStatus(status string) bool {
	switch normalizeOrderStatus(status) {
	case constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusProcessing,
		constants.OrderStatusDelivering,
		constants.OrderStatusCompleted,
		constants.OrderStatusCancelled:
		return true
	default:
		return false
	}
}

func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}
