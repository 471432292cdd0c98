package public

import (
	"errors"

	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// localizedError 携带 i18n 键与格式化参数的业务错误，如密码策略错误
type localizedError interface {
	error
	Key() string
	Args() []interface{}
}

// respondLocalizedError 命中可本地化错误时直接返回，未命中返回 false
func respondLocalizedError(c *gin.Context, err error) bool {
	var localized localizedError
	if !errors.As(err, &localized) {
		return false
	}
	handlershared.RespondErrorWithArgs(c, response.CodeBadRequest, localized.Key(), localized.Args(), nil)
	return true
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}

var accountErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.invalid_email"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.invalid_password"},
	{target: service.ErrAccountDisabled, code: response.CodeForbidden, key: "error.account_disabled"},
	{target: service.ErrRoleInvalid, code: response.CodeBadRequest, key: "error.role_invalid"},
	{target: service.ErrRoleMismatch, code: response.CodeForbidden, key: "error.role_mismatch"},
	{target: service.ErrRestaurantNameRequired, code: response.CodeBadRequest, key: "error.restaurant_name_required"},
	{target: service.ErrProfileEmpty, code: response.CodeBadRequest, key: "error.profile_empty"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
}

var otpErrorRules = []mappedHandlerError{
	{target: service.ErrOTPInvalid, code: response.CodeBadRequest, key: "error.otp_invalid"},
	{target: service.ErrOTPExpired, code: response.CodeBadRequest, key: "error.otp_expired"},
	{target: service.ErrOTPTooManyAttempts, code: response.CodeTooManyRequests, key: "error.otp_too_many_attempts"},
	{target: service.ErrOTPTooFrequent, code: response.CodeTooManyRequests, key: "error.otp_too_frequent"},
	{target: service.ErrEmailServiceDisabled, code: response.CodeInternal, key: "error.email_disabled"},
	{target: service.ErrEmailServiceNotConfigured, code: response.CodeInternal, key: "error.email_not_configured"},
	{target: service.ErrEmailRecipientRejected, code: response.CodeBadRequest, key: "error.email_rejected"},
}

var restaurantErrorRules = []mappedHandlerError{
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
	{target: service.ErrRestaurantRequired, code: response.CodeBadRequest, key: "error.restaurant_required"},
	{target: service.ErrRestaurantNameRequired, code: response.CodeBadRequest, key: "error.restaurant_name_required"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
}

var menuErrorRules = concatMappedHandlerErrors(restaurantErrorRules, []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategoryExists, code: response.CodeConflict, key: "error.category_exists"},
	{target: service.ErrCategoryNameRequired, code: response.CodeBadRequest, key: "error.category_name_required"},
	{target: service.ErrDishNotFound, code: response.CodeNotFound, key: "error.dish_not_found"},
	{target: service.ErrDishNameRequired, code: response.CodeBadRequest, key: "error.dish_name_required"},
	{target: service.ErrDishPriceInvalid, code: response.CodeBadRequest, key: "error.dish_price_invalid"},
})

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrDishNotFound, code: response.CodeNotFound, key: "error.dish_not_found"},
	{target: service.ErrDishUnavailable, code: response.CodeBadRequest, key: "error.dish_unavailable"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.invalid_quantity"},
	{target: service.ErrQuantityExceeded, code: response.CodeBadRequest, key: "error.quantity_exceeded"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
	{target: service.ErrCartRestaurantMismatch, code: response.CodeBadRequest, key: "error.cart_restaurant_mismatch"},
	{target: service.ErrCartUnavailable, code: response.CodeInternal, key: "error.cart_unavailable"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, key: "error.order_cancel_not_allowed"},
	{target: service.ErrOrderStatusConflict, code: response.CodeConflict, key: "error.order_status_conflict"},
	{target: service.ErrRestaurantRequired, code: response.CodeBadRequest, key: "error.restaurant_required"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.forbidden"},
}

var checkoutErrorRules = concatMappedHandlerErrors([]mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrCheckoutInProgress, code: response.CodeConflict, key: "error.checkout_in_progress"},
	{target: service.ErrCustomerNotFound, code: response.CodeNotFound, key: "error.customer_not_found"},
	{target: service.ErrRestaurantNotFound, code: response.CodeNotFound, key: "error.restaurant_not_found"},
}, cartErrorRules, orderErrorRules)
