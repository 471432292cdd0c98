package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"common.success":          "success",
		"error.bad_request":       "Invalid request parameters",
		"error.unauthorized":      "Please log in first",
		"error.token_invalid":     "Login has expired, please log in again",
		"error.forbidden":         "You do not have permission to perform this action",
		"error.not_found":         "Resource not found",
		"error.conflict":          "The resource was changed by another request, please retry",
		"error.too_many_requests": "Too many requests, please try again later",
		"error.internal_error":    "Internal server error",

		"error.invalid_email":            "Invalid email address",
		"error.email_exists":             "This email is already registered",
		"error.invalid_credentials":      "Incorrect email or password",
		"error.invalid_password":         "Current password is incorrect",
		"error.password_min_length":      "Password must be at least %d characters",
		"error.password_max_length":      "Password must not exceed %d bytes",
		"error.password_require_upper":   "Password must contain an uppercase letter",
		"error.password_require_lower":   "Password must contain a lowercase letter",
		"error.password_require_number":  "Password must contain a digit",
		"error.password_require_special": "Password must contain a special character",
		"error.account_disabled":         "This account has been disabled",
		"error.role_invalid":             "Invalid role",
		"error.role_mismatch":            "This account does not have the requested role",
		"error.restaurant_name_required": "Restaurant name is required",
		"error.profile_empty":            "Nothing to update",
		"error.account_status_invalid":   "Invalid account status",
		"error.cannot_disable_self":      "You cannot disable your own account",
		"error.user_not_found":           "Account not found",
		"error.otp_invalid":              "Incorrect verification code",
		"error.otp_expired":              "Verification code has expired",
		"error.otp_too_many_attempts":    "Too many attempts, please request a new code",
		"error.otp_too_frequent":         "Codes are sent too frequently, please wait",
		"error.email_disabled":           "Email service is disabled",
		"error.email_not_configured":     "Email service is not configured",
		"error.email_rejected":           "The recipient address was rejected",
		"error.captcha_required":         "Please complete the captcha",
		"error.captcha_invalid":          "Incorrect captcha",
		"error.captcha_config_invalid":   "Captcha is misconfigured",

		"error.restaurant_not_found":     "Restaurant not found",
		"error.restaurant_required":      "This account has no restaurant",
		"error.category_not_found":       "Category not found",
		"error.category_exists":          "Category already exists",
		"error.category_name_required":   "Category name is required",
		"error.dish_not_found":           "Dish not found",
		"error.dish_name_required":       "Dish name is required",
		"error.dish_price_invalid":       "Dish price must be greater than zero",
		"error.dish_unavailable":         "Dish is currently unavailable",
		"error.invalid_quantity":         "Quantity must be at least 1",
		"error.quantity_exceeded":        "Quantity exceeds the per-dish limit",
		"error.cart_item_not_found":      "Dish is not in the cart",
		"error.cart_restaurant_mismatch": "A cart can only hold dishes from one restaurant",
		"error.cart_empty":               "Cart is empty",
		"error.cart_unavailable":         "Cart is temporarily unavailable",
		"error.checkout_in_progress":     "Checkout is already in progress",
		"error.customer_not_found":       "Customer not found",
		"error.order_not_found":          "Order not found",
		"error.order_status_invalid":     "Illegal order status transition",
		"error.order_cancel_not_allowed": "Only pending orders can be cancelled",
		"error.order_status_conflict":    "Order status was changed concurrently, please refresh",
		"error.authz_policy_invalid":     "Invalid permission policy",
		"error.token_revoked":            "Session has been revoked, please log in again",
		"error.auth_header_missing":      "Missing Authorization header",
		"error.auth_header_invalid":      "Authorization header must be Bearer <token>",
		"error.jwt_secret_missing":       "Token signing is not configured",
		"error.rate_limit_unavailable":   "Rate limiter is unavailable, please retry",
		"error.rate_limited":             "Too many attempts, please retry in %d seconds",
		"error.authz_builtin_policy":     "Built-in policies cannot be revoked",
		"error.authz_role_invalid":       "Invalid role name",

		"order.status.pending":    "Pending",
		"order.status.confirmed":  "Confirmed",
		"order.status.processing": "Preparing",
		"order.status.delivering": "Delivering",
		"order.status.completed":  "Completed",
		"order.status.cancelled":  "Cancelled",

		"email.otp.subject":                  "Password Reset Code",
		"email.otp.body":                     "Your verification code is: %s\n\nIt expires in %d minutes. Do not share it.",
		"email.welcome.subject":              "Welcome to FoodHub",
		"email.welcome.body":                 "Hi %s,\n\nYour account has been created. Enjoy your meal!",
		"email.welcome.body_restaurant":      "Hi %s,\n\nYour restaurant account has been created. Start adding dishes to your menu.",
		"email.order_status.subject":         "Order update: %s",
		"email.order_status.body":            "Your order %s at %s is now %s.\nTotal: %s",
		"email.order_status.body_cancelled":  "Your order %s at %s has been cancelled.\nTotal: %s",
		"email.order_status.body_restaurant": "New order %s has been placed at %s.\nTotal: %s",
	},
	LocaleZH: {
		"common.success":          "成功",
		"error.bad_request":       "请求参数错误",
		"error.unauthorized":      "请先登录",
		"error.token_invalid":     "登录已失效，请重新登录",
		"error.forbidden":         "无权执行该操作",
		"error.not_found":         "资源不存在",
		"error.conflict":          "资源已被其他请求修改，请重试",
		"error.too_many_requests": "请求过于频繁，请稍后再试",
		"error.internal_error":    "服务器内部错误",

		"error.invalid_email":            "邮箱格式错误",
		"error.email_exists":             "该邮箱已注册",
		"error.invalid_credentials":      "邮箱或密码错误",
		"error.invalid_password":         "原密码错误",
		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_max_length":      "密码不能超过 %d 字节",
		"error.password_require_upper":   "密码必须包含大写字母",
		"error.password_require_lower":   "密码必须包含小写字母",
		"error.password_require_number":  "密码必须包含数字",
		"error.password_require_special": "密码必须包含特殊字符",
		"error.account_disabled":         "账号已被禁用",
		"error.role_invalid":             "角色无效",
		"error.role_mismatch":            "账号不具备该角色",
		"error.restaurant_name_required": "餐厅名称不能为空",
		"error.profile_empty":            "没有需要更新的内容",
		"error.account_status_invalid":   "账号状态无效",
		"error.cannot_disable_self":      "不能禁用自己的账号",
		"error.user_not_found":           "账号不存在",
		"error.otp_invalid":              "验证码错误",
		"error.otp_expired":              "验证码已过期",
		"error.otp_too_many_attempts":    "尝试次数过多，请重新获取验证码",
		"error.otp_too_frequent":         "验证码发送过于频繁，请稍后再试",
		"error.email_disabled":           "邮件服务未启用",
		"error.email_not_configured":     "邮件服务未配置",
		"error.email_rejected":           "收件地址被拒收",
		"error.captcha_required":         "请完成验证码",
		"error.captcha_invalid":          "验证码错误",
		"error.captcha_config_invalid":   "验证码配置错误",

		"error.restaurant_not_found":     "餐厅不存在",
		"error.restaurant_required":      "当前账号没有餐厅",
		"error.category_not_found":       "分类不存在",
		"error.category_exists":          "分类已存在",
		"error.category_name_required":   "分类名称不能为空",
		"error.dish_not_found":           "菜品不存在",
		"error.dish_name_required":       "菜品名称不能为空",
		"error.dish_price_invalid":       "菜品价格必须大于 0",
		"error.dish_unavailable":         "菜品暂不可售",
		"error.invalid_quantity":         "数量至少为 1",
		"error.quantity_exceeded":        "单个菜品数量超过上限",
		"error.cart_item_not_found":      "购物车中没有该菜品",
		"error.cart_restaurant_mismatch": "购物车只能包含同一家餐厅的菜品",
		"error.cart_empty":               "购物车为空",
		"error.cart_unavailable":         "购物车暂不可用",
		"error.checkout_in_progress":     "正在下单，请勿重复提交",
		"error.customer_not_found":       "顾客不存在",
		"error.order_not_found":          "订单不存在",
		"error.order_status_invalid":     "订单状态流转不合法",
		"error.order_cancel_not_allowed": "只有待确认的订单可以取消",
		"error.order_status_conflict":    "订单状态已被修改，请刷新后重试",
		"error.authz_policy_invalid":     "权限策略无效",
		"error.token_revoked":            "登录状态已失效，请重新登录",
		"error.auth_header_missing":      "缺少 Authorization 请求头",
		"error.auth_header_invalid":      "Authorization 格式应为 Bearer <token>",
		"error.jwt_secret_missing":       "未配置令牌签名密钥",
		"error.rate_limit_unavailable":   "限流服务不可用，请稍后重试",
		"error.rate_limited":             "尝试次数过多，请 %d 秒后重试",
		"error.authz_builtin_policy":     "内置策略不可撤销",
		"error.authz_role_invalid":       "角色名称无效",

		"order.status.pending":    "待确认",
		"order.status.confirmed":  "已确认",
		"order.status.processing": "制作中",
		"order.status.delivering": "配送中",
		"order.status.completed":  "已完成",
		"order.status.cancelled":  "已取消",

		"email.otp.subject":                  "重置密码验证码",
		"email.otp.body":                     "您的验证码是：%s\n\n%d 分钟内有效，请勿泄露。",
		"email.welcome.subject":              "欢迎加入 FoodHub",
		"email.welcome.body":                 "%s 您好，\n\n您的账号已创建成功，祝您用餐愉快！",
		"email.welcome.body_restaurant":      "%s 您好，\n\n您的餐厅账号已创建成功，现在可以开始添加菜品了。",
		"email.order_status.subject":         "订单状态更新：%s",
		"email.order_status.body":            "您在 %[2]s 的订单 %[1]s 当前状态：%[3]s。\n订单金额：%[4]s",
		"email.order_status.body_cancelled":  "您在 %[2]s 的订单 %[1]s 已取消。\n订单金额：%[3]s",
		"email.order_status.body_restaurant": "%[2]s 收到新订单 %[1]s。\n订单金额：%[3]s",
	},
	LocaleVI: {
		"common.success":          "thành công",
		"error.bad_request":       "Tham số yêu cầu không hợp lệ",
		"error.unauthorized":      "Vui lòng đăng nhập",
		"error.token_invalid":     "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại",
		"error.forbidden":         "Bạn không có quyền thực hiện thao tác này",
		"error.not_found":         "Không tìm thấy tài nguyên",
		"error.conflict":          "Dữ liệu đã bị thay đổi, vui lòng thử lại",
		"error.too_many_requests": "Quá nhiều yêu cầu, vui lòng thử lại sau",
		"error.internal_error":    "Lỗi máy chủ",

		"error.invalid_email":            "Email không hợp lệ",
		"error.email_exists":             "Email này đã được đăng ký",
		"error.invalid_credentials":      "Email hoặc mật khẩu không đúng",
		"error.invalid_password":         "Mật khẩu hiện tại không đúng",
		"error.password_min_length":      "Mật khẩu phải có ít nhất %d ký tự",
		"error.password_max_length":      "Mật khẩu không được vượt quá %d byte",
		"error.password_require_upper":   "Mật khẩu phải có chữ in hoa",
		"error.password_require_lower":   "Mật khẩu phải có chữ thường",
		"error.password_require_number":  "Mật khẩu phải có chữ số",
		"error.password_require_special": "Mật khẩu phải có ký tự đặc biệt",
		"error.account_disabled":         "Tài khoản đã bị khóa",
		"error.role_invalid":             "Vai trò không hợp lệ",
		"error.role_mismatch":            "Tài khoản không có vai trò này",
		"error.restaurant_name_required": "Tên nhà hàng là bắt buộc",
		"error.profile_empty":            "Không có gì để cập nhật",
		"error.account_status_invalid":   "Trạng thái tài khoản không hợp lệ",
		"error.cannot_disable_self":      "Không thể khóa tài khoản của chính bạn",
		"error.user_not_found":           "Không tìm thấy tài khoản",
		"error.otp_invalid":              "Mã xác thực không đúng",
		"error.otp_expired":              "Mã xác thực đã hết hạn",
		"error.otp_too_many_attempts":    "Nhập sai quá nhiều lần, vui lòng lấy mã mới",
		"error.otp_too_frequent":         "Gửi mã quá nhanh, vui lòng đợi",
		"error.email_disabled":           "Dịch vụ email đang tắt",
		"error.email_not_configured":     "Dịch vụ email chưa được cấu hình",
		"error.email_rejected":           "Địa chỉ nhận bị từ chối",
		"error.captcha_required":         "Vui lòng nhập captcha",
		"error.captcha_invalid":          "Captcha không đúng",
		"error.captcha_config_invalid":   "Cấu hình captcha không hợp lệ",

		"error.restaurant_not_found":     "Không tìm thấy nhà hàng",
		"error.restaurant_required":      "Tài khoản chưa có nhà hàng",
		"error.category_not_found":       "Không tìm thấy danh mục",
		"error.category_exists":          "Danh mục đã tồn tại",
		"error.category_name_required":   "Tên danh mục là bắt buộc",
		"error.dish_not_found":           "Không tìm thấy món ăn",
		"error.dish_name_required":       "Tên món ăn là bắt buộc",
		"error.dish_price_invalid":       "Giá món ăn phải lớn hơn 0",
		"error.dish_unavailable":         "Món ăn tạm hết",
		"error.invalid_quantity":         "Số lượng tối thiểu là 1",
		"error.quantity_exceeded":        "Số lượng mỗi món vượt quá giới hạn",
		"error.cart_item_not_found":      "Món ăn không có trong giỏ hàng",
		"error.cart_restaurant_mismatch": "Giỏ hàng chỉ chứa món của một nhà hàng",
		"error.cart_empty":               "Giỏ hàng trống",
		"error.cart_unavailable":         "Giỏ hàng tạm thời không khả dụng",
		"error.checkout_in_progress":     "Đơn hàng đang được xử lý",
		"error.customer_not_found":       "Không tìm thấy khách hàng",
		"error.order_not_found":          "Không tìm thấy đơn hàng",
		"error.order_status_invalid":     "Chuyển trạng thái đơn hàng không hợp lệ",
		"error.order_cancel_not_allowed": "Chỉ có thể hủy đơn đang chờ xác nhận",
		"error.order_status_conflict":    "Trạng thái đơn đã thay đổi, vui lòng tải lại",
		"error.authz_policy_invalid":     "Chính sách phân quyền không hợp lệ",
		"error.token_revoked":            "Phiên đăng nhập đã bị thu hồi, vui lòng đăng nhập lại",
		"error.auth_header_missing":      "Thiếu header Authorization",
		"error.auth_header_invalid":      "Header Authorization phải có dạng Bearer <token>",
		"error.jwt_secret_missing":       "Chưa cấu hình khóa ký token",
		"error.rate_limit_unavailable":   "Bộ giới hạn tần suất không khả dụng, vui lòng thử lại",
		"error.rate_limited":             "Quá nhiều lần thử, vui lòng thử lại sau %d giây",
		"error.authz_builtin_policy":     "Không thể thu hồi chính sách mặc định",
		"error.authz_role_invalid":       "Tên vai trò không hợp lệ",

		"order.status.pending":    "Chờ xác nhận",
		"order.status.confirmed":  "Đã xác nhận",
		"order.status.processing": "Đang chế biến",
		"order.status.delivering": "Đang giao",
		"order.status.completed":  "Hoàn thành",
		"order.status.cancelled":  "Đã hủy",

		"email.otp.subject":                  "Mã đặt lại mật khẩu",
		"email.otp.body":                     "Mã xác thực của bạn là: %s\n\nMã có hiệu lực trong %d phút. Không chia sẻ mã này.",
		"email.welcome.subject":              "Chào mừng đến với FoodHub",
		"email.welcome.body":                 "Xin chào %s,\n\nTài khoản của bạn đã được tạo. Chúc bạn ngon miệng!",
		"email.welcome.body_restaurant":      "Xin chào %s,\n\nTài khoản nhà hàng đã được tạo. Hãy bắt đầu thêm món vào thực đơn.",
		"email.order_status.subject":         "Cập nhật đơn hàng: %s",
		"email.order_status.body":            "Đơn hàng %s tại %s hiện ở trạng thái %s.\nTổng tiền: %s",
		"email.order_status.body_cancelled":  "Đơn hàng %s tại %s đã bị hủy.\nTổng tiền: %s",
		"email.order_status.body_restaurant": "Đơn hàng mới %s tại %s.\nTổng tiền: %s",
	},
}
