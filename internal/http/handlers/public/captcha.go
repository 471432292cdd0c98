package public

import (
	"errors"
	"strings"

	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CaptchaPayloadRequest 注册、登录、忘记密码共用的验证码字段
// 场景未启用时可为空
type CaptchaPayloadRequest struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil {
		respondError(c, response.CodeInternal, "error.captcha_config_invalid", service.ErrCaptchaConfigInvalid)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	switch {
	case errors.Is(err, service.ErrCaptchaConfigInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_config_invalid", nil)
		return
	case err != nil:
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.Success(c, gin.H{
		"provider":     h.CaptchaService.Provider(),
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// verifyCaptcha 返回 false 时响应已写出
func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	err := h.CaptchaService.Verify(scene, service.CaptchaVerifyPayload{
		CaptchaID:   strings.TrimSpace(payload.CaptchaID),
		CaptchaCode: strings.TrimSpace(payload.CaptchaCode),
	})
	if err == nil {
		return true
	}
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_config_invalid")
	return false
}
