package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"pilltrack/backend/internal/scheduler"
	"pilltrack/backend/internal/service"
	"pilltrack/backend/pkg/jwt"
	"pilltrack/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetClaims 从 Gin 上下文中安全提取 JWT Claims（注销时需要 jti 与过期时间）
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}

// handleServiceError 把 Service 层业务错误映射为 HTTP 响应
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, 20001, "资源不存在")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权访问该资源")
	case errors.Is(err, service.ErrEmailTaken):
		response.UnprocessableEntity(c, 20002, "邮箱已被注册")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 10004, "邮箱或密码错误")
	case errors.Is(err, service.ErrInvalidToken):
		response.Unauthorized(c, 10002, "Token 无效或已过期")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrWeeklyNeedsDays),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrCardDataRequired),
		errors.Is(err, scheduler.ErrInvalidTime),
		errors.Is(err, scheduler.ErrWeeklyNoDays),
		errors.Is(err, scheduler.ErrInvalidWeekday),
		errors.Is(err, scheduler.ErrUnknownFrequency):
		response.UnprocessableEntity(c, 10001, err.Error())
	default:
		response.InternalError(c)
	}
}
