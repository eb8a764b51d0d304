package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 拒绝原因（机器可读，前端据此渲染）
const (
	ReasonValidation = "validation"
	ReasonLimit      = "limit"
	ReasonError      = "error"
)

// 默认消息
const (
	msgValidation = "Invalid request body."
	msgAuth       = "Invalid or expired token."
	msgForbidden  = "Permission denied."
	msgNotFound   = "Resource not found."
	msgConflict   = "Duplicate action."
	msgServer     = "Internal server error."
)

// OK 成功响应，data 并入 {ok:true} 外层
func OK(c *gin.Context, data gin.H) {
	write(c, http.StatusOK, gin.H{"ok": true}, data)
}

// ValidationError 参数错误 400
func ValidationError(c *gin.Context, message string) {
	if message == "" {
		message = msgValidation
	}
	write(c, http.StatusBadRequest, gin.H{"ok": false, "reason": ReasonValidation, "error": message}, nil)
}

// BadRequest 普通 400（不带 reason）
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = msgValidation
	}
	write(c, http.StatusBadRequest, gin.H{"ok": false, "error": message}, nil)
}

// AuthError 认证失败 401
func AuthError(c *gin.Context, message string) {
	if message == "" {
		message = msgAuth
	}
	write(c, http.StatusUnauthorized, gin.H{"ok": false, "error": message}, nil)
}

// Forbidden 权限不足 403
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = msgForbidden
	}
	write(c, http.StatusForbidden, gin.H{"ok": false, "error": message}, nil)
}

// Paywall 权益不足 403，带 reason 供前端跳转付费墙
func Paywall(c *gin.Context, reason string) {
	write(c, http.StatusForbidden, gin.H{"ok": false, "reason": reason, "paywallRequired": true}, nil)
}

// NotFound 资源不存在 404
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = msgNotFound
	}
	write(c, http.StatusNotFound, gin.H{"ok": false, "error": message}, nil)
}

// Conflict 重复操作 409
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = msgConflict
	}
	write(c, http.StatusConflict, gin.H{"ok": false, "error": message}, nil)
}

// Limit 限频拒绝 429
func Limit(c *gin.Context, source string, daysRemaining int, message string) {
	write(c, http.StatusTooManyRequests, gin.H{
		"ok":            false,
		"reason":        ReasonLimit,
		"source":        source,
		"daysRemaining": daysRemaining,
		"error":         message,
	}, nil)
}

// TooManyRequests 进程内限流 429（无 daysRemaining 语义）
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "Too many requests."
	}
	write(c, http.StatusTooManyRequests, gin.H{"ok": false, "error": message}, nil)
}

// ServerError 服务器错误 500
func ServerError(c *gin.Context, message string) {
	if message == "" {
		message = msgServer
	}
	write(c, http.StatusInternalServerError, gin.H{"ok": false, "reason": ReasonError, "error": message}, nil)
}

func write(c *gin.Context, status int, base gin.H, extra gin.H) {
	for k, v := range extra {
		base[k] = v
	}
	c.JSON(status, base)
}
