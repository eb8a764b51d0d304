//go:build dev

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// DevTierOverride 仅 dev 构建生效：从请求头读取权益档位覆盖，用于本地验证付费墙
func DevTierOverride(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader("X-Dev-Tier"))
}
