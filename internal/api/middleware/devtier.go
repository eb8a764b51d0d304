//go:build !dev

package middleware

import "github.com/gin-gonic/gin"

// DevTierOverride 生产构建下不存在任何覆盖入口
func DevTierOverride(c *gin.Context) string {
	return ""
}
