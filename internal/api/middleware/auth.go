package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/novavoice/novavoice_go_server/internal/pkg/jwt"
	"github.com/novavoice/novavoice_go_server/internal/pkg/response"
	"github.com/novavoice/novavoice_go_server/internal/repository"
)

const (
	UserIDKey = "userID"

	apiKeyHeader = "X-API-Key"
)

// Auth 认证中间件。接受两种凭证：
//   - Authorization: Bearer <JWT>（登录签发）
//   - X-API-Key: <key>（注册时分配的长期密钥）
func Auth(jwtSecret string, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader(apiKeyHeader); apiKey != "" {
			user, err := userRepo.GetByAPIKey(apiKey)
			if err != nil {
				response.AuthError(c, "无效的 API Key")
				c.Abort()
				return
			}
			c.Set(UserIDKey, user.ID)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "请提供认证信息")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "认证格式错误")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, "认证失败或已过期")
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// OptionalAuth 可选认证中间件（不强制要求登录）
func OptionalAuth(jwtSecret string, userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader(apiKeyHeader); apiKey != "" {
			if user, err := userRepo.GetByAPIKey(apiKey); err == nil {
				c.Set(UserIDKey, user.ID)
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err == nil {
			c.Set(UserIDKey, claims.UserID)
		}

		c.Next()
	}
}

// GetUserID 从上下文获取用户 ID
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}
