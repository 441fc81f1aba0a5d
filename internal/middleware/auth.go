package middleware

import (
	"strings"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		// 内容流在 <video> 标签里无法带请求头，允许 query 传 token
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			// 管理员直接放行
			if string(user.Role) == string(model.Admin) {
				hasRole = true
				break
			}
			if string(user.Role) == string(role) {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// TenantMiddleware 把路径里的租户 slug 解析成租户并校验成员资格
// slug 不存在与非成员统一按未找到处理，不区分两种失败
func TenantMiddleware(tenantRepo *repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		slug := c.Param("tenantSlug")
		if slug == "" {
			util.NotFound(c)
			c.Abort()
			return
		}

		tenant, err := tenantRepo.FindBySlug(slug)
		if err != nil {
			util.NotFound(c)
			c.Abort()
			return
		}

		membership, err := tenantRepo.FindMembership(tenant.ID, user.UserID)
		if err != nil {
			util.NotFound(c)
			c.Abort()
			return
		}

		c.Set("tenant", tenant)
		c.Set("membership", membership)
		c.Next()
	}
}

// GetTenant 取 TenantMiddleware 放进上下文的租户
func GetTenant(c *gin.Context) *model.Tenant {
	v, exists := c.Get("tenant")
	if !exists {
		return nil
	}
	tenant, ok := v.(*model.Tenant)
	if !ok {
		return nil
	}
	return tenant
}
