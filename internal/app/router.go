package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由（无需登录）
	a.registerPublicRoutes(router, c)

	// 2. 内容代理（登录即可，授权校验在服务内按课程判定）
	a.registerContentRoutes(router, c, cfg)

	// 3. 租户内路由：先登录，再解析租户并校验成员资格
	tenantGroup := router.Group("/api/t/:tenantSlug")
	tenantGroup.Use(middleware.AuthMiddleware(cfg), middleware.TenantMiddleware(repos.tenant))
	{
		a.registerAdminRoutes(tenantGroup, c)
		a.registerEmployeeRoutes(tenantGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerContentRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	content := router.Group("/api")
	content.Use(middleware.AuthMiddleware(cfg))
	{
		content.GET("/content/stream", c.stream.Stream)
		content.GET("/content/:contentId", c.stream.SignedURL)
		content.GET("/proxy/image", c.stream.ProxyImage)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/courses", c.course.List)
		admin.POST("/courses", c.course.Create)
		admin.GET("/courses/:courseId", c.course.Get)
		admin.PUT("/courses/:courseId", c.course.Update)
		admin.DELETE("/courses/:courseId", c.course.Delete)

		admin.GET("/courses/:courseId/modules", c.module.List)
		admin.POST("/courses/:courseId/modules", c.module.Create)
		admin.PUT("/modules/:moduleId", c.module.Update)
		admin.PATCH("/modules/:moduleId/position", c.module.Move)
		admin.DELETE("/modules/:moduleId", c.module.Delete)

		admin.GET("/modules/:moduleId/contents", c.content.List)
		admin.POST("/modules/:moduleId/contents", c.content.Create)
		admin.POST("/modules/:moduleId/contents/upload", c.content.Upload)
		admin.PUT("/contents/:contentId", c.content.Update)
		admin.PATCH("/contents/:contentId/position", c.content.Move)
		admin.DELETE("/contents/:contentId", c.content.Delete)

		admin.GET("/employees", c.user.List)
		admin.POST("/employees", c.user.Create)
		admin.GET("/employees/search", c.user.Search)
		admin.DELETE("/employees/:employeeId", c.user.Deactivate)

		admin.GET("/employees/:employeeId/assignments", c.assignment.Get)
		admin.PUT("/employees/:employeeId/assignments", c.assignment.Save)

		admin.GET("/cohorts", c.cohort.List)
		admin.POST("/cohorts", c.cohort.Create)
		admin.GET("/cohorts/:cohortId", c.cohort.Get)
		admin.POST("/cohorts/:cohortId/members", c.cohort.AddMember)
		admin.POST("/cohorts/:cohortId/courses", c.cohort.AssignCourse)

		admin.GET("/progress/courses/:courseId", c.progress.ByCourse)
		admin.GET("/progress/employees/:employeeId", c.progress.ByEmployee)

		admin.GET("/audit-logs", c.audit.List)
	}
}

func (a *App) registerEmployeeRoutes(rg *gin.RouterGroup, c *controllers) {
	employee := rg.Group("")
	employee.Use(middleware.RoleMiddleware(model.Employee))
	{
		employee.GET("/employee/courses", c.learn.MyCourses)
		employee.GET("/learn/courses/:courseId", c.learn.CourseTree)
		employee.GET("/learn/courses/:courseId/items/:itemId", c.learn.Lecture)
		employee.POST("/learn/progress/:itemId", c.learn.SetProgress)
	}
}
