package controller

import (
	"errors"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ProgressController 管理端的完成度汇总视图
type ProgressController struct {
	LearnService *service.LearnService
}

func NewProgressController(learnService *service.LearnService) *ProgressController {
	return &ProgressController{LearnService: learnService}
}

// ByCourse godoc
// @Summary 课程维度完成度汇总
// @Description 某课程所有被授权员工的完成情况
// @Tags 进度追踪
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/t/{tenantSlug}/admin/progress/courses/{courseId} [get]
func (c *ProgressController) ByCourse(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	views, err := c.LearnService.CourseProgress(ctx.Param("courseId"), tenant.ID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, views)
}

// ByEmployee godoc
// @Summary 员工维度完成度汇总
// @Description 某员工在各授权课程的完成情况
// @Tags 进度追踪
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   employeeId path string true "员工ID"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/progress/employees/{employeeId} [get]
func (c *ProgressController) ByEmployee(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	views, err := c.LearnService.EmployeeProgress(ctx.Param("employeeId"), tenant.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}
