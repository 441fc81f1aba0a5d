package controller

import (
	"errors"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// List godoc
// @Summary 课程列表
// @Tags 课程管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	courses, err := c.CourseService.List(tenant.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// Get godoc
// @Summary 课程详情
// @Tags 课程管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/t/{tenantSlug}/admin/courses/{courseId} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	course, err := c.CourseService.Get(ctx.Param("courseId"), tenant.ID)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Create godoc
// @Summary 创建课程
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   body body service.CourseRequest true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	course, err := c.CourseService.Create(util.GetUserFromContext(ctx), tenant.ID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary 更新课程
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Param   body body service.CourseRequest true "课程信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/t/{tenantSlug}/admin/courses/{courseId} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	course, err := c.CourseService.Update(util.GetUserFromContext(ctx), ctx.Param("courseId"), tenant.ID, &req)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary 删除课程
// @Description 连同课程下的模块与内容项一并删除
// @Tags 课程管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/t/{tenantSlug}/admin/courses/{courseId} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	err := c.CourseService.Delete(util.GetUserFromContext(ctx), ctx.Param("courseId"), tenant.ID)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func respondCourseError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrCourseNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
