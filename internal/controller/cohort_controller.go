package controller

import (
	"errors"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CohortController struct {
	CohortService *service.CohortService
}

func NewCohortController(cohortService *service.CohortService) *CohortController {
	return &CohortController{CohortService: cohortService}
}

// Create godoc
// @Summary 新建员工分组
// @Tags 分组管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   body body service.CohortRequest true "分组信息"
// @Success 201 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/cohorts [post]
func (c *CohortController) Create(ctx *gin.Context) {
	var req service.CohortRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	cohort, err := c.CohortService.Create(util.GetUserFromContext(ctx), tenant.ID, &req)
	if err != nil {
		respondCohortError(ctx, err)
		return
	}
	util.Created(ctx, cohort)
}

// List godoc
// @Summary 分组列表
// @Tags 分组管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/cohorts [get]
func (c *CohortController) List(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	cohorts, err := c.CohortService.List(tenant.ID)
	if err != nil {
		respondCohortError(ctx, err)
		return
	}
	util.Success(ctx, cohorts)
}

// Get godoc
// @Summary 分组详情
// @Description 带成员与已授权课程
// @Tags 分组管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   cohortId path string true "分组ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "分组不存在"
// @Router /api/t/{tenantSlug}/admin/cohorts/{cohortId} [get]
func (c *CohortController) Get(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	detail, err := c.CohortService.Get(ctx.Param("cohortId"), tenant.ID)
	if err != nil {
		respondCohortError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

type cohortMemberRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
}

// AddMember godoc
// @Summary 添加分组成员
// @Description 新成员立即获得分组已授权的课程
// @Tags 分组管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   cohortId path string true "分组ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "已是分组成员"
// @Failure 404 {object} util.Response "分组或员工不存在"
// @Router /api/t/{tenantSlug}/admin/cohorts/{cohortId}/members [post]
func (c *CohortController) AddMember(ctx *gin.Context) {
	var req cohortMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	err := c.CohortService.AddMember(util.GetUserFromContext(ctx),
		ctx.Param("cohortId"), tenant.ID, req.EmployeeID)
	if err != nil {
		respondCohortError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"employeeId": req.EmployeeID})
}

type cohortCourseRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

// AssignCourse godoc
// @Summary 给分组授权课程
// @Description 授权展开到分组当前所有成员
// @Tags 分组管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   cohortId path string true "分组ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "课程已授权给该分组"
// @Failure 404 {object} util.Response "分组或课程不存在"
// @Router /api/t/{tenantSlug}/admin/cohorts/{cohortId}/courses [post]
func (c *CohortController) AssignCourse(ctx *gin.Context) {
	var req cohortCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	err := c.CohortService.AssignCourse(util.GetUserFromContext(ctx),
		ctx.Param("cohortId"), tenant.ID, req.CourseID)
	if err != nil {
		respondCohortError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courseId": req.CourseID})
}

func respondCohortError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCohortNotFound), errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCohortMemberExists), errors.Is(err, util.ErrCohortCourseAssigned):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
