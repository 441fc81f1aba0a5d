package controller

import (
	"errors"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// Get godoc
// @Summary 员工的授权课程集合
// @Tags 授权管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   employeeId path string true "员工ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "员工不存在"
// @Router /api/t/{tenantSlug}/admin/employees/{employeeId}/assignments [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	courseIDs, err := c.AssignmentService.CourseIDsFor(ctx.Param("employeeId"), tenant.ID)
	if err != nil {
		respondAssignmentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courseIds": courseIDs})
}

// Save godoc
// @Summary 保存员工的授权课程集合
// @Description 整体覆盖，服务端做差量增删
// @Tags 授权管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   employeeId path string true "员工ID"
// @Param   body body service.SaveAssignmentsRequest true "目标课程集合"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "员工或课程不存在"
// @Router /api/t/{tenantSlug}/admin/employees/{employeeId}/assignments [put]
func (c *AssignmentController) Save(ctx *gin.Context) {
	var req service.SaveAssignmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	added, removed, err := c.AssignmentService.Save(util.GetUserFromContext(ctx),
		ctx.Param("employeeId"), tenant.ID, req.CourseIDs)
	if err != nil {
		respondAssignmentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"added": added, "removed": removed})
}

func respondAssignmentError(ctx *gin.Context, err error) {
	if errors.Is(err, util.ErrUserNotFound) || errors.Is(err, util.ErrCourseNotFound) {
		util.NotFound(ctx)
		return
	}
	util.LogInternalError(ctx, err)
}
