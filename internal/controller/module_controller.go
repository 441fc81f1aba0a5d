package controller

import (
	"errors"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

// List godoc
// @Summary 课程下的模块列表
// @Description 按排序返回，附带每个模块的内容项数量
// @Tags 模块管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/courses/{courseId}/modules [get]
func (c *ModuleController) List(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	modules, err := c.ModuleService.List(ctx.Param("courseId"), tenant.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, modules)
}

// Create godoc
// @Summary 创建模块
// @Description position 指定插入位置，0或缺省追加到末尾
// @Tags 模块管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Param   body body service.ModuleRequest true "模块信息"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/t/{tenantSlug}/admin/courses/{courseId}/modules [post]
func (c *ModuleController) Create(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	module, err := c.ModuleService.Create(util.GetUserFromContext(ctx), ctx.Param("courseId"), tenant.ID, &req)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// Update godoc
// @Summary 更新模块
// @Tags 模块管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   moduleId path string true "模块ID"
// @Param   body body service.ModuleRequest true "模块信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/t/{tenantSlug}/admin/modules/{moduleId} [put]
func (c *ModuleController) Update(ctx *gin.Context) {
	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	module, err := c.ModuleService.Update(util.GetUserFromContext(ctx), ctx.Param("moduleId"), tenant.ID, &req)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// Move godoc
// @Summary 调整模块位置
// @Tags 模块管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   moduleId path string true "模块ID"
// @Param   body body service.MoveRequest true "目标位置"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "位置无效"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/t/{tenantSlug}/admin/modules/{moduleId}/position [patch]
func (c *ModuleController) Move(ctx *gin.Context) {
	var req service.MoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	module, err := c.ModuleService.Move(util.GetUserFromContext(ctx), ctx.Param("moduleId"), tenant.ID, req.Position)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// Delete godoc
// @Summary 删除模块
// @Description 连同模块下的内容项一并删除
// @Tags 模块管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   moduleId path string true "模块ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/t/{tenantSlug}/admin/modules/{moduleId} [delete]
func (c *ModuleController) Delete(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	err := c.ModuleService.Delete(util.GetUserFromContext(ctx), ctx.Param("moduleId"), tenant.ID)
	if err != nil {
		respondModuleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func respondModuleError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrModuleNotFound), errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidPosition):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
