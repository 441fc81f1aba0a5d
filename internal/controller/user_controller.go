package controller

import (
	"errors"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// List godoc
// @Summary 租户成员列表
// @Tags 员工管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/employees [get]
func (c *UserController) List(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	profiles, err := c.UserService.List(tenant.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// Search godoc
// @Summary 按姓名或邮箱查找成员
// @Tags 员工管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   q query string true "关键字"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/employees/search [get]
func (c *UserController) Search(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	profiles, err := c.UserService.Search(tenant.ID, ctx.Query("q"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}

// Create godoc
// @Summary 创建员工账号
// @Tags 员工管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   body body service.CreateEmployeeRequest true "员工信息"
// @Success 201 {object} util.Response
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/t/{tenantSlug}/admin/employees [post]
func (c *UserController) Create(ctx *gin.Context) {
	var req service.CreateEmployeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	profile, err := c.UserService.Create(util.GetUserFromContext(ctx), tenant.ID, &req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, profile)
}

// Deactivate godoc
// @Summary 停用员工账号
// @Description 停用后无法登录，数据保留
// @Tags 员工管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   employeeId path string true "员工ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "员工不存在"
// @Router /api/t/{tenantSlug}/admin/employees/{employeeId} [delete]
func (c *UserController) Deactivate(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	err := c.UserService.Deactivate(util.GetUserFromContext(ctx), tenant.ID, ctx.Param("employeeId"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deactivated": true})
}
