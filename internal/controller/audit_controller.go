package controller

import (
	"strconv"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	AuditService *service.AuditService
}

func NewAuditController(auditService *service.AuditService) *AuditController {
	return &AuditController{AuditService: auditService}
}

// List godoc
// @Summary 审计日志
// @Description 按时间倒序分页
// @Tags 审计
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.PageResponse
// @Router /api/t/{tenantSlug}/admin/audit-logs [get]
func (c *AuditController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	tenant := middleware.GetTenant(ctx)
	resp, err := c.AuditService.List(tenant.ID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
