package controller

import (
	"errors"
	"strings"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// List godoc
// @Summary 模块下的内容项列表
// @Tags 内容管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   moduleId path string true "模块ID"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/admin/modules/{moduleId}/contents [get]
func (c *ContentController) List(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	items, err := c.ContentService.List(ctx.Param("moduleId"), tenant.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Create godoc
// @Summary 创建外链内容项
// @Description position 指定插入位置，0或缺省追加到末尾
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   moduleId path string true "模块ID"
// @Param   body body service.ContentRequest true "内容信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "内容类型无效"
// @Failure 404 {object} util.Response "模块不存在"
// @Router /api/t/{tenantSlug}/admin/modules/{moduleId}/contents [post]
func (c *ContentController) Create(ctx *gin.Context) {
	var req service.ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	item, err := c.ContentService.Create(util.GetUserFromContext(ctx), ctx.Param("moduleId"), tenant.ID, &req)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// Upload godoc
// @Summary 上传文件内容项
// @Description multipart 上传，按文件头嗅探校验类型，视频自动探测时长
// @Tags 内容管理
// @Accept  multipart/form-data
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   moduleId path string true "模块ID"
// @Param   file formData file true "文件"
// @Param   title formData string true "标题"
// @Param   type formData string true "内容类型"
// @Param   position formData int false "插入位置"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "文件类型不允许"
// @Router /api/t/{tenantSlug}/admin/modules/{moduleId}/contents/upload [post]
func (c *ContentController) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	position := 0
	if raw := ctx.PostForm("position"); raw != "" {
		position, err = util.ParsePosition(raw)
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	req := service.ContentRequest{
		Title:    ctx.PostForm("title"),
		Type:     ctx.PostForm("type"),
		Position: position,
	}
	if req.Title == "" {
		req.Title = header.Filename
	}

	tenant := middleware.GetTenant(ctx)
	item, err := c.ContentService.Upload(ctx.Request.Context(), util.GetUserFromContext(ctx),
		ctx.Param("moduleId"), tenant.ID, &req, header)
	if err != nil {
		if strings.Contains(err.Error(), "invalid file type") {
			util.BadRequest(ctx, err.Error())
			return
		}
		respondContentError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// Update godoc
// @Summary 更新内容项
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   contentId path string true "内容ID"
// @Param   body body service.ContentRequest true "内容信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/t/{tenantSlug}/admin/contents/{contentId} [put]
func (c *ContentController) Update(ctx *gin.Context) {
	var req service.ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	item, err := c.ContentService.Update(util.GetUserFromContext(ctx), ctx.Param("contentId"), tenant.ID, &req)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// Move godoc
// @Summary 调整内容项位置
// @Tags 内容管理
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   contentId path string true "内容ID"
// @Param   body body service.MoveRequest true "目标位置"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "位置无效"
// @Router /api/t/{tenantSlug}/admin/contents/{contentId}/position [patch]
func (c *ContentController) Move(ctx *gin.Context) {
	var req service.MoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	item, err := c.ContentService.Move(util.GetUserFromContext(ctx), ctx.Param("contentId"), tenant.ID, req.Position)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// Delete godoc
// @Summary 删除内容项
// @Tags 内容管理
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   contentId path string true "内容ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/t/{tenantSlug}/admin/contents/{contentId} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	err := c.ContentService.Delete(ctx.Request.Context(), util.GetUserFromContext(ctx), ctx.Param("contentId"), tenant.ID)
	if err != nil {
		respondContentError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

func respondContentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrContentNotFound), errors.Is(err, util.ErrModuleNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidPosition), errors.Is(err, util.ErrInvalidContentType),
		errors.Is(err, util.ErrInvalidContentSource):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
