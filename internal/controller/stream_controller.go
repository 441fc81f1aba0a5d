package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

// StreamController 内容代理端点，负责把存储或外部源的字节转发给前端
type StreamController struct {
	StreamService *service.StreamService
}

func NewStreamController(streamService *service.StreamService) *StreamController {
	return &StreamController{StreamService: streamService}
}

// Stream godoc
// @Summary 内容字节流
// @Description 校验授权后转发内容字节，浏览器内联展示
// @Tags 内容代理
// @Produce  octet-stream
// @Param   contentItemId query string true "内容ID"
// @Success 200 {file} binary
// @Failure 400 {object} util.Response "缺少内容ID"
// @Failure 401 {object} util.Response "未登录"
// @Failure 403 {object} util.Response "未被授权该课程"
// @Failure 404 {object} util.Response "内容或文件不存在"
// @Failure 502 {object} util.Response "外部源拉取失败"
// @Router /api/content/stream [get]
func (c *StreamController) Stream(ctx *gin.Context) {
	contentItemID := ctx.Query("contentItemId")
	if contentItemID == "" {
		util.BadRequest(ctx, "contentItemId is required")
		return
	}

	viewer := util.GetUserFromContext(ctx)
	if viewer == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.StreamService.Stream(ctx.Request.Context(), viewer, contentItemID)
	if err != nil {
		respondStreamError(ctx, err)
		return
	}
	defer result.Body.Close()

	ctx.Header("Content-Type", result.ContentType)
	ctx.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", result.FileName))
	if result.ContentLength > 0 {
		ctx.Header("Content-Length", fmt.Sprintf("%d", result.ContentLength))
	}

	n, err := io.Copy(ctx.Writer, result.Body)
	monitoring.ProxyBytes.WithLabelValues(result.Source).Add(float64(n))
	if err != nil {
		// 响应头已发出，只能中断连接
		ctx.Abort()
	}
}

// SignedURL godoc
// @Summary 存储内容的签名地址
// @Description 仅存储型内容可用，外链内容返回400
// @Tags 内容代理
// @Produce  json
// @Param   contentId path string true "内容ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "外链内容不走签名"
// @Failure 404 {object} util.Response "内容或文件不存在"
// @Router /api/content/{contentId} [get]
func (c *StreamController) SignedURL(ctx *gin.Context) {
	viewer := util.GetUserFromContext(ctx)
	if viewer == nil {
		util.Unauthorized(ctx)
		return
	}

	signed, err := c.StreamService.SignedURL(ctx.Request.Context(), viewer, ctx.Param("contentId"))
	if err != nil {
		respondStreamError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, signed)
}

// ProxyImage godoc
// @Summary 图片透传
// @Description 按 driveId 或 url 拉取图片并转发
// @Tags 内容代理
// @Produce  octet-stream
// @Param   driveId query string false "Google Drive 文件ID"
// @Param   url query string false "图片地址"
// @Success 200 {file} binary
// @Failure 400 {object} util.Response "缺少参数"
// @Failure 502 {object} util.Response "拉取失败"
// @Router /api/proxy/image [get]
func (c *StreamController) ProxyImage(ctx *gin.Context) {
	driveID := ctx.Query("driveId")
	rawURL := ctx.Query("url")
	if driveID == "" && rawURL == "" {
		util.BadRequest(ctx, "driveId or url is required")
		return
	}

	result, err := c.StreamService.ProxyImage(ctx.Request.Context(), driveID, rawURL)
	if err != nil {
		respondStreamError(ctx, err)
		return
	}
	defer result.Body.Close()

	ctx.Header("Content-Type", result.ContentType)
	n, _ := io.Copy(ctx.Writer, result.Body)
	monitoring.ProxyBytes.WithLabelValues(result.Source).Add(float64(n))
}

func respondStreamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrContentNotFound), errors.Is(err, util.ErrStorageObjectGone):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotAssigned):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrNoContentSource), errors.Is(err, util.ErrNotProxied):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrUpstreamFetch):
		util.BadGateway(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
