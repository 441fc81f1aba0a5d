package controller

import (
	"errors"

	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearnController struct {
	LearnService *service.LearnService
}

func NewLearnController(learnService *service.LearnService) *LearnController {
	return &LearnController{LearnService: learnService}
}

// MyCourses godoc
// @Summary 我的课程
// @Description 当前员工被授权的课程及完成度
// @Tags 学习
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Success 200 {object} util.Response
// @Router /api/t/{tenantSlug}/employee/courses [get]
func (c *LearnController) MyCourses(ctx *gin.Context) {
	tenant := middleware.GetTenant(ctx)
	user := util.GetUserFromContext(ctx)

	views, err := c.LearnService.AssignedCourses(user.UserID, tenant.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// CourseTree godoc
// @Summary 课程内容树
// @Description 模块与内容项按顺序组装，附带完成标记；无授权时按未找到处理
// @Tags 学习
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "课程不可用"
// @Router /api/t/{tenantSlug}/learn/courses/{courseId} [get]
func (c *LearnController) CourseTree(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	tree, err := c.LearnService.BuildCourseTree(user.UserID, ctx.Param("courseId"))
	if err != nil {
		respondLearnError(ctx, err)
		return
	}
	util.Success(ctx, tree)
}

// Lecture godoc
// @Summary 内容项详情及前后导航
// @Tags 学习
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   courseId path string true "课程ID"
// @Param   itemId path string true "内容ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "内容不可用"
// @Router /api/t/{tenantSlug}/learn/courses/{courseId}/items/{itemId} [get]
func (c *LearnController) Lecture(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	view, err := c.LearnService.GetLecture(user.UserID, ctx.Param("courseId"), ctx.Param("itemId"))
	if err != nil {
		respondLearnError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type progressRequest struct {
	Completed bool `json:"completed"`
}

// SetProgress godoc
// @Summary 标记内容项完成状态
// @Description 同一内容项重复提交幂等覆盖
// @Tags 学习
// @Accept  json
// @Produce  json
// @Param   tenantSlug path string true "租户标识"
// @Param   itemId path string true "内容ID"
// @Param   body body progressRequest true "完成状态"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "未被授权该课程"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/t/{tenantSlug}/learn/progress/{itemId} [post]
func (c *LearnController) SetProgress(ctx *gin.Context) {
	var req progressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	tenant := middleware.GetTenant(ctx)
	user := util.GetUserFromContext(ctx)

	err := c.LearnService.SetProgress(user.UserID, tenant.ID, ctx.Param("itemId"), req.Completed)
	if err != nil {
		respondLearnError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": req.Completed})
}

func respondLearnError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTreeUnavailable), errors.Is(err, util.ErrContentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotAssigned):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
