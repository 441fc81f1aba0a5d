package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type ModuleService struct {
	moduleRepo   *repository.ModuleRepository
	courseRepo   *repository.CourseRepository
	auditService *AuditService
}

func NewModuleService(
	moduleRepo *repository.ModuleRepository,
	courseRepo *repository.CourseRepository,
	auditService *AuditService,
) *ModuleService {
	return &ModuleService{moduleRepo: moduleRepo, courseRepo: courseRepo, auditService: auditService}
}

type ModuleRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	// Position 为插入位置，0或缺省表示追加到末尾
	Position int `json:"position"`
}

type MoveRequest struct {
	Position int `json:"position" binding:"required"`
}

// ModuleView 模块加内容项数量
type ModuleView struct {
	model.CourseModule
	ContentCount int64 `json:"contentCount"`
}

// Create 在课程下插入模块，Position 指定时顶开后续兄弟
func (s *ModuleService) Create(actor *util.Claims, courseID, tenantID string, req *ModuleRequest) (*model.CourseModule, error) {
	if _, err := s.courseRepo.FindByID(courseID, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if req.Position < 0 {
		return nil, util.ErrInvalidPosition
	}

	module := &model.CourseModule{
		TenantID:    tenantID,
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.moduleRepo.CreateAt(module, req.Position); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditModuleCreate, "module", module.ID, map[string]interface{}{
		"title":     module.Title,
		"course_id": courseID,
	})
	return module, nil
}

func (s *ModuleService) Get(id, tenantID string) (*model.CourseModule, error) {
	module, err := s.moduleRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

// List 课程下模块，按排序规则返回并带内容项数量
func (s *ModuleService) List(courseID, tenantID string) ([]ModuleView, error) {
	modules, err := s.moduleRepo.ListByCourse(courseID, tenantID)
	if err != nil {
		return nil, err
	}

	views := make([]ModuleView, 0, len(modules))
	for _, m := range modules {
		count, err := s.moduleRepo.CountContent(m.ID, tenantID)
		if err != nil {
			return nil, err
		}
		views = append(views, ModuleView{CourseModule: m, ContentCount: count})
	}
	return views, nil
}

func (s *ModuleService) Update(actor *util.Claims, id, tenantID string, req *ModuleRequest) (*model.CourseModule, error) {
	module, err := s.Get(id, tenantID)
	if err != nil {
		return nil, err
	}

	module.Title = req.Title
	module.Description = req.Description
	if err := s.moduleRepo.Update(module); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditModuleUpdate, "module", module.ID, map[string]interface{}{
		"title": module.Title,
	})
	return module, nil
}

// Move 调整模块在课程内的位置
func (s *ModuleService) Move(actor *util.Claims, id, tenantID string, position int) (*model.CourseModule, error) {
	if position < 1 {
		return nil, util.ErrInvalidPosition
	}

	module, err := s.Get(id, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.moduleRepo.Move(id, tenantID, position); err != nil {
		return nil, err
	}
	module.SortOrder = position

	s.auditService.Log(actor, tenantID, model.AuditModuleUpdate, "module", id, map[string]interface{}{
		"moved_to": position,
	})
	return module, nil
}

// Delete 连带删除模块下的内容项，不回填兄弟的 sort_order
func (s *ModuleService) Delete(actor *util.Claims, id, tenantID string) error {
	module, err := s.Get(id, tenantID)
	if err != nil {
		return err
	}

	if err := s.moduleRepo.Delete(id, tenantID); err != nil {
		return err
	}

	s.auditService.Log(actor, tenantID, model.AuditModuleDelete, "module", id, map[string]interface{}{
		"title": module.Title,
	})
	return nil
}
