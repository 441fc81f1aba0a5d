package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	courseRepo   *repository.CourseRepository
	auditService *AuditService
}

func NewCourseService(courseRepo *repository.CourseRepository, auditService *AuditService) *CourseService {
	return &CourseService{courseRepo: courseRepo, auditService: auditService}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Status      string `json:"status"`
}

func (s *CourseService) Create(actor *util.Claims, tenantID string, req *CourseRequest) (*model.Course, error) {
	course := &model.Course{
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Status:      model.CourseDraft,
	}
	if req.Status != "" {
		course.Status = model.CourseStatus(req.Status)
	}
	if course.Status == model.CoursePublished {
		now := time.Now()
		course.PublishedAt = &now
	}

	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditCourseCreate, "course", course.ID, map[string]interface{}{
		"title": course.Title,
	})
	return course, nil
}

func (s *CourseService) Get(id, tenantID string) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(tenantID string) ([]model.Course, error) {
	return s.courseRepo.ListByTenant(tenantID)
}

func (s *CourseService) Update(actor *util.Claims, id, tenantID string, req *CourseRequest) (*model.Course, error) {
	course, err := s.Get(id, tenantID)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.ImageURL = req.ImageURL
	if req.Status != "" {
		next := model.CourseStatus(req.Status)
		if next == model.CoursePublished && course.Status != model.CoursePublished {
			now := time.Now()
			course.PublishedAt = &now
		}
		course.Status = next
	}

	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditCourseUpdate, "course", course.ID, map[string]interface{}{
		"title": course.Title,
	})
	return course, nil
}

// Delete 级联删除课程下的模块与内容项
func (s *CourseService) Delete(actor *util.Claims, id, tenantID string) error {
	course, err := s.Get(id, tenantID)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(id, tenantID); err != nil {
		return err
	}

	s.auditService.Log(actor, tenantID, model.AuditCourseDelete, "course", id, map[string]interface{}{
		"title": course.Title,
	})
	return nil
}
