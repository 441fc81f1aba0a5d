package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	assignmentRepo *repository.AssignmentRepository
	profileRepo    *repository.ProfileRepository
	courseRepo     *repository.CourseRepository
	auditService   *AuditService
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	profileRepo *repository.ProfileRepository,
	courseRepo *repository.CourseRepository,
	auditService *AuditService,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		profileRepo:    profileRepo,
		courseRepo:     courseRepo,
		auditService:   auditService,
	}
}

type SaveAssignmentsRequest struct {
	CourseIDs []string `json:"courseIds"`
}

// CourseIDsFor 某员工当前被授权的课程集合
func (s *AssignmentService) CourseIDsFor(employeeID, tenantID string) ([]string, error) {
	if _, err := s.profileRepo.FindByID(employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.assignmentRepo.CourseIDsFor(employeeID, tenantID)
}

// Save 整体覆盖员工授权集合，差量写库，只对实际变化项生效
func (s *AssignmentService) Save(actor *util.Claims, employeeID, tenantID string, courseIDs []string) (added, removed []string, err error) {
	if _, err := s.profileRepo.FindByID(employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}

	// 目标集合里的课程必须都在本租户下
	for _, courseID := range courseIDs {
		if _, err := s.courseRepo.FindByID(courseID, tenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, util.ErrCourseNotFound
			}
			return nil, nil, err
		}
	}

	added, removed, err = s.assignmentRepo.Replace(employeeID, tenantID, courseIDs)
	if err != nil {
		return nil, nil, err
	}

	if len(added) > 0 || len(removed) > 0 {
		s.auditService.Log(actor, tenantID, model.AuditAssignmentUpdate, "assignment", employeeID, map[string]interface{}{
			"added":   added,
			"removed": removed,
		})
	}
	return added, removed, nil
}
