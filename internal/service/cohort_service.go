package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// CohortService 员工分组：建组、加成员、按组授权课程
// 按组授权落库后立刻展开成成员的个人授权，学习侧只看个人授权一条边
type CohortService struct {
	cohortRepo     *repository.CohortRepository
	assignmentRepo *repository.AssignmentRepository
	profileRepo    *repository.ProfileRepository
	courseRepo     *repository.CourseRepository
	auditService   *AuditService
}

func NewCohortService(
	cohortRepo *repository.CohortRepository,
	assignmentRepo *repository.AssignmentRepository,
	profileRepo *repository.ProfileRepository,
	courseRepo *repository.CourseRepository,
	auditService *AuditService,
) *CohortService {
	return &CohortService{
		cohortRepo:     cohortRepo,
		assignmentRepo: assignmentRepo,
		profileRepo:    profileRepo,
		courseRepo:     courseRepo,
		auditService:   auditService,
	}
}

type CohortRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CohortDetail 分组详情，带成员和已授权课程
type CohortDetail struct {
	model.Cohort
	MemberIDs []string `json:"memberIds"`
	CourseIDs []string `json:"courseIds"`
}

func (s *CohortService) Create(actor *util.Claims, tenantID string, req *CohortRequest) (*model.Cohort, error) {
	cohort := &model.Cohort{
		TenantID:    tenantID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.cohortRepo.Create(cohort); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditCohortCreate, "cohort", cohort.ID, map[string]interface{}{
		"name": cohort.Name,
	})
	return cohort, nil
}

func (s *CohortService) List(tenantID string) ([]model.Cohort, error) {
	return s.cohortRepo.List(tenantID)
}

func (s *CohortService) Get(id, tenantID string) (*CohortDetail, error) {
	cohort, err := s.cohortRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCohortNotFound
		}
		return nil, err
	}

	memberIDs, err := s.cohortRepo.MemberIDs(cohort.ID)
	if err != nil {
		return nil, err
	}
	courseIDs, err := s.cohortRepo.CourseIDs(cohort.ID)
	if err != nil {
		return nil, err
	}

	return &CohortDetail{Cohort: *cohort, MemberIDs: memberIDs, CourseIDs: courseIDs}, nil
}

// AddMember 把员工加入分组，并补授分组已绑定的所有课程
func (s *CohortService) AddMember(actor *util.Claims, cohortID, tenantID, employeeID string) error {
	cohort, err := s.cohortRepo.FindByID(cohortID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCohortNotFound
		}
		return err
	}
	if _, err := s.profileRepo.FindByID(employeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	err = s.cohortRepo.AddMember(&model.CohortMember{
		TenantID:   tenantID,
		CohortID:   cohort.ID,
		EmployeeID: employeeID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrCohortMemberExists
		}
		return err
	}

	// 新成员立即获得分组已授权的课程
	courseIDs, err := s.cohortRepo.CourseIDs(cohort.ID)
	if err != nil {
		return err
	}
	for _, courseID := range courseIDs {
		if err := s.assignmentRepo.Grant(employeeID, tenantID, courseID); err != nil {
			return err
		}
	}

	s.auditService.Log(actor, tenantID, model.AuditCohortMemberAdd, "cohort", cohort.ID, map[string]interface{}{
		"employee_id": employeeID,
	})
	return nil
}

// AssignCourse 给分组授权课程，并展开到当前所有成员
func (s *CohortService) AssignCourse(actor *util.Claims, cohortID, tenantID, courseID string) error {
	cohort, err := s.cohortRepo.FindByID(cohortID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCohortNotFound
		}
		return err
	}
	if _, err := s.courseRepo.FindByID(courseID, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	err = s.cohortRepo.AssignCourse(&model.CohortCourseAssignment{
		TenantID: tenantID,
		CohortID: cohort.ID,
		CourseID: courseID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrCohortCourseAssigned
		}
		return err
	}

	memberIDs, err := s.cohortRepo.MemberIDs(cohort.ID)
	if err != nil {
		return err
	}
	for _, employeeID := range memberIDs {
		if err := s.assignmentRepo.Grant(employeeID, tenantID, courseID); err != nil {
			return err
		}
	}

	s.auditService.Log(actor, tenantID, model.AuditCohortAssignmentCreate, "cohort", cohort.ID, map[string]interface{}{
		"course_id": courseID,
	})
	return nil
}
