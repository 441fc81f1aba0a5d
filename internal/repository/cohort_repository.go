package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CohortRepository struct {
	DB *gorm.DB
}

func NewCohortRepository(db *gorm.DB) *CohortRepository {
	return &CohortRepository{DB: db}
}

func (r *CohortRepository) Create(cohort *model.Cohort) error {
	return r.DB.Create(cohort).Error
}

func (r *CohortRepository) FindByID(id, tenantID string) (*model.Cohort, error) {
	var cohort model.Cohort
	err := r.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&cohort).Error
	if err != nil {
		return nil, err
	}
	return &cohort, nil
}

func (r *CohortRepository) List(tenantID string) ([]model.Cohort, error) {
	var cohorts []model.Cohort
	err := r.DB.Where("tenant_id = ?", tenantID).
		Order("created_at asc").
		Find(&cohorts).Error
	return cohorts, err
}

// AddMember 重复添加返回 gorm.ErrDuplicatedKey
func (r *CohortRepository) AddMember(member *model.CohortMember) error {
	var count int64
	err := r.DB.Model(&model.CohortMember{}).
		Where("cohort_id = ? AND employee_id = ?", member.CohortID, member.EmployeeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return gorm.ErrDuplicatedKey
	}
	return r.DB.Create(member).Error
}

// MemberIDs 分组内的员工 id 列表
func (r *CohortRepository) MemberIDs(cohortID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.CohortMember{}).
		Where("cohort_id = ?", cohortID).
		Pluck("employee_id", &ids).Error
	return ids, err
}

// AssignCourse 重复授权返回 gorm.ErrDuplicatedKey
func (r *CohortRepository) AssignCourse(assignment *model.CohortCourseAssignment) error {
	var count int64
	err := r.DB.Model(&model.CohortCourseAssignment{}).
		Where("cohort_id = ? AND course_id = ?", assignment.CohortID, assignment.CourseID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return gorm.ErrDuplicatedKey
	}
	return r.DB.Create(assignment).Error
}

// CourseIDs 分组被授权的课程 id 列表
func (r *CohortRepository) CourseIDs(cohortID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.CohortCourseAssignment{}).
		Where("cohort_id = ?", cohortID).
		Pluck("course_id", &ids).Error
	return ids, err
}
