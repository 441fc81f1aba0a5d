package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// FindByID 按租户定位课程，防止跨租户 id 撞库
func (r *CourseRepository) FindByID(id, tenantID string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) ListByTenant(tenantID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("tenant_id = ?", tenantID).Order("title asc").Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Delete 级联删除课程及其下属模块和内容条目，一个事务完成
func (r *CourseRepository) Delete(id, tenantID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []string
		if err := tx.Model(&model.CourseModule{}).
			Where("course_id = ? AND tenant_id = ?", id, tenantID).
			Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ? AND tenant_id = ?", moduleIDs, tenantID).
				Delete(&model.ContentItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ? AND tenant_id = ?", id, tenantID).
				Delete(&model.CourseModule{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ? AND tenant_id = ?", id, tenantID).
			Delete(&model.Course{}).Error
	})
}
