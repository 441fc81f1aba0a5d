package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) FindByID(id, tenantID string) (*model.CourseModule, error) {
	var module model.CourseModule
	err := r.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// ListByCourse 排序规则：显式 sort_order 优先，相同时按创建时间兜底
func (r *ModuleRepository) ListByCourse(courseID, tenantID string) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ? AND tenant_id = ?", courseID, tenantID).
		Order("sort_order asc, created_at asc").
		Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

// CreateAt 在指定位置插入模块：占位者及后继整体后移后落位，同一事务
func (r *ModuleRepository) CreateAt(module *model.CourseModule, position int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		pos, err := insertPosition(tx, &model.CourseModule{}, "course_id", module.CourseID, module.TenantID, position)
		if err != nil {
			return err
		}
		module.SortOrder = pos
		return tx.Create(module).Error
	})
}

// Move 把模块挪到新位置，邻居平移与目标落位在同一事务内
func (r *ModuleRepository) Move(id, tenantID string, newOrder int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var module model.CourseModule
		if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&module).Error; err != nil {
			return err
		}

		if err := movePosition(tx, &model.CourseModule{}, "course_id", module.CourseID, tenantID, module.SortOrder, newOrder); err != nil {
			return err
		}

		return tx.Model(&model.CourseModule{}).Where("id = ?", id).
			UpdateColumn("sort_order", newOrder).Error
	})
}

func (r *ModuleRepository) Update(module *model.CourseModule) error {
	return r.DB.Save(module).Error
}

// Delete 连同模块下的内容条目一起删，不压缩剩余 sort_order
func (r *ModuleRepository) Delete(id, tenantID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ? AND tenant_id = ?", id, tenantID).
			Delete(&model.ContentItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND tenant_id = ?", id, tenantID).
			Delete(&model.CourseModule{}).Error
	})
}

func (r *ModuleRepository) CountContent(moduleID, tenantID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ContentItem{}).
		Where("module_id = ? AND tenant_id = ?", moduleID, tenantID).
		Count(&count).Error
	return count, err
}
