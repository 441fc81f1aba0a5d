package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ContentItemRepository struct {
	DB *gorm.DB
}

func NewContentItemRepository(db *gorm.DB) *ContentItemRepository {
	return &ContentItemRepository{DB: db}
}

func (r *ContentItemRepository) FindByID(id string) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.DB.First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentItemRepository) FindByIDScoped(id, tenantID string) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.DB.Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentItemRepository) ListByModule(moduleID, tenantID string) ([]model.ContentItem, error) {
	var items []model.ContentItem
	err := r.DB.Where("module_id = ? AND tenant_id = ?", moduleID, tenantID).
		Order("sort_order asc, created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListByModuleIDs 按模块 id 集合批量取内容，树构建用，避免逐模块查询
func (r *ContentItemRepository) ListByModuleIDs(moduleIDs []string, tenantID string) ([]model.ContentItem, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	var items []model.ContentItem
	err := r.DB.Where("module_id IN ? AND tenant_id = ?", moduleIDs, tenantID).
		Order("sort_order asc, created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CreateAt position 为 0 时追加到末尾，否则按 insert-before 语义插入
func (r *ContentItemRepository) CreateAt(item *model.ContentItem, position int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		pos, err := insertPosition(tx, &model.ContentItem{}, "module_id", item.ModuleID, item.TenantID, position)
		if err != nil {
			return err
		}
		item.SortOrder = pos
		return tx.Create(item).Error
	})
}

func (r *ContentItemRepository) Move(id, tenantID string, newOrder int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var item model.ContentItem
		if err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(&item).Error; err != nil {
			return err
		}

		if err := movePosition(tx, &model.ContentItem{}, "module_id", item.ModuleID, tenantID, item.SortOrder, newOrder); err != nil {
			return err
		}

		return tx.Model(&model.ContentItem{}).Where("id = ?", id).
			UpdateColumn("sort_order", newOrder).Error
	})
}

func (r *ContentItemRepository) Update(item *model.ContentItem) error {
	return r.DB.Save(item).Error
}

func (r *ContentItemRepository) Delete(id, tenantID string) error {
	return r.DB.Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&model.ContentItem{}).Error
}
