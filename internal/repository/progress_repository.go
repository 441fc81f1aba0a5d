package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert 按 (employee_id, content_item_id) 冲突更新完成状态，记录只翻转不删除
func (r *ProgressRepository) Upsert(employeeID, contentItemID, tenantID string, completed bool) error {
	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	progress := model.ContentProgress{
		TenantID:      tenantID,
		EmployeeID:    employeeID,
		ContentItemID: contentItemID,
		Completed:     completed,
		CompletedAt:   completedAt,
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "content_item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":    completed,
			"completed_at": completedAt,
			"updated_at":   time.Now(),
		}),
	}).Create(&progress).Error
}

// CompletionMap 查员工对一组内容的完成状态，缺省视为未完成
func (r *ProgressRepository) CompletionMap(employeeID string, contentItemIDs []string) (map[string]bool, error) {
	statusMap := make(map[string]bool)
	if len(contentItemIDs) == 0 {
		return statusMap, nil
	}

	var rows []model.ContentProgress
	err := r.DB.Where("employee_id = ? AND content_item_id IN ?", employeeID, contentItemIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		statusMap[row.ContentItemID] = row.Completed
	}
	return statusMap, nil
}

// CountCompleted 员工在一组内容里的已完成条数
func (r *ProgressRepository) CountCompleted(employeeID string, contentItemIDs []string) (int64, error) {
	if len(contentItemIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.ContentProgress{}).
		Where("employee_id = ? AND completed = ? AND content_item_id IN ?", employeeID, true, contentItemIDs).
		Count(&count).Error
	return count, err
}
