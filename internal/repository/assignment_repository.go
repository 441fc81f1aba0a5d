package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// Find 查员工对课程的授权，不存在返回 gorm.ErrRecordNotFound
func (r *AssignmentRepository) Find(employeeID, courseID string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CourseIDsFor 某员工在某租户下被授权的课程 id 列表
func (r *AssignmentRepository) CourseIDsFor(employeeID, tenantID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Assignment{}).
		Where("employee_id = ? AND tenant_id = ?", employeeID, tenantID).
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// EmployeeIDsFor 被授权到某课程的员工 id 列表
func (r *AssignmentRepository) EmployeeIDsFor(courseID, tenantID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Assignment{}).
		Where("course_id = ? AND tenant_id = ?", courseID, tenantID).
		Pluck("employee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Grant 给员工追加一条课程授权，已存在时不重复写
func (r *AssignmentRepository) Grant(employeeID, tenantID, courseID string) error {
	var assignment model.Assignment
	return r.DB.Where("employee_id = ? AND course_id = ?", employeeID, courseID).
		Attrs(model.Assignment{
			TenantID:   tenantID,
			EmployeeID: employeeID,
			CourseID:   courseID,
		}).
		FirstOrCreate(&assignment).Error
}

// Replace 把员工的授权课程集合改成 courseIDs：差量增删，一个事务
func (r *AssignmentRepository) Replace(employeeID, tenantID string, courseIDs []string) (added, removed []string, err error) {
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var current []string
		if err := tx.Model(&model.Assignment{}).
			Where("employee_id = ? AND tenant_id = ?", employeeID, tenantID).
			Pluck("course_id", &current).Error; err != nil {
			return err
		}

		currentSet := make(map[string]bool, len(current))
		for _, id := range current {
			currentSet[id] = true
		}
		desiredSet := make(map[string]bool, len(courseIDs))
		for _, id := range courseIDs {
			desiredSet[id] = true
		}

		for _, id := range courseIDs {
			if !currentSet[id] {
				added = append(added, id)
			}
		}
		for _, id := range current {
			if !desiredSet[id] {
				removed = append(removed, id)
			}
		}

		if len(removed) > 0 {
			if err := tx.Where("employee_id = ? AND tenant_id = ? AND course_id IN ?",
				employeeID, tenantID, removed).
				Delete(&model.Assignment{}).Error; err != nil {
				return err
			}
		}

		for _, courseID := range added {
			assignment := model.Assignment{
				TenantID:   tenantID,
				EmployeeID: employeeID,
				CourseID:   courseID,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return added, removed, nil
}
