package model

import "time"

// ContentProgress 员工对单条内容的完成状态，(employee_id, content_item_id) 唯一，
// 只做 upsert，不删除
// swagger:model ContentProgress
type ContentProgress struct {
	UUIDBase
	TenantID      string     `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	EmployeeID    string     `gorm:"index:idx_employee_item,unique;type:varchar(36);not null" json:"employeeId"`
	ContentItemID string     `gorm:"index:idx_employee_item,unique;type:varchar(36);not null" json:"contentItemId"`
	Completed     bool       `gorm:"default:false" json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

func (ContentProgress) TableName() string {
	return "content_progress"
}
