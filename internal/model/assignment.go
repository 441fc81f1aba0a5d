package model

import (
	"time"

	"gorm.io/gorm"
)

// Assignment 员工与课程的授权关系，存在即表示可读该课程的内容树
// swagger:model Assignment
type Assignment struct {
	UUIDBase
	TenantID   string    `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	EmployeeID string    `gorm:"index:idx_employee_course,unique;type:varchar(36);not null" json:"employeeId"`
	CourseID   string    `gorm:"index:idx_employee_course,unique;type:varchar(36);not null" json:"courseId"`
	AssignedAt time.Time `json:"assignedAt"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if err := a.UUIDBase.BeforeCreate(tx); err != nil {
		return err
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	return nil
}

func (Assignment) TableName() string {
	return "employee_course_assignments"
}
