package model

// Cohort 员工分组，用于按组批量授权课程
// swagger:model Cohort
type Cohort struct {
	UUIDBase
	TenantID    string `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Cohort) TableName() string {
	return "cohorts"
}

// CohortMember 分组成员关系
type CohortMember struct {
	UUIDBase
	TenantID   string `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	CohortID   string `gorm:"index:idx_cohort_member,unique;type:varchar(36);not null" json:"cohortId"`
	EmployeeID string `gorm:"index:idx_cohort_member,unique;type:varchar(36);not null" json:"employeeId"`
}

func (CohortMember) TableName() string {
	return "cohort_members"
}

// CohortCourseAssignment 分组到课程的授权，落库同时展开为成员的个人授权
type CohortCourseAssignment struct {
	UUIDBase
	TenantID string `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	CohortID string `gorm:"index:idx_cohort_course,unique;type:varchar(36);not null" json:"cohortId"`
	CourseID string `gorm:"index:idx_cohort_course,unique;type:varchar(36);not null" json:"courseId"`
}

func (CohortCourseAssignment) TableName() string {
	return "cohort_course_assignments"
}
