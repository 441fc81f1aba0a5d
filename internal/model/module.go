package model

// CourseModule 课程下的章节，SortOrder 决定展示顺序
// swagger:model CourseModule
type CourseModule struct {
	UUIDBase
	TenantID    string `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	CourseID    string `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	SortOrder   int    `gorm:"default:0" json:"sortOrder"`
}

func (CourseModule) TableName() string {
	return "modules"
}
