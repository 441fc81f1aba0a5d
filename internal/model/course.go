package model

import "time"

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
	CourseArchived  CourseStatus = "archived"
)

// Course 课程，模块与内容的所有权根节点
// swagger:model Course
type Course struct {
	UUIDBase
	TenantID    string       `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	ImageURL    string       `gorm:"size:512" json:"imageUrl"`
	Status      CourseStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	PublishedAt *time.Time   `json:"publishedAt,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
