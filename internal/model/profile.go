package model

import "time"

type UserRole string

const (
	Admin    UserRole = "admin"
	Employee UserRole = "employee"
)

// Profile 登录身份，跨租户唯一，具体权限由租户成员关系决定
// swagger:model Profile
type Profile struct {
	UUIDBase
	FullName  string    `gorm:"size:100;not null" json:"fullName"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:varchar(20);default:'employee'" json:"role"`
	Active    bool      `gorm:"default:true" json:"active"`
	LastLogin time.Time `json:"lastLogin"`
}

func (Profile) TableName() string {
	return "profiles"
}
