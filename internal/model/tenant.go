package model

// Tenant 租户（独立的客户组织），所有业务数据按 tenant_id 隔离
// swagger:model Tenant
type Tenant struct {
	UUIDBase
	Slug string `gorm:"size:100;unique;not null" json:"slug"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// TenantMembership 用户与租户的从属关系
type TenantMembership struct {
	UUIDBase
	TenantID  string   `gorm:"index:idx_tenant_profile,unique;type:varchar(36);not null" json:"tenantId"`
	ProfileID string   `gorm:"index:idx_tenant_profile,unique;type:varchar(36);not null" json:"profileId"`
	Role      UserRole `gorm:"type:varchar(20);default:'employee'" json:"role"`
}

func (TenantMembership) TableName() string {
	return "tenant_memberships"
}
