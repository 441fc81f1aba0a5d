package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type TenantRepository struct {
	DB *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{DB: db}
}

func (r *TenantRepository) FindBySlug(slug string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.DB.Where("slug = ?", slug).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) FindByID(id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.DB.First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *TenantRepository) Create(tenant *model.Tenant) error {
	return r.DB.Create(tenant).Error
}

// FindMembership 查某用户在某租户下的成员关系，不存在返回 gorm.ErrRecordNotFound
func (r *TenantRepository) FindMembership(tenantID, profileID string) (*model.TenantMembership, error) {
	var membership model.TenantMembership
	err := r.DB.Where("tenant_id = ? AND profile_id = ?", tenantID, profileID).First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *TenantRepository) CreateMembership(m *model.TenantMembership) error {
	return r.DB.Create(m).Error
}
