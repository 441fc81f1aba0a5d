package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(profile *model.Profile) error {
	return r.DB.Create(profile).Error
}

func (r *ProfileRepository) FindByID(id string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) FindByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("email = ?", email).First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(profile *model.Profile) error {
	return r.DB.Save(profile).Error
}

func (r *ProfileRepository) UpdateLastLogin(id string) error {
	return r.DB.Model(&model.Profile{}).Where("id = ?", id).
		UpdateColumn("last_login", time.Now()).Error
}

// ListByTenant 按姓名排序列出租户内全部成员
func (r *ProfileRepository) ListByTenant(tenantID string) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.DB.
		Joins("JOIN tenant_memberships ON tenant_memberships.profile_id = profiles.id").
		Where("tenant_memberships.tenant_id = ?", tenantID).
		Order("profiles.full_name asc").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// SearchByTenant 租户内按姓名/邮箱模糊查找员工
func (r *ProfileRepository) SearchByTenant(tenantID, query string) ([]model.Profile, error) {
	var profiles []model.Profile
	like := "%" + query + "%"
	err := r.DB.
		Joins("JOIN tenant_memberships ON tenant_memberships.profile_id = profiles.id").
		Where("tenant_memberships.tenant_id = ?", tenantID).
		Where("profiles.full_name LIKE ? OR profiles.email LIKE ?", like, like).
		Order("profiles.full_name asc").
		Limit(20).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepository) Deactivate(id string) error {
	return r.DB.Model(&model.Profile{}).Where("id = ?", id).
		UpdateColumn("active", false).Error
}
