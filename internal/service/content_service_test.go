package service

import (
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"
	appLogger "lms_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type contentFixture struct {
	svc    *ContentService
	module *model.CourseModule
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	appLogger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	contentRepo := repository.NewContentItemRepository(db)
	auditSvc := NewAuditService(repository.NewAuditRepository(db))

	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}

	course := &model.Course{TenantID: testTenant, Title: "Onboarding", Status: model.CoursePublished}
	require.NoError(t, courseRepo.Create(course))
	module := &model.CourseModule{TenantID: testTenant, CourseID: course.ID, Title: "Basics"}
	require.NoError(t, moduleRepo.CreateAt(module, 0))

	return &contentFixture{
		svc:    NewContentService(contentRepo, moduleRepo, storage, auditSvc),
		module: module,
	}
}

func TestContentUpdateSwitchesStorageBackToExternal(t *testing.T) {
	f := newContentFixture(t)

	item, err := f.svc.Create(nil, f.module.ID, testTenant, &ContentRequest{
		Title: "intro", Type: string(model.ContentLink), URL: "https://example.com",
	})
	require.NoError(t, err)

	// 模拟一条存储型记录
	item.Source = model.SourceStorage
	item.StoragePath = "content/tenant-1/a.mp4"
	require.NoError(t, f.svc.contentRepo.Update(item))

	updated, err := f.svc.Update(nil, item.ID, testTenant, &ContentRequest{
		Title:  "intro",
		Type:   string(model.ContentLink),
		URL:    "https://example.com/new",
		Source: string(model.SourceExternal),
	})
	require.NoError(t, err)
	assert.Equal(t, model.SourceExternal, updated.Source)
	assert.Equal(t, "https://example.com/new", updated.URL)
}

func TestContentUpdateRejectsUnknownSource(t *testing.T) {
	f := newContentFixture(t)

	item, err := f.svc.Create(nil, f.module.ID, testTenant, &ContentRequest{
		Title: "intro", Type: string(model.ContentLink), URL: "https://example.com",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(nil, item.ID, testTenant, &ContentRequest{
		Title: "intro", Type: string(model.ContentLink), Source: "ftp",
	})
	assert.ErrorIs(t, err, util.ErrInvalidContentSource)
}

func TestContentUpdateRejectsExternalToStorage(t *testing.T) {
	f := newContentFixture(t)

	item, err := f.svc.Create(nil, f.module.ID, testTenant, &ContentRequest{
		Title: "intro", Type: string(model.ContentLink), URL: "https://example.com",
	})
	require.NoError(t, err)

	// 外链条目没有存储对象，不允许直接改成存储型
	_, err = f.svc.Update(nil, item.ID, testTenant, &ContentRequest{
		Title: "intro", Type: string(model.ContentLink), Source: string(model.SourceStorage),
	})
	assert.ErrorIs(t, err, util.ErrInvalidContentSource)
}
