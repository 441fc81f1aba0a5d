package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"
	appLogger "lms_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type streamFixture struct {
	db         *gorm.DB
	router     *gin.Engine
	item       *model.ContentItem
	viewerID   string
	strangerID string
}

// request 以给定用户身份发请求，userID 为空表示未登录
func (f *streamFixture) request(t *testing.T, userID, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID != "" {
		req.Header.Set("X-Test-User", userID)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func newStreamFixture(t *testing.T) *streamFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	appLogger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	cfg.Storage.SignedURLTTL = 300
	cfg.Proxy.UpstreamTimeout = 5
	cfg.Proxy.ViewAuditWindow = 300

	contentRepo := repository.NewContentItemRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	auditSvc := service.NewAuditService(repository.NewAuditRepository(db))
	storage := service.NewStorageService(cfg)

	streamSvc := service.NewStreamService(contentRepo, moduleRepo, assignmentRepo,
		auditSvc, storage, nil, cfg)
	ctrl := NewStreamController(streamSvc)

	f := &streamFixture{
		db:         db,
		viewerID:   model.GenerateUUID(),
		strangerID: model.GenerateUUID(),
	}

	course := &model.Course{TenantID: "tenant-1", Title: "Onboarding", Status: model.CoursePublished}
	require.NoError(t, courseRepo.Create(course))
	module := &model.CourseModule{TenantID: "tenant-1", CourseID: course.ID, Title: "Basics"}
	require.NoError(t, moduleRepo.CreateAt(module, 0))
	f.item = &model.ContentItem{
		TenantID: "tenant-1",
		ModuleID: module.ID,
		Title:    "intro.pdf",
		Type:     model.ContentPDF,
		Source:   model.SourceExternal,
	}
	require.NoError(t, contentRepo.CreateAt(f.item, 0))

	_, _, err = assignmentRepo.Replace(f.viewerID, "tenant-1", []string{course.ID})
	require.NoError(t, err)

	f.router = gin.New()
	f.router.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("user", &util.Claims{UserID: id, Role: model.Employee})
		}
		c.Next()
	})
	f.router.GET("/api/content/stream", ctrl.Stream)
	f.router.GET("/api/content/:contentId", ctrl.SignedURL)
	f.router.GET("/api/proxy/image", ctrl.ProxyImage)

	return f
}

func (f *streamFixture) setItemURL(t *testing.T, rawURL string) {
	t.Helper()
	f.item.URL = rawURL
	require.NoError(t, f.db.Save(f.item).Error)
}

func TestStreamForwardsUpstreamBodyInline(t *testing.T) {
	f := newStreamFixture(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer upstream.Close()
	f.setItemURL(t, upstream.URL)

	w := f.request(t, f.viewerID, "/api/content/stream?contentItemId="+f.item.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 fake", w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="intro.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestStreamRejectsUnassignedViewer(t *testing.T) {
	f := newStreamFixture(t)
	f.setItemURL(t, "https://example.com/doc.pdf")

	w := f.request(t, f.strangerID, "/api/content/stream?contentItemId="+f.item.ID)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestStreamRequiresAuth(t *testing.T) {
	f := newStreamFixture(t)

	w := f.request(t, "", "/api/content/stream?contentItemId="+f.item.ID)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStreamUnknownContentIs404(t *testing.T) {
	f := newStreamFixture(t)

	w := f.request(t, f.viewerID, "/api/content/stream?contentItemId="+model.GenerateUUID())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamMissingParamIs400(t *testing.T) {
	f := newStreamFixture(t)

	w := f.request(t, f.viewerID, "/api/content/stream")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamUpstreamFailureIs502(t *testing.T) {
	f := newStreamFixture(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()
	f.setItemURL(t, upstream.URL)

	w := f.request(t, f.viewerID, "/api/content/stream?contentItemId="+f.item.ID)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	// 失败时只回错误信息，不转发半截响应体
	assert.Contains(t, w.Body.String(), "failed to fetch")
}

func TestStreamMissingStorageObjectIs404(t *testing.T) {
	f := newStreamFixture(t)

	f.item.Source = model.SourceStorage
	f.item.StoragePath = "content/tenant-1/gone.mp4"
	require.NoError(t, f.db.Save(f.item).Error)

	w := f.request(t, f.viewerID, "/api/content/stream?contentItemId="+f.item.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSignedURLRejectsExternalContent(t *testing.T) {
	f := newStreamFixture(t)
	f.setItemURL(t, "https://example.com/doc.pdf")

	w := f.request(t, f.viewerID, "/api/content/"+f.item.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStreamWritesViewAudit(t *testing.T) {
	f := newStreamFixture(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer upstream.Close()
	f.setItemURL(t, upstream.URL)

	w := f.request(t, f.viewerID, "/api/content/stream?contentItemId="+f.item.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, f.db.Model(&model.AuditLog{}).
		Where("action = ? AND entity_id = ?", model.AuditContentView, f.item.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProxyImageMissingParamsIs400(t *testing.T) {
	f := newStreamFixture(t)

	w := f.request(t, f.viewerID, "/api/proxy/image")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
