package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContentService struct {
	contentRepo  *repository.ContentItemRepository
	moduleRepo   *repository.ModuleRepository
	storage      *StorageService
	auditService *AuditService
}

func NewContentService(
	contentRepo *repository.ContentItemRepository,
	moduleRepo *repository.ModuleRepository,
	storage *StorageService,
	auditService *AuditService,
) *ContentService {
	return &ContentService{
		contentRepo:  contentRepo,
		moduleRepo:   moduleRepo,
		storage:      storage,
		auditService: auditService,
	}
}

type ContentRequest struct {
	Title string `json:"title" binding:"required"`
	Type  string `json:"type" binding:"required"`
	URL   string `json:"url"`
	// Source 更新时可选，将存储型条目改回外链时传 external
	Source string `json:"source"`
	// Position 为插入位置，0或缺省表示追加到末尾
	Position int `json:"position"`
}

// Create 在模块下插入外链型内容项
func (s *ContentService) Create(actor *util.Claims, moduleID, tenantID string, req *ContentRequest) (*model.ContentItem, error) {
	if !model.ValidContentType(req.Type) {
		return nil, util.ErrInvalidContentType
	}
	if req.Position < 0 {
		return nil, util.ErrInvalidPosition
	}
	if _, err := s.moduleRepo.FindByID(moduleID, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	item := &model.ContentItem{
		TenantID: tenantID,
		ModuleID: moduleID,
		Title:    req.Title,
		Type:     model.ContentType(req.Type),
		Source:   model.SourceExternal,
		URL:      req.URL,
	}
	if err := s.contentRepo.CreateAt(item, req.Position); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditContentCreate, "content_item", item.ID, map[string]interface{}{
		"title":     item.Title,
		"type":      string(item.Type),
		"module_id": moduleID,
	})
	return item, nil
}

// Upload 上传文件型内容项：嗅探校验 MIME，存入存储后建内容记录
// 视频文件探测时长写入 duration
func (s *ContentService) Upload(ctx context.Context, actor *util.Claims, moduleID, tenantID string, req *ContentRequest, header *multipart.FileHeader) (*model.ContentItem, error) {
	if !model.ValidContentType(req.Type) {
		return nil, util.ErrInvalidContentType
	}
	if req.Position < 0 {
		return nil, util.ErrInvalidPosition
	}
	if _, err := s.moduleRepo.FindByID(moduleID, tenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	mimeType, err := util.ValidateMimeType(file, util.AllowedUploadMimeTypes)
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	// 落盘到临时文件，视频时长探测需要路径
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	var duration float64
	if util.IsVideo(mimeType) {
		if info, err := util.GetVideoInfo(tmp.Name()); err != nil {
			logger.Log.Warn("video probe failed", zap.String("file", header.Filename), zap.Error(err))
		} else {
			duration = info.Duration
		}
	}

	storagePath := fmt.Sprintf("content/%s/%s%s", tenantID, model.GenerateUUID(), filepath.Ext(header.Filename))
	src, err := os.Open(tmp.Name())
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if _, err := s.storage.Upload(ctx, storagePath, src, header.Size, mimeType); err != nil {
		return nil, err
	}

	item := &model.ContentItem{
		TenantID:    tenantID,
		ModuleID:    moduleID,
		Title:       req.Title,
		Type:        model.ContentType(req.Type),
		Source:      model.SourceStorage,
		StoragePath: storagePath,
		MimeType:    mimeType,
		FileSize:    header.Size,
		Duration:    duration,
	}
	if err := s.contentRepo.CreateAt(item, req.Position); err != nil {
		// 记录已失败，回收存储对象
		if derr := s.storage.Delete(ctx, storagePath); derr != nil {
			logger.Log.Warn("orphan cleanup failed", zap.String("path", storagePath), zap.Error(derr))
		}
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditContentCreate, "content_item", item.ID, map[string]interface{}{
		"title":     item.Title,
		"type":      string(item.Type),
		"module_id": moduleID,
		"file_size": header.Size,
	})
	return item, nil
}

func (s *ContentService) Get(id, tenantID string) (*model.ContentItem, error) {
	item, err := s.contentRepo.FindByIDScoped(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *ContentService) List(moduleID, tenantID string) ([]model.ContentItem, error) {
	return s.contentRepo.ListByModule(moduleID, tenantID)
}

func (s *ContentService) Update(actor *util.Claims, id, tenantID string, req *ContentRequest) (*model.ContentItem, error) {
	if !model.ValidContentType(req.Type) {
		return nil, util.ErrInvalidContentType
	}

	item, err := s.Get(id, tenantID)
	if err != nil {
		return nil, err
	}

	if req.Source != "" {
		if !model.ValidContentSource(req.Source) {
			return nil, util.ErrInvalidContentSource
		}
		// 只允许存储型改回外链，反向切换必须走上传
		if model.ContentSource(req.Source) == model.SourceStorage && item.Source != model.SourceStorage {
			return nil, util.ErrInvalidContentSource
		}
		item.Source = model.ContentSource(req.Source)
	}

	item.Title = req.Title
	item.Type = model.ContentType(req.Type)
	if item.Source == model.SourceExternal {
		item.URL = req.URL
	}
	if err := s.contentRepo.Update(item); err != nil {
		return nil, err
	}

	s.auditService.Log(actor, tenantID, model.AuditContentUpdate, "content_item", item.ID, map[string]interface{}{
		"title": item.Title,
	})
	return item, nil
}

// Move 调整内容项在模块内的位置
func (s *ContentService) Move(actor *util.Claims, id, tenantID string, position int) (*model.ContentItem, error) {
	if position < 1 {
		return nil, util.ErrInvalidPosition
	}

	item, err := s.Get(id, tenantID)
	if err != nil {
		return nil, err
	}

	if err := s.contentRepo.Move(id, tenantID, position); err != nil {
		return nil, err
	}
	item.SortOrder = position

	s.auditService.Log(actor, tenantID, model.AuditContentUpdate, "content_item", id, map[string]interface{}{
		"moved_to": position,
	})
	return item, nil
}

// Delete 删除内容项，存储型的连带清理存储对象
func (s *ContentService) Delete(ctx context.Context, actor *util.Claims, id, tenantID string) error {
	item, err := s.Get(id, tenantID)
	if err != nil {
		return err
	}

	if err := s.contentRepo.Delete(id, tenantID); err != nil {
		return err
	}

	if item.Source == model.SourceStorage && item.StoragePath != "" {
		if err := s.storage.Delete(ctx, item.StoragePath); err != nil {
			logger.Log.Warn("storage cleanup failed", zap.String("path", item.StoragePath), zap.Error(err))
		}
	}

	s.auditService.Log(actor, tenantID, model.AuditContentDelete, "content_item", id, map[string]interface{}{
		"title": item.Title,
	})
	return nil
}
