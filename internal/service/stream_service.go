package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StreamResult 代理读取到的内容流，调用方负责关闭 Body
type StreamResult struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	FileName      string
	Source        string
}

// StreamService 内容代理：校验授权后从存储或外部源取字节转发
type StreamService struct {
	contentRepo    *repository.ContentItemRepository
	moduleRepo     *repository.ModuleRepository
	assignmentRepo *repository.AssignmentRepository
	auditService   *AuditService
	storage        *StorageService
	redisClient    *redis.Client
	cfg            *config.Config
	httpClient     *http.Client
}

func NewStreamService(
	contentRepo *repository.ContentItemRepository,
	moduleRepo *repository.ModuleRepository,
	assignmentRepo *repository.AssignmentRepository,
	auditService *AuditService,
	storage *StorageService,
	redisClient *redis.Client,
	cfg *config.Config,
) *StreamService {
	return &StreamService{
		contentRepo:    contentRepo,
		moduleRepo:     moduleRepo,
		assignmentRepo: assignmentRepo,
		auditService:   auditService,
		storage:        storage,
		redisClient:    redisClient,
		cfg:            cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Proxy.UpstreamTimeout) * time.Second,
		},
	}
}

// Stream 取内容项的字节流
// 失败语义：内容不存在 ErrContentNotFound，未授权 ErrNotAssigned，
// 存储对象缺失 ErrStorageObjectGone，外部源失败 ErrUpstreamFetch
func (s *StreamService) Stream(ctx context.Context, viewer *util.Claims, contentItemID string) (*StreamResult, error) {
	item, err := s.authorize(viewer, contentItemID)
	if err != nil {
		return nil, err
	}

	var result *StreamResult
	if item.Source == model.SourceStorage && item.StoragePath != "" {
		result, err = s.fromStorage(ctx, item)
	} else if item.URL != "" {
		result, err = s.fromUpstream(ctx, item)
	} else {
		return nil, util.ErrNoContentSource
	}
	if err != nil {
		return nil, err
	}

	s.recordView(ctx, viewer, item)
	return result, nil
}

// SignedURL 为存储型内容生成短时效签名地址，外部链接不走签名
func (s *StreamService) SignedURL(ctx context.Context, viewer *util.Claims, contentItemID string) (string, error) {
	item, err := s.authorize(viewer, contentItemID)
	if err != nil {
		return "", err
	}

	if item.Source != model.SourceStorage || item.StoragePath == "" {
		return "", util.ErrNotProxied
	}

	ttl := time.Duration(s.cfg.Storage.SignedURLTTL) * time.Second
	signed, err := s.storage.SignedURL(ctx, item.StoragePath, ttl)
	if err != nil {
		return "", util.ErrStorageObjectGone
	}

	s.recordView(ctx, viewer, item)
	return signed, nil
}

// ProxyImage 图片透传，支持 driveId 或任意 url
func (s *StreamService) ProxyImage(ctx context.Context, driveID, rawURL string) (*StreamResult, error) {
	target := rawURL
	if driveID != "" {
		target = "https://drive.google.com/uc?export=view&id=" + url.QueryEscape(driveID)
	}
	if target == "" {
		return nil, util.ErrNoContentSource
	}

	return s.fetch(ctx, target, "external")
}

// authorize 内容项必须存在且属于查看者被授权的课程
func (s *StreamService) authorize(viewer *util.Claims, contentItemID string) (*model.ContentItem, error) {
	item, err := s.contentRepo.FindByID(contentItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	module, err := s.moduleRepo.FindByID(item.ModuleID, item.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}

	if _, err := s.assignmentRepo.Find(viewer.UserID, module.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotAssigned
		}
		return nil, err
	}

	return item, nil
}

func (s *StreamService) fromStorage(ctx context.Context, item *model.ContentItem) (*StreamResult, error) {
	body, contentType, err := s.storage.Download(ctx, item.StoragePath)
	if err != nil {
		logger.Log.Warn("storage object missing",
			zap.String("content_item_id", item.ID),
			zap.String("storage_path", item.StoragePath),
			zap.Error(err))
		return nil, util.ErrStorageObjectGone
	}

	if contentType == "" {
		contentType = item.MimeType
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &StreamResult{
		Body:          body,
		ContentType:   contentType,
		ContentLength: item.FileSize,
		FileName:      item.Title,
		Source:        "storage",
	}, nil
}

func (s *StreamService) fromUpstream(ctx context.Context, item *model.ContentItem) (*StreamResult, error) {
	target := util.NormalizeDriveURL(item.URL)

	result, err := s.fetch(ctx, target, "external")
	if err != nil {
		return nil, err
	}

	if result.ContentType == "" || result.ContentType == "application/octet-stream" {
		if item.MimeType != "" {
			result.ContentType = item.MimeType
		}
	}
	result.FileName = item.Title
	return result, nil
}

func (s *StreamService) fetch(ctx context.Context, target, source string) (*StreamResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, util.ErrUpstreamFetch
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		logger.Log.Warn("upstream fetch failed", zap.String("url", target), zap.Error(err))
		return nil, util.ErrUpstreamFetch
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		logger.Log.Warn("upstream returned non-200",
			zap.String("url", target),
			zap.Int("status", resp.StatusCode))
		return nil, util.ErrUpstreamFetch
	}

	return &StreamResult{
		Body:          resp.Body,
		ContentType:   resp.Header.Get("Content-Type"),
		ContentLength: resp.ContentLength,
		Source:        source,
	}, nil
}

// recordView 写一条 CONTENT_VIEW 审计，窗口期内同一(查看者,内容项)去重
func (s *StreamService) recordView(ctx context.Context, viewer *util.Claims, item *model.ContentItem) {
	if s.redisClient != nil {
		key := fmt.Sprintf("content:view:%s:%s", viewer.UserID, item.ID)
		window := time.Duration(s.cfg.Proxy.ViewAuditWindow) * time.Second
		ok, err := s.redisClient.SetNX(ctx, key, 1, window).Result()
		if err != nil {
			logger.Log.Warn("view dedupe check failed", zap.Error(err))
		} else if !ok {
			return
		}
	}

	s.auditService.Log(viewer, item.TenantID, model.AuditContentView, "content_item", item.ID, map[string]interface{}{
		"title": item.Title,
		"type":  string(item.Type),
	})
}
