package model

type ContentType string

const (
	ContentVideo   ContentType = "video"
	ContentYouTube ContentType = "youtube"
	ContentPDF     ContentType = "pdf"
	ContentPPT     ContentType = "ppt"
	ContentLink    ContentType = "link"
	ContentImage   ContentType = "image"
)

// ValidContentType 校验内容类型是否在封闭枚举内
func ValidContentType(t string) bool {
	switch ContentType(t) {
	case ContentVideo, ContentYouTube, ContentPDF, ContentPPT, ContentLink, ContentImage:
		return true
	}
	return false
}

type ContentSource string

const (
	// SourceExternal 外链内容，URL 字段有效
	SourceExternal ContentSource = "external"
	// SourceStorage 内部存储内容，StoragePath 字段有效
	SourceStorage ContentSource = "storage"
)

func ValidContentSource(s string) bool {
	return ContentSource(s) == SourceExternal || ContentSource(s) == SourceStorage
}

// ContentItem 模块下的单条学习内容
// swagger:model ContentItem
type ContentItem struct {
	UUIDBase
	TenantID    string        `gorm:"index;type:varchar(36);not null" json:"tenantId"`
	ModuleID    string        `gorm:"index;type:varchar(36);not null" json:"moduleId"`
	Title       string        `gorm:"size:255;not null" json:"title"`
	Type        ContentType   `gorm:"type:varchar(20);not null" json:"type"`
	Source      ContentSource `gorm:"column:content_source;type:varchar(20);default:'external'" json:"contentSource"`
	URL         string        `gorm:"size:1024" json:"url"`
	StoragePath string        `gorm:"size:512" json:"storagePath"`
	MimeType    string        `gorm:"size:100" json:"mimeType"`
	FileSize    int64         `gorm:"default:0" json:"fileSize"`
	Duration    float64       `gorm:"default:0" json:"duration"`
	SortOrder   int           `gorm:"default:0" json:"sortOrder"`
}

func (ContentItem) TableName() string {
	return "content_items"
}
