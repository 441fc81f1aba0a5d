package util

import (
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "video/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// IsVideo 检测是否为视频
func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/x-mpegURL"
}

var driveFileRe = regexp.MustCompile(`/file/d/([^/]+)`)

// NormalizeDriveURL 把 Google Drive 分享链接改写为直接下载链接，其余 URL 原样返回
func NormalizeDriveURL(raw string) string {
	if !strings.Contains(raw, "drive.google.com") {
		return raw
	}
	m := driveFileRe.FindStringSubmatch(raw)
	if len(m) == 2 {
		return "https://drive.google.com/uc?export=download&id=" + m[1]
	}
	return raw
}
