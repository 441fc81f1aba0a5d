package util

import "errors"

var (
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrUserNotFound         = errors.New("用户不存在")
	ErrUserDisabled         = errors.New("账号已停用")
	ErrTenantNotFound       = errors.New("tenant not found")
	ErrNotTenantMember      = errors.New("not a member of this tenant")
	ErrCourseNotFound       = errors.New("course not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrContentNotFound      = errors.New("content not found")
	ErrTreeUnavailable      = errors.New("course tree unavailable")
	ErrNotAssigned          = errors.New("viewer not assigned to course")
	ErrInvalidPosition      = errors.New("position must be a non-negative integer")
	ErrNoContentSource      = errors.New("no content source available")
	ErrNotProxied           = errors.New("this content type is not proxied")
	ErrUpstreamFetch        = errors.New("failed to fetch content from source")
	ErrStorageObjectGone    = errors.New("file not found in storage")
	ErrInvalidContentType   = errors.New("content type is required or invalid")
	ErrInvalidContentSource = errors.New("content source is invalid")
	ErrCohortNotFound       = errors.New("cohort not found")
	ErrCohortMemberExists   = errors.New("employee is already in this cohort")
	ErrCohortCourseAssigned = errors.New("course is already assigned to this cohort")
)
