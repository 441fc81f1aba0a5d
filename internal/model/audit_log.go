package model

type AuditAction string

const (
	AuditCourseCreate     AuditAction = "COURSE_CREATE"
	AuditCourseUpdate     AuditAction = "COURSE_UPDATE"
	AuditCourseDelete     AuditAction = "COURSE_DELETE"
	AuditModuleCreate     AuditAction = "MODULE_CREATE"
	AuditModuleUpdate     AuditAction = "MODULE_UPDATE"
	AuditModuleDelete     AuditAction = "MODULE_DELETE"
	AuditContentCreate    AuditAction = "CONTENT_CREATE"
	AuditContentUpdate    AuditAction = "CONTENT_UPDATE"
	AuditContentDelete    AuditAction = "CONTENT_DELETE"
	AuditContentView      AuditAction = "CONTENT_VIEW"
	AuditAssignmentUpdate AuditAction = "ASSIGNMENT_UPDATE"

	AuditCohortCreate           AuditAction = "COHORT_CREATE"
	AuditCohortMemberAdd        AuditAction = "COHORT_MEMBER_ADD"
	AuditCohortAssignmentCreate AuditAction = "COHORT_ASSIGNMENT_CREATE"

	AuditUserCreate       AuditAction = "USER_CREATE"
	AuditUserUpdate       AuditAction = "USER_UPDATE"
	AuditUserDeactivate   AuditAction = "USER_DEACTIVATE"
)

// AuditLog 管理操作与内容访问的审计记录
// swagger:model AuditLog
type AuditLog struct {
	UUIDBase
	TenantID   string      `gorm:"index;type:varchar(36)" json:"tenantId"`
	ActorID    string      `gorm:"index;type:varchar(36)" json:"actorId"`
	ActorEmail string      `gorm:"size:100" json:"actorEmail"`
	Action     AuditAction `gorm:"size:50;not null" json:"action"`
	EntityType string      `gorm:"size:50" json:"entityType"`
	EntityID   string      `gorm:"type:varchar(36)" json:"entityId"`
	Metadata   string      `gorm:"type:text" json:"metadata"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
