package models

import "time"

// Compliance statuses. A check starts pending and resolves to exactly one
// of the terminal states.
const (
	ComplianceStatusPending = "pending"
	ComplianceStatusPassed  = "passed"
	ComplianceStatusFixed   = "fixed"
	ComplianceStatusFailed  = "failed"
)

// ComplianceCheck is the append-only audit record of one policy evaluation.
// One row per invocation, written regardless of outcome; rows are never
// updated or deleted.
type ComplianceCheck struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index" json:"user_id"`
	ContentID      *uint     `gorm:"index" json:"content_id"` // GeneratedContent, when the check ran inside the pipeline
	ContentType    string    `gorm:"size:50" json:"content_type"`
	InputText      string    `gorm:"type:text" json:"input_text"`
	Status         string    `gorm:"size:20;not null" json:"status"` // passed, fixed, failed
	ViolationsJSON string    `gorm:"type:text" json:"violations"`    // JSON array of {rule, reason, snippet}
	FixedText      string    `gorm:"type:text" json:"fixed_text"`
	LLMName        string    `gorm:"size:100" json:"llm_name"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (ComplianceCheck) TableName() string { return "compliance_checks" }
