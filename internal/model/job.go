package model

import (
	"time"
)

// 异步合成任务状态
const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// SynthesisJob 长文本异步合成任务
type SynthesisJob struct {
	ID             int64              `gorm:"primaryKey" json:"id"`
	UserID         int64              `gorm:"not null;index" json:"user_id"`
	VoiceID        int64              `gorm:"not null" json:"voice_id"`
	TextInput      string             `gorm:"type:text;not null" json:"text_input"`
	Settings       GenerationSettings `gorm:"serializer:json" json:"settings"`
	Status         string             `gorm:"size:20;default:queued;index" json:"status"` // queued, processing, completed, failed
	ArtifactRef    string             `gorm:"size:500" json:"artifact_ref,omitempty"`
	ErrorMessage   string             `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time          `gorm:"index" json:"created_at"`
	StartedAt      *time.Time         `json:"started_at,omitempty"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
	ElapsedSeconds int                `json:"elapsed_seconds,omitempty"`
}

func (SynthesisJob) TableName() string {
	return "synthesis_jobs"
}
