package model

import (
	"time"
)

// GenerationSettings 单次合成的生效设置。pitch 仅被记录，引擎不做真实音高处理。
type GenerationSettings struct {
	Speed   float64 `json:"speed"`
	Pitch   float64 `json:"pitch"`
	Emotion string  `json:"emotion"`
}

// GenerationRecord 生成历史，只追加，不修改不删除
type GenerationRecord struct {
	ID          int64              `gorm:"primaryKey" json:"id"`
	UserID      int64              `gorm:"not null;index" json:"user_id"`
	VoiceID     int64              `gorm:"not null;index" json:"voice_id"`
	TextInput   string             `gorm:"type:text;not null" json:"text_input"`
	Settings    GenerationSettings `gorm:"serializer:json" json:"settings"`
	ArtifactRef string             `gorm:"size:500;not null" json:"artifact_ref"`
	GeneratedAt time.Time          `gorm:"index;autoCreateTime" json:"generated_at"`
}

func (GenerationRecord) TableName() string {
	return "generation_records"
}
