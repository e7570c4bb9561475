package model

import (
	"time"
)

// 声音类型
const (
	VoiceTypePreset   = "preset"
	VoiceTypeCloned   = "cloned"
	VoiceTypeDesigned = "designed"
)

// VoiceParams 引擎参数。preset/designed 只使用 EngineVoiceID 和 PitchModifier，
// cloned 额外记录来源样本的存储引用。
type VoiceParams struct {
	EngineVoiceID    int    `json:"engine_voice_id"`
	PitchModifier    int    `json:"pitch_modifier,omitempty"`
	ClonedFromSample string `json:"cloned_from_sample,omitempty"`
}

type Voice struct {
	ID        int64       `gorm:"primaryKey" json:"id"`
	UserID    *int64      `gorm:"index" json:"user_id,omitempty"` // NULL 表示全局预置声音
	Name      string      `gorm:"size:100;not null" json:"voice_name"`
	Type      string      `gorm:"size:20;not null;index" json:"voice_type"` // preset, cloned, designed
	Params    VoiceParams `gorm:"serializer:json" json:"params"`
	Language  string      `gorm:"size:20;default:en-US" json:"language"`
	Accent    string      `gorm:"size:50;default:default" json:"accent"`
	Emotions  []string    `gorm:"serializer:json" json:"emotion_support"`
	SampleRef string      `gorm:"size:500" json:"sample_ref,omitempty"` // 克隆声音的样本存储引用
	CreatedAt time.Time   `json:"created_at"`
}

func (Voice) TableName() string {
	return "voices"
}

// IsOwned 非预置声音必须有属主
func (v *Voice) IsOwned() bool {
	return v.UserID != nil
}
