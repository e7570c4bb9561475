package dto

// VoiceInfo 声音描述（返回给客户端）
type VoiceInfo struct {
	ID        int64    `json:"id"`
	Name      string   `json:"voice_name"`
	Type      string   `json:"voice_type"`
	Language  string   `json:"language"`
	Accent    string   `json:"accent"`
	Emotions  []string `json:"emotion_support"`
	UserID    *int64   `json:"user_id,omitempty"`
	SampleRef string   `json:"sample_ref,omitempty"`
}

// CloneVoiceRequest 克隆声音请求（multipart 表单，样本文件单独传输）
type CloneVoiceRequest struct {
	Name     string `form:"voice_name" binding:"required,min=1,max=100"`
	Language string `form:"language"`
	Accent   string `form:"accent"`
}
