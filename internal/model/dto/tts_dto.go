package dto

// GenerateRequest 语音合成请求
type GenerateRequest struct {
	Text    string  `json:"text" binding:"required"`
	VoiceID int64   `json:"voice_id" binding:"required"`
	Speed   float64 `json:"speed,omitempty"`   // 0.5 ~ 2.0，默认 1.0
	Pitch   float64 `json:"pitch,omitempty"`   // 仅记录，引擎不处理
	Emotion string  `json:"emotion,omitempty"` // neutral, happy, sad, ...
}

// GenerateResponse 合成结果
type GenerateResponse struct {
	RecordID             int64  `json:"record_id"`
	ArtifactRef          string `json:"artifact_ref"`
	ArtifactURL          string `json:"artifact_url,omitempty"`
	DailyGenerationsLeft int    `json:"daily_generations_left"`
}

// CreateJobRequest 异步合成任务请求
type CreateJobRequest struct {
	Text    string  `json:"text" binding:"required"`
	VoiceID int64   `json:"voice_id" binding:"required"`
	Speed   float64 `json:"speed,omitempty"`
	Pitch   float64 `json:"pitch,omitempty"`
	Emotion string  `json:"emotion,omitempty"`
}

// CreateJobResponse 任务创建响应
type CreateJobResponse struct {
	JobID  int64  `json:"job_id"`
	Status string `json:"status"`
}

// HistoryItem 生成历史条目
type HistoryItem struct {
	ID          int64   `json:"id"`
	TextInput   string  `json:"text_input"`
	VoiceName   string  `json:"voice_name"`
	Speed       float64 `json:"speed"`
	Pitch       float64 `json:"pitch"`
	Emotion     string  `json:"emotion"`
	ArtifactRef string  `json:"artifact_ref"`
	GeneratedAt string  `json:"generated_at"`
}
