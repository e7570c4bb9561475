package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	nano := time.Now().UnixNano()
	user := &model.User{
		Username:             fmt.Sprintf("testuser_%d", nano%1000000),
		Email:                fmt.Sprintf("test_%d@example.com", nano),
		PasswordHash:         "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		APIKey:               uuid.NewString(),
		SubscriptionTier:     model.TierBasic,
		DailyGenerationsLeft: 10,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithUsername 设置用户名
func WithUsername(username string) func(*model.User) {
	return func(u *model.User) {
		u.Username = username
	}
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithPasswordHash 设置密码哈希
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = hash
	}
}

// WithAPIKey 设置 API Key
func WithAPIKey(key string) func(*model.User) {
	return func(u *model.User) {
		u.APIKey = key
	}
}

// WithTier 设置订阅档位及对应配额
func WithTier(tier string, allowance int) func(*model.User) {
	return func(u *model.User) {
		u.SubscriptionTier = tier
		u.DailyGenerationsLeft = allowance
		if tier != model.TierBasic {
			expiry := time.Now().AddDate(0, 0, 30)
			u.SubscriptionExpiry = &expiry
		}
	}
}

// WithAllowance 设置剩余配额
func WithAllowance(left int) func(*model.User) {
	return func(u *model.User) {
		u.DailyGenerationsLeft = left
	}
}

// TestVoice 创建测试音色（默认为预置音色）
func TestVoice(t *testing.T, db *gorm.DB, opts ...func(*model.Voice)) *model.Voice {
	t.Helper()

	voice := &model.Voice{
		Name:     fmt.Sprintf("Test Voice %d", time.Now().UnixNano()%1000000),
		Type:     model.VoiceTypePreset,
		Params:   model.VoiceParams{EngineVoiceID: 0},
		Language: "en-US",
		Accent:   "default",
		Emotions: []string{"neutral"},
	}

	for _, opt := range opts {
		opt(voice)
	}

	if err := db.Create(voice).Error; err != nil {
		t.Fatalf("Failed to create test voice: %v", err)
	}

	return voice
}

// WithOwner 设置音色归属用户（克隆音色）
func WithOwner(userID int64) func(*model.Voice) {
	return func(v *model.Voice) {
		v.UserID = &userID
		v.Type = model.VoiceTypeCloned
	}
}

// WithVoiceName 设置音色名称
func WithVoiceName(name string) func(*model.Voice) {
	return func(v *model.Voice) {
		v.Name = name
	}
}

// WithVoiceParams 设置音色参数
func WithVoiceParams(params model.VoiceParams) func(*model.Voice) {
	return func(v *model.Voice) {
		v.Params = params
	}
}

// WithEmotions 设置支持的情绪
func WithEmotions(emotions []string) func(*model.Voice) {
	return func(v *model.Voice) {
		v.Emotions = emotions
	}
}

// TestGeneration 创建测试生成记录
func TestGeneration(t *testing.T, db *gorm.DB, userID, voiceID int64, text string) *model.GenerationRecord {
	t.Helper()

	record := &model.GenerationRecord{
		UserID:      userID,
		VoiceID:     voiceID,
		TextInput:   text,
		Settings:    model.GenerationSettings{Speed: 1.0, Pitch: 1.0, Emotion: "neutral"},
		ArtifactRef: fmt.Sprintf("audio/%s.wav", uuid.NewString()),
	}

	if err := db.Create(record).Error; err != nil {
		t.Fatalf("Failed to create test generation record: %v", err)
	}

	return record
}

// TestJob 创建测试合成任务
func TestJob(t *testing.T, db *gorm.DB, userID, voiceID int64, status string) *model.SynthesisJob {
	t.Helper()

	job := &model.SynthesisJob{
		UserID:    userID,
		VoiceID:   voiceID,
		TextInput: "hello world",
		Settings:  model.GenerationSettings{Speed: 1.0, Pitch: 1.0, Emotion: "neutral"},
		Status:    status,
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}

	return job
}
