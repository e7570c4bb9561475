package service

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/pkg/artifact"
	"github.com/novavoice/novavoice_go_server/internal/repository"
)

var (
	ErrVoiceNotFound        = errors.New("声音不存在")
	ErrCloningRequiresPaid  = errors.New("声音克隆需要 Premium 或 Ultimate 订阅")
	ErrSampleTooLarge       = errors.New("样本文件过大")
	ErrSampleTypeNotAllowed = errors.New("不支持的样本文件类型")
)

type CatalogService struct {
	voiceRepo *repository.VoiceRepository
	store     artifact.Store
	cfg       *config.Config
}

func NewCatalogService(voiceRepo *repository.VoiceRepository, store artifact.Store, cfg *config.Config) *CatalogService {
	return &CatalogService{
		voiceRepo: voiceRepo,
		store:     store,
		cfg:       cfg,
	}
}

// SeedPresets 预置音色初始化。仅在表中没有任何 preset 记录时写入。
func (s *CatalogService) SeedPresets() error {
	count, err := s.voiceRepo.CountPresets()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	presets := []model.Voice{
		{
			Name:     "Nova (Neutral Male)",
			Type:     model.VoiceTypePreset,
			Params:   model.VoiceParams{EngineVoiceID: 0},
			Language: "en-US",
			Accent:   "default",
			Emotions: []string{"neutral", "happy", "sad"},
		},
		{
			Name:     "Stella (Neutral Female)",
			Type:     model.VoiceTypePreset,
			Params:   model.VoiceParams{EngineVoiceID: 1},
			Language: "en-US",
			Accent:   "default",
			Emotions: []string{"neutral", "happy", "sad"},
		},
		{
			Name:     "Orion (Deep Male)",
			Type:     model.VoiceTypePreset,
			Params:   model.VoiceParams{EngineVoiceID: 0, PitchModifier: -5},
			Language: "en-US",
			Accent:   "default",
			Emotions: []string{"neutral", "serious"},
		},
		{
			Name:     "Lyra (Bright Female)",
			Type:     model.VoiceTypePreset,
			Params:   model.VoiceParams{EngineVoiceID: 1, PitchModifier: 5},
			Language: "en-US",
			Accent:   "default",
			Emotions: []string{"neutral", "excited"},
		},
		{
			Name:     "Echo (Multilingual Placeholder)",
			Type:     model.VoiceTypePreset,
			Params:   model.VoiceParams{EngineVoiceID: 0},
			Language: "mul",
			Accent:   "various",
			Emotions: []string{"neutral"},
		},
	}

	return s.voiceRepo.CreateBatch(presets)
}

// ListVoices 列出对调用方可见的音色：全部预置音色 + 本人拥有的克隆/定制音色。
// userID 为 nil 时（未登录）只返回预置音色。
func (s *CatalogService) ListVoices(userID *int64) ([]*dto.VoiceInfo, error) {
	voices, err := s.voiceRepo.ListVisible(userID)
	if err != nil {
		return nil, err
	}

	infos := make([]*dto.VoiceInfo, 0, len(voices))
	for i := range voices {
		infos = append(infos, buildVoiceInfo(&voices[i]))
	}
	return infos, nil
}

// GetVoice 按 ID 获取音色，校验可见性（预置音色或本人所有）
func (s *CatalogService) GetVoice(voiceID int64, userID int64) (*model.Voice, error) {
	voice, err := s.voiceRepo.GetByID(voiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoiceNotFound
		}
		return nil, err
	}

	if voice.IsOwned() && *voice.UserID != userID {
		return nil, ErrVoiceNotFound
	}

	return voice, nil
}

// CloneVoice 模拟声音克隆：保存样本文件，登记一条 cloned 音色。
// 仅限允许克隆的付费档位。
func (s *CatalogService) CloneVoice(user *model.User, req *dto.CloneVoiceRequest, filename string, sample io.Reader, size int64) (*dto.VoiceInfo, error) {
	tier := s.cfg.Subscription.TierFor(user.SubscriptionTier)
	if !tier.AllowCloning {
		return nil, ErrCloningRequiresPaid
	}

	if s.cfg.Upload.MaxSampleSize > 0 && size > s.cfg.Upload.MaxSampleSize {
		return nil, ErrSampleTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.extensionAllowed(ext) {
		return nil, ErrSampleTypeNotAllowed
	}

	reader := sample
	if s.cfg.Upload.MaxSampleSize > 0 {
		reader = io.LimitReader(sample, s.cfg.Upload.MaxSampleSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if s.cfg.Upload.MaxSampleSize > 0 && int64(len(data)) > s.cfg.Upload.MaxSampleSize {
		return nil, ErrSampleTooLarge
	}

	sampleRef, err := s.store.Put(artifact.PrefixSample, data, ext)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "en-US"
	}
	accent := req.Accent
	if accent == "" {
		accent = "custom"
	}

	voice := &model.Voice{
		UserID:    &user.ID,
		Name:      req.Name,
		Type:      model.VoiceTypeCloned,
		Params:    model.VoiceParams{EngineVoiceID: 0, ClonedFromSample: sampleRef},
		Language:  language,
		Accent:    accent,
		Emotions:  []string{"neutral"},
		SampleRef: sampleRef,
	}

	if err := s.voiceRepo.Create(voice); err != nil {
		return nil, err
	}

	return buildVoiceInfo(voice), nil
}

func (s *CatalogService) extensionAllowed(ext string) bool {
	if len(s.cfg.Upload.AllowedExtensions) == 0 {
		return true
	}
	for _, allowed := range s.cfg.Upload.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

func buildVoiceInfo(voice *model.Voice) *dto.VoiceInfo {
	return &dto.VoiceInfo{
		ID:        voice.ID,
		Name:      voice.Name,
		Type:      voice.Type,
		Language:  voice.Language,
		Accent:    voice.Accent,
		Emotions:  voice.Emotions,
		UserID:    voice.UserID,
		SampleRef: voice.SampleRef,
	}
}
