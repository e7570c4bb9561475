package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/pkg/artifact"
	"github.com/novavoice/novavoice_go_server/internal/pkg/queue"
	"github.com/novavoice/novavoice_go_server/internal/pkg/synth"
	"github.com/novavoice/novavoice_go_server/internal/repository"
)

var (
	ErrSynthesisFailed  = errors.New("语音合成失败")
	ErrSynthesisTimeout = errors.New("语音合成超时")
	ErrJobNotFound      = errors.New("任务不存在")
)

type TTSService struct {
	db             *gorm.DB
	userRepo       *repository.UserRepository
	generationRepo *repository.GenerationRepository
	jobRepo        *repository.JobRepository
	catalogService *CatalogService
	engine         synth.Engine
	store          artifact.Store
	jobQueue       *queue.Queue
	cfg            *config.Config
}

func NewTTSService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	generationRepo *repository.GenerationRepository,
	jobRepo *repository.JobRepository,
	catalogService *CatalogService,
	engine synth.Engine,
	store artifact.Store,
	jobQueue *queue.Queue,
	cfg *config.Config,
) *TTSService {
	return &TTSService{
		db:             db,
		userRepo:       userRepo,
		generationRepo: generationRepo,
		jobRepo:        jobRepo,
		catalogService: catalogService,
		engine:         engine,
		store:          store,
		jobQueue:       jobQueue,
		cfg:            cfg,
	}
}

// Generate 同步合成一段语音。
// 合成与存储成功之后，配额扣减与历史记录在同一事务内提交；
// 合成失败或超时不扣配额、不留记录。
func (s *TTSService) Generate(ctx context.Context, user *model.User, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	voice, err := s.catalogService.GetVoice(req.VoiceID, user.ID)
	if err != nil {
		return nil, err
	}

	speed := req.Speed
	if speed <= 0 {
		speed = 1.0
	}

	data, err := s.synthesize(ctx, voice, req.Text, req.Emotion, speed)
	if err != nil {
		return nil, err
	}

	ref, err := s.store.Put(artifact.PrefixAudio, data, ".wav")
	if err != nil {
		return nil, err
	}

	record := &model.GenerationRecord{
		UserID:      user.ID,
		VoiceID:     voice.ID,
		TextInput:   req.Text,
		Settings:    model.GenerationSettings{Speed: speed, Pitch: req.Pitch, Emotion: req.Emotion},
		ArtifactRef: ref,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if !user.IsPaidTier() {
			ok, err := s.userRepo.ConsumeGenerationTx(tx, user.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrQuotaExhausted
			}
		}
		return s.generationRepo.CreateTx(tx, record)
	})
	if err != nil {
		return nil, err
	}

	if !user.IsPaidTier() {
		user.DailyGenerationsLeft--
	}

	return &dto.GenerateResponse{
		RecordID:             record.ID,
		ArtifactRef:          ref,
		ArtifactURL:          s.store.URL(ref),
		DailyGenerationsLeft: user.DailyGenerationsLeft,
	}, nil
}

// Synthesize 调用引擎合成，不涉及配额与记录（供 worker 复用）
func (s *TTSService) Synthesize(ctx context.Context, voice *model.Voice, text, emotion string, speed float64) ([]byte, error) {
	return s.synthesize(ctx, voice, text, emotion, speed)
}

func (s *TTSService) synthesize(ctx context.Context, voice *model.Voice, text, emotion string, speed float64) ([]byte, error) {
	timeout := time.Duration(s.cfg.Synthesis.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	synthCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	data, err := s.engine.Synthesize(synthCtx, synth.Request{
		Text:          synth.ApplyEmotion(text, emotion),
		EngineVoiceID: voice.Params.EngineVoiceID,
		PitchModifier: voice.Params.PitchModifier,
		Speed:         speed,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrSynthesisTimeout
		}
		return nil, ErrSynthesisFailed
	}

	return data, nil
}

// CommitGeneration 将一次成功合成的配额扣减与历史记录原子提交（供 worker 复用）
func (s *TTSService) CommitGeneration(user *model.User, record *model.GenerationRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if !user.IsPaidTier() {
			ok, err := s.userRepo.ConsumeGenerationTx(tx, user.ID)
			if err != nil {
				return err
			}
			if !ok {
				return ErrQuotaExhausted
			}
		}
		return s.generationRepo.CreateTx(tx, record)
	})
}

// History 生成历史，按时间倒序
func (s *TTSService) History(userID int64) ([]*dto.HistoryItem, error) {
	rows, err := s.generationRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dto.HistoryItem{
			ID:          row.ID,
			TextInput:   row.TextInput,
			VoiceName:   row.VoiceName,
			Speed:       row.Settings.Speed,
			Pitch:       row.Settings.Pitch,
			Emotion:     row.Settings.Emotion,
			ArtifactRef: row.ArtifactRef,
			GeneratedAt: row.GeneratedAt.Format(time.RFC3339),
		})
	}
	return items, nil
}

// CreateJob 创建异步合成任务并入队
func (s *TTSService) CreateJob(ctx context.Context, user *model.User, req *dto.CreateJobRequest) (*dto.CreateJobResponse, error) {
	voice, err := s.catalogService.GetVoice(req.VoiceID, user.ID)
	if err != nil {
		return nil, err
	}

	speed := req.Speed
	if speed <= 0 {
		speed = 1.0
	}

	job := &model.SynthesisJob{
		UserID:    user.ID,
		VoiceID:   voice.ID,
		TextInput: req.Text,
		Settings:  model.GenerationSettings{Speed: speed, Pitch: req.Pitch, Emotion: req.Emotion},
		Status:    model.JobStatusQueued,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}

	err = s.jobQueue.Push(ctx, &queue.JobMessage{
		JobID:   job.ID,
		UserID:  user.ID,
		VoiceID: voice.ID,
		Text:    req.Text,
		Speed:   speed,
		Pitch:   req.Pitch,
		Emotion: req.Emotion,
	})
	if err != nil {
		// 入队失败直接标记任务失败，避免悬挂在 queued 状态
		job.Status = model.JobStatusFailed
		job.ErrorMessage = err.Error()
		_ = s.jobRepo.Update(job)
		return nil, err
	}

	return &dto.CreateJobResponse{
		JobID:  job.ID,
		Status: job.Status,
	}, nil
}

// GetJob 查询任务，仅限本人
func (s *TTSService) GetJob(jobID, userID int64) (*model.SynthesisJob, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	if job.UserID != userID {
		return nil, ErrJobNotFound
	}
	return job, nil
}

// ListJobs 列出用户最近的任务
func (s *TTSService) ListJobs(userID int64, limit int) ([]model.SynthesisJob, error) {
	return s.jobRepo.ListByUser(userID, limit)
}
