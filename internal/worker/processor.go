package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/pkg/artifact"
	"github.com/novavoice/novavoice_go_server/internal/pkg/pubsub"
	"github.com/novavoice/novavoice_go_server/internal/pkg/queue"
	"github.com/novavoice/novavoice_go_server/internal/repository"
	"github.com/novavoice/novavoice_go_server/internal/service"
)

// Processor 合成任务处理器
type Processor struct {
	jobRepo        *repository.JobRepository
	userRepo       *repository.UserRepository
	ttsService     *service.TTSService
	catalogService *service.CatalogService
	store          artifact.Store
	publisher      *pubsub.Publisher
}

// NewProcessor 创建任务处理器
func NewProcessor(
	jobRepo *repository.JobRepository,
	userRepo *repository.UserRepository,
	ttsService *service.TTSService,
	catalogService *service.CatalogService,
	store artifact.Store,
	publisher *pubsub.Publisher,
) *Processor {
	return &Processor{
		jobRepo:        jobRepo,
		userRepo:       userRepo,
		ttsService:     ttsService,
		catalogService: catalogService,
		store:          store,
		publisher:      publisher,
	}
}

// Process 处理一条合成任务
func (p *Processor) Process(ctx context.Context, msg *queue.JobMessage) error {
	job, err := p.jobRepo.GetByID(msg.JobID)
	if err != nil {
		return fmt.Errorf("failed to get job: %w", err)
	}

	// 更新状态为处理中
	now := time.Now()
	job.Status = model.JobStatusProcessing
	job.StartedAt = &now
	p.jobRepo.Update(job)

	publishProgress := func(step, status, errMsg string) {
		p.publisher.PublishProgress(ctx, &pubsub.ProgressMessage{
			UserID: msg.UserID,
			JobID:  msg.JobID,
			Status: status,
			Step:   step,
			Error:  errMsg,
		})
	}

	handleError := func(err error) error {
		errMsg := err.Error()
		job.Status = model.JobStatusFailed
		job.ErrorMessage = errMsg
		completedAt := time.Now()
		job.CompletedAt = &completedAt
		job.ElapsedSeconds = int(completedAt.Sub(*job.StartedAt).Seconds())
		p.jobRepo.Update(job)
		publishProgress("", "failed", errMsg)
		return err
	}

	user, err := p.userRepo.GetByID(msg.UserID)
	if err != nil {
		return handleError(fmt.Errorf("failed to get user: %w", err))
	}

	voice, err := p.catalogService.GetVoice(msg.VoiceID, msg.UserID)
	if err != nil {
		return handleError(err)
	}

	log.Printf("Job %d: synthesizing %d chars with voice %q", job.ID, len(msg.Text), voice.Name)
	publishProgress(pubsub.StepSynthesizing, "processing", "")

	data, err := p.ttsService.Synthesize(ctx, voice, msg.Text, msg.Emotion, msg.Speed)
	if err != nil {
		return handleError(err)
	}

	publishProgress(pubsub.StepUploading, "processing", "")

	ref, err := p.store.Put(artifact.PrefixAudio, data, ".wav")
	if err != nil {
		return handleError(fmt.Errorf("failed to store artifact: %w", err))
	}

	record := &model.GenerationRecord{
		UserID:      user.ID,
		VoiceID:     voice.ID,
		TextInput:   msg.Text,
		Settings:    model.GenerationSettings{Speed: msg.Speed, Pitch: msg.Pitch, Emotion: msg.Emotion},
		ArtifactRef: ref,
	}

	// 配额扣减与历史记录同事务提交；队列里排队期间配额被耗尽的任务在这里失败
	if err := p.ttsService.CommitGeneration(user, record); err != nil {
		if errors.Is(err, service.ErrQuotaExhausted) {
			return handleError(service.ErrQuotaExhausted)
		}
		return handleError(fmt.Errorf("failed to commit generation: %w", err))
	}

	completedAt := time.Now()
	job.Status = model.JobStatusCompleted
	job.ArtifactRef = ref
	job.CompletedAt = &completedAt
	job.ElapsedSeconds = int(completedAt.Sub(*job.StartedAt).Seconds())
	if err := p.jobRepo.Update(job); err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	p.publisher.PublishProgress(ctx, &pubsub.ProgressMessage{
		UserID:      msg.UserID,
		JobID:       msg.JobID,
		Status:      "completed",
		Step:        pubsub.StepDone,
		ArtifactRef: ref,
	})

	log.Printf("Job %d: completed in %ds, artifact=%s", job.ID, job.ElapsedSeconds, ref)
	return nil
}
