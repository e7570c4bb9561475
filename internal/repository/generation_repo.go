package repository

import (
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
)

type GenerationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

func (r *GenerationRepository) Create(record *model.GenerationRecord) error {
	return r.db.Create(record).Error
}

// CreateTx 在外部事务内追加记录（与配额扣减同事务提交）
func (r *GenerationRepository) CreateTx(tx *gorm.DB, record *model.GenerationRecord) error {
	return tx.Create(record).Error
}

// HistoryRow 历史查询结果（联表取声音名）
type HistoryRow struct {
	model.GenerationRecord
	VoiceName string `json:"voice_name"`
}

// ListByUser 按时间倒序返回用户的生成历史
func (r *GenerationRepository) ListByUser(userID int64) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.db.Model(&model.GenerationRecord{}).
		Select("generation_records.*, voices.name AS voice_name").
		Joins("JOIN voices ON voices.id = generation_records.voice_id").
		Where("generation_records.user_id = ?", userID).
		Order("generation_records.generated_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GenerationRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.GenerationRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
