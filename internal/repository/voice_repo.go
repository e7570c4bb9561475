package repository

import (
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
)

type VoiceRepository struct {
	db *gorm.DB
}

func NewVoiceRepository(db *gorm.DB) *VoiceRepository {
	return &VoiceRepository{db: db}
}

func (r *VoiceRepository) Create(voice *model.Voice) error {
	return r.db.Create(voice).Error
}

func (r *VoiceRepository) GetByID(id int64) (*model.Voice, error) {
	var voice model.Voice
	err := r.db.Where("id = ?", id).First(&voice).Error
	if err != nil {
		return nil, err
	}
	return &voice, nil
}

// ListVisible 返回全部预置声音；userID 非空时附加该用户拥有的 cloned/designed 声音
func (r *VoiceRepository) ListVisible(userID *int64) ([]model.Voice, error) {
	var voices []model.Voice

	query := r.db.Where("type = ?", model.VoiceTypePreset)
	if userID != nil {
		query = query.Or("user_id = ? AND type IN ?", *userID,
			[]string{model.VoiceTypeCloned, model.VoiceTypeDesigned})
	}

	err := query.Order("id").Find(&voices).Error
	if err != nil {
		return nil, err
	}
	return voices, nil
}

// CountPresets 统计预置声音数量，用于启动时判断是否需要播种
func (r *VoiceRepository) CountPresets() (int64, error) {
	var count int64
	err := r.db.Model(&model.Voice{}).
		Where("type = ?", model.VoiceTypePreset).
		Count(&count).Error
	return count, err
}

// CreateBatch 批量创建（播种预置声音）
func (r *VoiceRepository) CreateBatch(voices []model.Voice) error {
	return r.db.Create(&voices).Error
}
