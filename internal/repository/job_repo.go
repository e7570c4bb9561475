package repository

import (
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(job *model.SynthesisJob) error {
	return r.db.Create(job).Error
}

func (r *JobRepository) GetByID(id int64) (*model.SynthesisJob, error) {
	var job model.SynthesisJob
	err := r.db.Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) Update(job *model.SynthesisJob) error {
	return r.db.Save(job).Error
}

func (r *JobRepository) ListByUser(userID int64, limit int) ([]model.SynthesisJob, error) {
	var jobs []model.SynthesisJob
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
