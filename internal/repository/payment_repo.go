package repository

import (
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreateTx 在外部事务内追加支付流水（与账户档位更新同事务提交）
func (r *PaymentRepository) CreateTx(tx *gorm.DB, record *model.PaymentRecord) error {
	return tx.Create(record).Error
}

func (r *PaymentRepository) ListByUser(userID int64) ([]model.PaymentRecord, error) {
	var records []model.PaymentRecord
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PaymentRepository) ExistsByTransactionID(txnID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PaymentRecord{}).
		Where("transaction_id = ?", txnID).
		Count(&count).Error
	return count > 0, err
}
