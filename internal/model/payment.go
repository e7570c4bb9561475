package model

import (
	"time"
)

// PaymentRecord 模拟支付流水，只追加
type PaymentRecord struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Tier          string    `gorm:"size:20;not null" json:"tier"`
	Amount        float64   `gorm:"type:decimal(10,2)" json:"amount"`
	PaymentMethod string    `gorm:"size:50" json:"payment_method"` // 如 "Simulated Card **** 1234"
	TransactionID string    `gorm:"size:100;uniqueIndex;not null" json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}
