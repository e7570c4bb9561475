package model

import (
	"time"
)

// 订阅档位
const (
	TierBasic    = "Basic"
	TierPremium  = "Premium"
	TierUltimate = "Ultimate"
)

type User struct {
	ID                   int64      `gorm:"primaryKey" json:"id"`
	Username             string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email                string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash         string     `gorm:"size:255;not null" json:"-"`
	APIKey               string     `gorm:"size:64;uniqueIndex;not null" json:"api_key"`
	SubscriptionTier     string     `gorm:"size:20;default:Basic" json:"subscription_tier"`
	SubscriptionExpiry   *time.Time `json:"subscription_expiry,omitempty"`
	DailyGenerationsLeft int        `gorm:"default:10" json:"daily_generations_left"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsPaidTier Premium/Ultimate 不消耗每日配额
func (u *User) IsPaidTier() bool {
	return u.SubscriptionTier == TierPremium || u.SubscriptionTier == TierUltimate
}
