package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByAPIKey(apiKey string) (*model.User, error) {
	var user model.User
	err := r.db.Where("api_key = ?", apiKey).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// ConsumeGeneration 原子扣减一次每日配额。条件更新保证计数永不为负、
// 单个请求至多扣减一次；返回是否真正扣减成功。
func (r *UserRepository) ConsumeGeneration(id int64) (bool, error) {
	return r.ConsumeGenerationTx(r.db, id)
}

// ConsumeGenerationTx 同 ConsumeGeneration，但在给定事务内执行，
// 用于将扣减与历史记录写入绑定为一个原子单元。
func (r *UserRepository) ConsumeGenerationTx(tx *gorm.DB, id int64) (bool, error) {
	result := tx.Model(&model.User{}).
		Where("id = ? AND daily_generations_left > 0", id).
		Update("daily_generations_left", gorm.Expr("daily_generations_left - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ResetAllAllowances 将所有用户的每日配额恢复到其档位额度
func (r *UserRepository) ResetAllAllowances(tierQuotas map[string]int, fallback int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for tier, quota := range tierQuotas {
			err := tx.Model(&model.User{}).
				Where("subscription_tier = ?", tier).
				Update("daily_generations_left", quota).Error
			if err != nil {
				return err
			}
		}

		tiers := make([]string, 0, len(tierQuotas))
		for tier := range tierQuotas {
			tiers = append(tiers, tier)
		}
		return tx.Model(&model.User{}).
			Where("subscription_tier NOT IN ?", tiers).
			Update("daily_generations_left", fallback).Error
	})
}

// UpdateSubscription 在事务内更新档位、到期时间与配额
func (r *UserRepository) UpdateSubscription(tx *gorm.DB, id int64, tier string, expiry time.Time, allowance int) error {
	return tx.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"subscription_tier":      tier,
		"subscription_expiry":    expiry,
		"daily_generations_left": allowance,
	}).Error
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}
