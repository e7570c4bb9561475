package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/repository"
)

var (
	ErrQuotaExhausted  = errors.New("今日生成次数已用完")
	ErrUnauthenticated = errors.New("无效的访问凭证")
)

type QuotaService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewQuotaService(userRepo *repository.UserRepository, cfg *config.Config) *QuotaService {
	return &QuotaService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Authorize 按 API Key 鉴权并检查配额。Basic 档位余量为 0 时拒绝，
// 付费档位不限量直接放行。
func (s *QuotaService) Authorize(apiKey string) (*model.User, error) {
	if apiKey == "" {
		return nil, ErrUnauthenticated
	}

	user, err := s.userRepo.GetByAPIKey(apiKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if !user.IsPaidTier() && user.DailyGenerationsLeft <= 0 {
		return nil, ErrQuotaExhausted
	}

	return user, nil
}

// AuthorizeByID 按用户 ID 检查配额（JWT 登录态走这条路径）
func (s *QuotaService) AuthorizeByID(userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	if !user.IsPaidTier() && user.DailyGenerationsLeft <= 0 {
		return nil, ErrQuotaExhausted
	}

	return user, nil
}

// Consume 扣减一次配额。付费档位不限量，不扣减直接成功；
// Basic 档位走条件更新，余量已为 0 时返回 ErrQuotaExhausted。
func (s *QuotaService) Consume(user *model.User) error {
	if user.IsPaidTier() {
		return nil
	}

	ok, err := s.userRepo.ConsumeGeneration(user.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrQuotaExhausted
	}

	user.DailyGenerationsLeft--
	return nil
}

// ResetAllAllowances 将所有用户配额恢复到其档位额度
func (s *QuotaService) ResetAllAllowances() error {
	tierQuotas := make(map[string]int, len(s.cfg.Subscription.Tiers))
	for name, tier := range s.cfg.Subscription.Tiers {
		tierQuotas[name] = tier.DailyGenerations
	}
	return s.userRepo.ResetAllAllowances(tierQuotas, config.DefaultDailyGenerations)
}

// GetQuotaInfo 获取用户配额信息
func (s *QuotaService) GetQuotaInfo(userID int64) (*dto.QuotaInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	return &dto.QuotaInfo{
		Tier:                 user.SubscriptionTier,
		DailyGenerationsLeft: user.DailyGenerationsLeft,
		Unlimited:            user.IsPaidTier(),
	}, nil
}
