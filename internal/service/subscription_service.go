package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/repository"
)

type SubscriptionService struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	paymentRepo *repository.PaymentRepository
	authService *AuthService
	cfg         *config.Config
}

func NewSubscriptionService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	paymentRepo *repository.PaymentRepository,
	authService *AuthService,
	cfg *config.Config,
) *SubscriptionService {
	return &SubscriptionService{
		db:          db,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		authService: authService,
		cfg:         cfg,
	}
}

// ChangeTier 变更订阅档位：到期时间顺延 30 天，配额重置为新档位额度，
// 并在同一事务内落一条模拟支付记录。
func (s *SubscriptionService) ChangeTier(userID int64, req *dto.SubscribeRequest) (*dto.SubscribeResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tier := s.cfg.Subscription.TierFor(req.Tier)
	expiry := time.Now().AddDate(0, 0, 30)

	payment := &model.PaymentRecord{
		UserID:        user.ID,
		Tier:          req.Tier,
		Amount:        tier.Price,
		PaymentMethod: maskCardNumber(req.PaymentDetails.CardNumber),
		TransactionID: "SIM_TXN_" + uuid.NewString(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.UpdateSubscription(tx, user.ID, req.Tier, expiry, tier.DailyGenerations); err != nil {
			return err
		}
		return s.paymentRepo.CreateTx(tx, payment)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	return &dto.SubscribeResponse{
		Message: fmt.Sprintf("已切换到 %s 订阅", req.Tier),
		User:    s.authService.BuildUserInfo(updated),
	}, nil
}

// ListPayments 列出用户的支付记录
func (s *SubscriptionService) ListPayments(userID int64) ([]model.PaymentRecord, error) {
	return s.paymentRepo.ListByUser(userID)
}

// maskCardNumber 只保留卡号末四位，其余信息不落库
func maskCardNumber(cardNumber string) string {
	last4 := "0000"
	if len(cardNumber) >= 4 {
		last4 = cardNumber[len(cardNumber)-4:]
	}
	return "Simulated Card **** " + last4
}
