package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/repository"
	"github.com/novavoice/novavoice_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T) (*SubscriptionService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := testConfig()
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	authService := NewAuthService(userRepo, cfg)
	service := NewSubscriptionService(db, userRepo, paymentRepo, authService, cfg)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestSubscriptionService_ChangeTier_Premium(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithAllowance(0))

	resp, err := service.ChangeTier(user.ID, &dto.SubscribeRequest{
		Tier:           model.TierPremium,
		PaymentDetails: dto.PaymentDetails{CardNumber: "4111111111111234", Expiry: "12/30", CVV: "123"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.TierPremium, resp.User.SubscriptionTier)
	assert.Equal(t, 100, resp.User.QuotaInfo.DailyGenerationsLeft)
	assert.True(t, resp.User.QuotaInfo.Unlimited)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, model.TierPremium, updated.SubscriptionTier)
	assert.Equal(t, 100, updated.DailyGenerationsLeft)
	require.NotNil(t, updated.SubscriptionExpiry)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *updated.SubscriptionExpiry, time.Minute)

	var payments []model.PaymentRecord
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, model.TierPremium, payments[0].Tier)
	assert.Equal(t, 9.99, payments[0].Amount)
	assert.True(t, strings.HasPrefix(payments[0].TransactionID, "SIM_TXN_"))
	assert.Equal(t, "Simulated Card **** 1234", payments[0].PaymentMethod)
}

func TestSubscriptionService_ChangeTier_UniqueTransactionIDs(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.ChangeTier(user.ID, &dto.SubscribeRequest{Tier: model.TierPremium})
	require.NoError(t, err)
	_, err = service.ChangeTier(user.ID, &dto.SubscribeRequest{Tier: model.TierUltimate})
	require.NoError(t, err)

	var payments []model.PaymentRecord
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&payments).Error)
	require.Len(t, payments, 2)
	assert.NotEqual(t, payments[0].TransactionID, payments[1].TransactionID)
}

func TestSubscriptionService_ChangeTier_ShortCardNumber(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	_, err := service.ChangeTier(user.ID, &dto.SubscribeRequest{
		Tier:           model.TierUltimate,
		PaymentDetails: dto.PaymentDetails{CardNumber: "99"},
	})
	require.NoError(t, err)

	var payment model.PaymentRecord
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&payment).Error)
	assert.Equal(t, "Simulated Card **** 0000", payment.PaymentMethod)
	assert.Equal(t, 29.99, payment.Amount)
}

func TestSubscriptionService_ChangeTier_UnknownTierDefaults(t *testing.T) {
	service, db, cleanup := setupSubscriptionService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithAllowance(3))

	// 未知档位名按默认额度与零价格处理，不报错
	resp, err := service.ChangeTier(user.ID, &dto.SubscribeRequest{Tier: "Platinum"})
	require.NoError(t, err)
	assert.Equal(t, "Platinum", resp.User.SubscriptionTier)
	assert.Equal(t, 10, resp.User.QuotaInfo.DailyGenerationsLeft)

	var payment model.PaymentRecord
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&payment).Error)
	assert.Equal(t, 0.0, payment.Amount)
}

func TestSubscriptionService_ChangeTier_UserNotFound(t *testing.T) {
	service, _, cleanup := setupSubscriptionService(t)
	defer cleanup()

	_, err := service.ChangeTier(99999, &dto.SubscribeRequest{Tier: model.TierPremium})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
