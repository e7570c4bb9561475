package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/api/middleware"
	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/pkg/response"
	"github.com/novavoice/novavoice_go_server/internal/repository"
	"github.com/novavoice/novavoice_go_server/internal/service"
	"github.com/novavoice/novavoice_go_server/internal/testutil"
)

func setupSubscriptionHandler(t *testing.T) (*gin.Engine, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	cfg := handlerTestConfig()

	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	authService := service.NewAuthService(userRepo, cfg)
	subscriptionService := service.NewSubscriptionService(db, userRepo, paymentRepo, authService, cfg)
	handler := NewSubscriptionHandler(subscriptionService)

	router := gin.New()
	authed := router.Group("")
	authed.Use(middleware.Auth(cfg.JWT.Secret, userRepo))
	{
		authed.POST("/subscribe", handler.Subscribe)
		authed.GET("/user/payments", handler.ListPayments)
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return router, db, cleanup
}

func TestSubscriptionHandler_Subscribe(t *testing.T) {
	router, db, cleanup := setupSubscriptionHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithAPIKey("sub-key"), testutil.WithAllowance(0))

	w := performAPIKeyRequest(router, "POST", "/subscribe", "sub-key", dto.SubscribeRequest{
		Tier:           model.TierPremium,
		PaymentDetails: dto.PaymentDetails{CardNumber: "4111111111111234"},
	})
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code, resp.Message)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, model.TierPremium, updated.SubscriptionTier)
	assert.Equal(t, 100, updated.DailyGenerationsLeft)
	require.NotNil(t, updated.SubscriptionExpiry)
}

func TestSubscriptionHandler_Subscribe_MissingTier(t *testing.T) {
	router, db, cleanup := setupSubscriptionHandler(t)
	defer cleanup()

	testutil.TestUser(t, db, testutil.WithAPIKey("notier-key"))

	w := performAPIKeyRequest(router, "POST", "/subscribe", "notier-key", map[string]interface{}{})
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestSubscriptionHandler_ListPayments(t *testing.T) {
	router, db, cleanup := setupSubscriptionHandler(t)
	defer cleanup()

	testutil.TestUser(t, db, testutil.WithAPIKey("pay-key"))

	w := performAPIKeyRequest(router, "POST", "/subscribe", "pay-key", dto.SubscribeRequest{
		Tier: model.TierUltimate,
	})
	require.Equal(t, response.CodeSuccess, parseResponse(t, w).Code)

	w = performAPIKeyRequest(router, "GET", "/user/payments", "pay-key", nil)
	resp := parseResponse(t, w)
	require.Equal(t, response.CodeSuccess, resp.Code)

	payments := resp.Data.([]interface{})
	require.Len(t, payments, 1)
	payment := payments[0].(map[string]interface{})
	assert.Equal(t, 29.99, payment["amount"])
}

func TestSubscriptionHandler_Subscribe_Unauthenticated(t *testing.T) {
	router, _, cleanup := setupSubscriptionHandler(t)
	defer cleanup()

	req := httptest.NewRequest("POST", "/subscribe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeAuthFailed, resp.Code)
	assert.Equal(t, http.StatusOK, w.Code)
}
