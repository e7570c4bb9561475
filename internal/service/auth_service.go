package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/config"
	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/pkg/jwt"
	"github.com/novavoice/novavoice_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrUsernameExists     = errors.New("用户名已被使用")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// Register 用户注册，成功后直接签发 Token 并返回 API Key
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	// 检查邮箱是否存在
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 检查用户名是否存在
	exists, err = s.userRepo.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	tier := s.cfg.Subscription.TierFor(model.TierBasic)

	user := &model.User{
		Username:             req.Username,
		Email:                req.Email,
		PasswordHash:         string(hashedPassword),
		APIKey:               uuid.NewString(),
		SubscriptionTier:     model.TierBasic,
		DailyGenerationsLeft: tier.DailyGenerations,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  s.BuildUserInfo(user),
	}, nil
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 生成 Token
	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  s.BuildUserInfo(user),
	}, nil
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// BuildUserInfo 组装返回给客户端的用户信息
func (s *AuthService) BuildUserInfo(user *model.User) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		APIKey:           user.APIKey,
		SubscriptionTier: user.SubscriptionTier,
		QuotaInfo: &dto.QuotaInfo{
			Tier:                 user.SubscriptionTier,
			DailyGenerationsLeft: user.DailyGenerationsLeft,
			Unlimited:            user.IsPaidTier(),
		},
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}

	if user.SubscriptionExpiry != nil {
		info.SubscriptionExpiry = user.SubscriptionExpiry.Format(time.RFC3339)
	}

	return info
}
