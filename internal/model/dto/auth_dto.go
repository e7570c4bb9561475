package dto

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=32"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// UserInfo 用户信息（返回给客户端）
type UserInfo struct {
	ID                 int64      `json:"id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	APIKey             string     `json:"api_key,omitempty"`
	SubscriptionTier   string     `json:"subscription_tier"`
	SubscriptionExpiry string     `json:"subscription_expiry,omitempty"`
	QuotaInfo          *QuotaInfo `json:"quota_info,omitempty"`
	CreatedAt          string     `json:"created_at,omitempty"`
}

// QuotaInfo 配额信息
type QuotaInfo struct {
	Tier                 string `json:"tier"`
	DailyGenerationsLeft int    `json:"daily_generations_left"`
	Unlimited            bool   `json:"unlimited"`
}
