package dto

// PaymentDetails 模拟支付信息。只保留卡号末四位用于展示，其余不落库。
type PaymentDetails struct {
	CardNumber string `json:"card_number"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// SubscribeRequest 订阅变更请求
type SubscribeRequest struct {
	Tier           string         `json:"tier" binding:"required"`
	PaymentDetails PaymentDetails `json:"payment_details"`
}

// SubscribeResponse 订阅变更响应
type SubscribeResponse struct {
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
}
