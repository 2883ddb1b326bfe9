package dto

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" example:"test"`
	Password string `json:"password" example:"password"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expires_in" example:"3600"`
}
