package dto

// RegisterRequest HTTP注册请求
// 密码强度（必须含字母和数字）在领域服务中校验，这里只做长度约束
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"an.nguyen@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50" example:"Nguyễn Văn An"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest HTTP修改资料请求
type UpdateProfileRequest struct {
	Nickname string `json:"nickname" binding:"required,min=2,max=50"`
	Address  string `json:"address" binding:"omitempty,max=500"`
}

// RequestPasswordResetRequest HTTP申请密码重置请求
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ConfirmPasswordResetRequest HTTP确认密码重置请求
type ConfirmPasswordResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=20"`
}
