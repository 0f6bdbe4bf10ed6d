package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// UserHandler 用户HTTP处理器
type UserHandler struct {
	registerUseCase     *appuser.RegisterUseCase
	loginUseCase        *appuser.LoginUseCase
	logoutUseCase       *appuser.LogoutUseCase
	profileUseCase      *appuser.ProfileUseCase
	verifyEmailUseCase  *appuser.VerifyEmailUseCase
	resendUseCase       *appuser.ResendVerificationUseCase
	requestResetUseCase *appuser.RequestPasswordResetUseCase
	confirmResetUseCase *appuser.ConfirmPasswordResetUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
	profileUseCase *appuser.ProfileUseCase,
	verifyEmailUseCase *appuser.VerifyEmailUseCase,
	resendUseCase *appuser.ResendVerificationUseCase,
	requestResetUseCase *appuser.RequestPasswordResetUseCase,
	confirmResetUseCase *appuser.ConfirmPasswordResetUseCase,
) *UserHandler {
	return &UserHandler{
		registerUseCase:     registerUseCase,
		loginUseCase:        loginUseCase,
		logoutUseCase:       logoutUseCase,
		profileUseCase:      profileUseCase,
		verifyEmailUseCase:  verifyEmailUseCase,
		resendUseCase:       resendUseCase,
		requestResetUseCase: requestResetUseCase,
		confirmResetUseCase: confirmResetUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Description  注册新账号并发送验证邮件
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=appuser.RegisterResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "邮箱已被注册"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Login 用户登录
// @Summary      用户登录
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse}
// @Failure      401 {object} response.Response "密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Logout 用户登出
// @Summary      用户登出
// @Description  当前Token加入黑名单并清除会话
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	token := middleware.GetAccessToken(c)

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "已退出登录")
}

// GetProfile 查询个人资料
// @Summary      查询个人资料
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appuser.ProfileResponse}
// @Router       /api/v1/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.profileUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateProfile 修改个人资料
// @Summary      修改昵称与默认收货地址
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "资料"
// @Success      200 {object} response.Response
// @Router       /api/v1/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	err := h.profileUseCase.Update(c.Request.Context(), userID, appuser.UpdateProfileRequest{
		Nickname: req.Nickname,
		Address:  req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "资料已更新")
}

// VerifyEmail 邮箱验证
// @Summary      邮箱验证
// @Description  消费验证邮件中的一次性令牌
// @Tags         用户
// @Produce      json
// @Param        token query string true "验证令牌"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "令牌已失效"
// @Router       /api/v1/users/verify-email [get]
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.ErrorWithCode(c, 40900, "缺少token参数")
		return
	}

	if err := h.verifyEmailUseCase.Execute(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "邮箱验证成功")
}

// ResendVerification 重发验证邮件
// @Summary      重发验证邮件
// @Description  同一邮箱每小时最多3封
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Failure      429 {object} response.Response "请求过于频繁"
// @Router       /api/v1/users/verify-email/resend [post]
func (h *UserHandler) ResendVerification(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	if err := h.resendUseCase.Execute(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "验证邮件已发送")
}

// RequestPasswordReset 申请密码重置
// @Summary      申请密码重置
// @Description  不论邮箱是否存在均返回成功，防止账号枚举
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RequestPasswordResetRequest true "邮箱"
// @Success      200 {object} response.Response
// @Failure      429 {object} response.Response "请求过于频繁"
// @Router       /api/v1/users/password-reset [post]
func (h *UserHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	if err := h.requestResetUseCase.Execute(c.Request.Context(), req.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "如果该邮箱已注册，重置邮件将在几分钟内送达")
}

// ConfirmPasswordReset 确认密码重置
// @Summary      确认密码重置
// @Description  消费重置令牌并设置新密码，成功后原会话失效
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.ConfirmPasswordResetRequest true "令牌与新密码"
// @Success      200 {object} response.Response
// @Failure      400 {object} response.Response "令牌已失效"
// @Router       /api/v1/users/password-reset/confirm [post]
func (h *UserHandler) ConfirmPasswordReset(c *gin.Context) {
	var req dto.ConfirmPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	if err := h.confirmResetUseCase.Execute(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "密码已重置，请使用新密码登录")
}
