package handler

import (
	"github.com/gin-gonic/gin"

	appadmin "github.com/xiebiao/bookshop/internal/application/admin"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// AdminHandler 后台管理HTTP处理器
// 订单/图书/分类的后台操作复用各自的Handler，这里只承载
// 看板统计与用户管理
type AdminHandler struct {
	dashboardUseCase   *appadmin.DashboardUseCase
	manageUsersUseCase *appadmin.ManageUsersUseCase
}

// NewAdminHandler 创建后台处理器
func NewAdminHandler(
	dashboardUseCase *appadmin.DashboardUseCase,
	manageUsersUseCase *appadmin.ManageUsersUseCase,
) *AdminHandler {
	return &AdminHandler{
		dashboardUseCase:   dashboardUseCase,
		manageUsersUseCase: manageUsersUseCase,
	}
}

// Dashboard 经营看板
// @Summary      经营看板
// @Description  订单状态分布、营收、热销榜与低库存预警
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appadmin.DashboardResponse}
// @Router       /api/v1/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	result, err := h.dashboardUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListUsers 用户列表
// @Summary      用户列表
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        keyword query string false "邮箱/昵称关键字"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页大小"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := normalizePage(
		queryInt(c, "page"),
		queryInt(c, "page_size"),
	)

	list, total, err := h.manageUsersUseCase.List(c.Request.Context(), page, pageSize, c.Query("keyword"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, list, total, page, pageSize)
}

// DeleteUser 删除用户
// @Summary      删除用户（软删除）
// @Description  不允许删除自己
// @Tags         后台
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "用户ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if id == middleware.MustGetUserID(c) {
		response.ErrorWithCode(c, 40000, "不能删除当前登录账号")
		return
	}

	if err := h.manageUsersUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "用户已删除")
}
