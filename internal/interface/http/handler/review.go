package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookshop/internal/application/review"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// ReviewHandler 评价HTTP处理器
type ReviewHandler struct {
	listReviewsUseCase    *appreview.ListReviewsUseCase
	createReviewUseCase   *appreview.CreateReviewUseCase
	updateReviewUseCase   *appreview.UpdateReviewUseCase
	evaluateReviewUseCase *appreview.EvaluateReviewUseCase
	deleteReviewUseCase   *appreview.DeleteReviewUseCase
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(
	listReviewsUseCase *appreview.ListReviewsUseCase,
	createReviewUseCase *appreview.CreateReviewUseCase,
	updateReviewUseCase *appreview.UpdateReviewUseCase,
	evaluateReviewUseCase *appreview.EvaluateReviewUseCase,
	deleteReviewUseCase *appreview.DeleteReviewUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		listReviewsUseCase:    listReviewsUseCase,
		createReviewUseCase:   createReviewUseCase,
		updateReviewUseCase:   updateReviewUseCase,
		evaluateReviewUseCase: evaluateReviewUseCase,
		deleteReviewUseCase:   deleteReviewUseCase,
	}
}

// ListReviews 评价列表
// @Summary      图书评价列表
// @Description  按净赞数降序；登录用户附带自己的表态状态
// @Tags         评价
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        page query int false "页码"
// @Param        page_size query int false "每页大小"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	list, total, err := h.listReviewsUseCase.Execute(c.Request.Context(), appreview.ListReviewsRequest{
		BookID:   bookID,
		ViewerID: middleware.GetUserID(c), // 未登录为0
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, list, total, page, pageSize)
}

// CreateReview 发表评价
// @Summary      发表评价
// @Description  每人每本书限一条
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.CreateReviewRequest true "评分与内容"
// @Success      200 {object} response.Response{data=appreview.CreateReviewResponse}
// @Failure      409 {object} response.Response "重复评价"
// @Router       /api/v1/books/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.createReviewUseCase.Execute(c.Request.Context(), appreview.CreateReviewRequest{
		UserID:  userID,
		BookID:  bookID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateReview 修改评价
// @Summary      修改评价
// @Description  只能修改自己的评价，评分与内容整体覆盖
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Param        request body dto.CreateReviewRequest true "评分与内容"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "非评价所有者"
// @Router       /api/v1/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	err := h.updateReviewUseCase.Execute(c.Request.Context(), appreview.UpdateReviewRequest{
		UserID:   userID,
		ReviewID: reviewID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "评价已更新")
}

// EvaluateReview 点赞/点踩
// @Summary      对评价表态
// @Description  再次提交相同方向即撤销，相反方向则切换
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Param        request body dto.EvaluateReviewRequest true "表态方向"
// @Success      200 {object} response.Response{data=appreview.EvaluateReviewResponse}
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /api/v1/reviews/{id}/evaluate [post]
func (h *ReviewHandler) EvaluateReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.EvaluateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)
	result, err := h.evaluateReviewUseCase.Execute(c.Request.Context(), appreview.EvaluateReviewRequest{
		UserID:   userID,
		ReviewID: reviewID,
		IsLike:   *req.IsLike,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteReview 删除评价
// @Summary      删除评价
// @Description  只能删除自己的评价，管理员可删除任意评价
// @Tags         评价
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "非评价所有者"
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID := middleware.MustGetUserID(c)
	err := h.deleteReviewUseCase.Execute(c.Request.Context(), userID, reviewID, middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "评价已删除")
}
