package handler

import (
	"github.com/gin-gonic/gin"

	appgenre "github.com/xiebiao/bookshop/internal/application/genre"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// GenreHandler 分类HTTP处理器
type GenreHandler struct {
	manageGenresUseCase *appgenre.ManageGenresUseCase
}

// NewGenreHandler 创建分类处理器
func NewGenreHandler(manageGenresUseCase *appgenre.ManageGenresUseCase) *GenreHandler {
	return &GenreHandler{manageGenresUseCase: manageGenresUseCase}
}

// ListGenres 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Success      200 {object} response.Response{data=[]appgenre.GenreInfo}
// @Router       /api/v1/genres [get]
func (h *GenreHandler) ListGenres(c *gin.Context) {
	result, err := h.manageGenresUseCase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateGenre 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.GenreRequest true "分类名"
// @Success      200 {object} response.Response{data=appgenre.GenreInfo}
// @Failure      409 {object} response.Response "分类名已存在"
// @Router       /api/v1/admin/genres [post]
func (h *GenreHandler) CreateGenre(c *gin.Context) {
	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	result, err := h.manageGenresUseCase.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RenameGenre 分类改名
// @Summary      分类改名
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.GenreRequest true "新分类名"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/genres/{id} [put]
func (h *GenreHandler) RenameGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	if err := h.manageGenresUseCase.Rename(c.Request.Context(), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "分类已更新")
}

// DeleteGenre 删除分类
// @Summary      删除分类
// @Description  同时解除图书与该分类的关联，图书本身不受影响
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/admin/genres/{id} [delete]
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.manageGenresUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "分类已删除")
}
