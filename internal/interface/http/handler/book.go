package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase   *appbook.ListBooksUseCase
	getBookUseCase     *appbook.GetBookUseCase
	publishBookUseCase *appbook.PublishBookUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	publishBookUseCase *appbook.PublishBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:   listBooksUseCase,
		getBookUseCase:     getBookUseCase,
		publishBookUseCase: publishBookUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页浏览，支持标题/作者/出版社关键字、分类过滤与价格排序
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码，默认1"
// @Param        page_size query int false "每页大小，默认20"
// @Param        keyword query string false "搜索关键字"
// @Param        genre_id query int false "分类ID"
// @Param        sort_by query string false "排序：newest | price_asc | price_desc"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	list, total, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     page,
		PageSize: pageSize,
		Keyword:  req.Keyword,
		GenreID:  req.GenreID,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, list, total, page, pageSize)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookInfo}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PublishBook 上架图书
// @Summary      上架图书
// @Description  管理员上架新书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookInfo}
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/admin/books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	result, err := h.publishBookUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Publisher:   req.Publisher,
		PublishDate: req.PublishDate,
		Price:       req.Price,
		Stock:       req.Stock,
		CoverURL:    req.CoverURL,
		Description: req.Description,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBook 修改图书
// @Summary      修改图书
// @Description  管理员修改图书信息，并发修改冲突返回40901
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "修改字段"
// @Success      200 {object} response.Response{data=appbook.BookInfo}
// @Failure      409 {object} response.Response "并发更新冲突"
// @Router       /api/v1/admin/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40902, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), id, appbook.UpdateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Publisher:   req.Publisher,
		PublishDate: req.PublishDate,
		Price:       req.Price,
		Stock:       req.Stock,
		CoverURL:    req.CoverURL,
		Description: req.Description,
		GenreIDs:    req.GenreIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteBook 下架图书
// @Summary      下架图书
// @Description  软删除；被订单或购物车引用的图书返回40008
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "图书被引用"
// @Router       /api/v1/admin/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMessage(c, "图书已下架")
}

// =========================================
// handler包内共享工具
// =========================================

// parseIDParam 解析路径参数中的正整数ID
// 失败时已写入错误响应，调用方直接return即可
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "非法的"+name+"参数")
		return 0, false
	}
	return uint(id), true
}

// queryInt 解析query参数为整数，缺失或非法时返回0
func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

// normalizePage 填充分页默认值
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
