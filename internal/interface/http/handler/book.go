package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookapi/internal/application/book"
	"github.com/xiebiao/bookapi/internal/domain/book"
	"github.com/xiebiao/bookapi/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/response"
)

// BookHandler 图书HTTP处理器
// 只负责参数绑定、调用用例和状态码映射，结果判定在用例中完成
type BookHandler struct {
	useCase *appbook.UseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(useCase *appbook.UseCase) *BookHandler {
	return &BookHandler{useCase: useCase}
}

// List 图书列表
// @Summary      图书列表
// @Description  返回全部图书；带author或category参数时按该字段精确过滤，两者同时指定返回400
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        author    query string false "作者（精确匹配）"
// @Param        category  query string false "分类（精确匹配）"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "author与category同时指定"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return
	}
	if q.Author != "" && q.Category != "" {
		response.Error(c, book.ErrConflictingFilters)
		return
	}

	var (
		books []*book.Book
		err   error
	)
	ctx := c.Request.Context()
	switch {
	case q.Author != "":
		books, err = h.useCase.ByAuthor(ctx, q.Author)
	case q.Category != "":
		books, err = h.useCase.ByCategory(ctx, q.Category)
	default:
		books, err = h.useCase.List(ctx)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books))
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id  path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      400 {object} response.Response "ID不合法"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBook(b))
}

// Create 创建图书
// @Summary      创建图书
// @Description  请求体中的id被忽略，由存储分配
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=dto.BookResponse}
// @Header       201 {string} Location "/api/books/{id}"
// @Failure      400 {object} response.Response{data=[]book.FieldError} "字段校验失败"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.useCase.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		useCaseError(c, err)
		return
	}

	location := strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + strconv.FormatUint(uint64(created.ID), 10)
	response.Created(c, location, dto.FromBook(created))
}

// Update 更新图书
// @Summary      更新图书
// @Description  路径ID必须与请求体ID一致，成功返回204
// @Tags         图书
// @Accept       json
// @Security     BearerAuth
// @Param        id       path int             true "图书ID"
// @Param        request  body dto.BookRequest true "图书信息"
// @Success      204 "更新成功"
// @Failure      400 {object} response.Response "ID不一致或字段校验失败"
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      500 {object} response.Response "更新冲突"
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 字段校验失败时请求体已解析，先判断ID是否一致
		if _, ok := dto.FieldErrors(err); ok && req.ID != id {
			response.Error(c, book.ErrIDMismatch)
			return
		}
		bindError(c, err)
		return
	}

	if err := h.useCase.Update(c.Request.Context(), id, req.ToEntity()); err != nil {
		useCaseError(c, err)
		return
	}

	response.NoContent(c)
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id  path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Page 分页查询
// @Summary      分页查询
// @Description  page从1开始；pageSize超过100时按100处理；响应头X-Total-Count为总数
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码" default(1)
// @Param        pageSize  query int false "每页数量" default(5)
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Header       200 {int} X-Total-Count "图书总数"
// @Failure      400 {object} response.Response "分页参数不合法"
// @Router       /api/books/page [get]
func (h *BookHandler) Page(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, book.ErrInvalidPage.WithCause(err))
		return
	}

	res, err := h.useCase.Page(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(res.Total, 10))
	response.Success(c, dto.FromBooks(res.Items))
}

// ByAuthor 按作者查询
// @Summary      按作者查询
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        author  query string true "作者（精确匹配，区分大小写）"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "缺少author参数"
// @Router       /api/books/author [get]
func (h *BookHandler) ByAuthor(c *gin.Context) {
	var q dto.AuthorQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	books, err := h.useCase.ByAuthor(c.Request.Context(), q.Author)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books))
}

// ByCategory 按分类查询
// @Summary      按分类查询
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        category  query string true "分类（精确匹配，区分大小写）"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      400 {object} response.Response "缺少category参数"
// @Router       /api/books/category [get]
func (h *BookHandler) ByCategory(c *gin.Context) {
	var q dto.CategoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	books, err := h.useCase.ByCategory(c.Request.Context(), q.Category)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.FromBooks(books))
}

// parseID 解析路径参数id，必须是正整数
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, book.ErrInvalidID
	}
	return uint(id), nil
}

// bindError 绑定失败：校验错误带逐字段详情，其他（JSON格式错误等）统一为ErrBindError
func bindError(c *gin.Context, err error) {
	if fields, ok := dto.FieldErrors(err); ok {
		response.ErrorWithData(c, book.ErrInvalidBook, fields)
		return
	}
	response.Error(c, apperrors.ErrBindError.WithCause(err))
}

// useCaseError 用例错误，校验错误带逐字段详情
func useCaseError(c *gin.Context, err error) {
	var vErr *book.ValidationError
	if errors.As(err, &vErr) {
		response.ErrorWithData(c, book.ErrInvalidBook, vErr.Fields)
		return
	}
	response.Error(c, err)
}
