package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/service"
	"github.com/nguyenbaduy011/IE221-be/pkg/response"
)

// SubjectHandler 科目模板模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// CreateSubject 创建科目模板（连同模板任务）
// POST /api/v1/subjects
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.Created(c, subject)
}

// GetSubject 获取科目模板详情（含模板任务）
// GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	subject, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// ListSubjects 获取科目模板列表；支持按名称搜索并排除指定 ID
// GET /api/v1/subjects?q=xxx&exclude=id1,id2
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	query := c.Query("q")
	excludeParam := c.Query("exclude")

	var (
		subjects []dto.SubjectResponse
		err      error
	)
	if query == "" && excludeParam == "" {
		subjects, err = h.subjectSvc.List(c.Request.Context())
	} else {
		var excludeIDs []string
		if excludeParam != "" {
			excludeIDs = strings.Split(excludeParam, ",")
		}
		subjects, err = h.subjectSvc.Search(c.Request.Context(), query, excludeIDs)
	}
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": subjects})
}

// UpdateSubject 更新科目模板
// PUT /api/v1/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subject, err := h.subjectSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// DeleteSubject 删除科目模板；被课程引用时拒绝
// DELETE /api/v1/subjects/:id
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSubjectError 统一处理科目模块业务错误
func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12001, "科目不存在")
	case errors.Is(err, service.ErrSubjectNameTaken):
		response.BadRequest(c, 12002, "科目名称已存在")
	case errors.Is(err, service.ErrSubjectInUse):
		response.Conflict(c, 12003, "科目已被课程引用，无法删除")
	default:
		response.InternalError(c)
	}
}
