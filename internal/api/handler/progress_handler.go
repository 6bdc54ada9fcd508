package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/service"
	"github.com/nguyenbaduy011/IE221-be/pkg/response"
)

// ProgressHandler 学习进度模块 HTTP 处理器
type ProgressHandler struct {
	progressSvc service.ProgressService
}

// NewProgressHandler 创建 ProgressHandler
func NewProgressHandler(progressSvc service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressSvc: progressSvc}
}

// StartSubject 显式开始科目
// POST /api/v1/user-subjects/:id/start
func (h *ProgressHandler) StartSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "进度ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	us, err := h.progressSvc.StartSubject(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, us)
}

// ToggleTask 勾选/取消任务，附带耗时与产出物链接
// PUT /api/v1/user-tasks/:id
func (h *ProgressHandler) ToggleTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "任务ID不能为空")
		return
	}

	var req dto.ToggleTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ut, err := h.progressSvc.ToggleTask(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, ut)
}

// FinishSubject 完成科目（强制收束全部任务并分类完成态）
// POST /api/v1/user-subjects/:id/finish
func (h *ProgressHandler) FinishSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "进度ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	us, err := h.progressSvc.FinishSubject(c.Request.Context(), id, callerID)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, us)
}

// GetUserSubject 获取单条进度详情（含任务清单）
// GET /api/v1/user-subjects/:id
func (h *ProgressHandler) GetUserSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "进度ID不能为空")
		return
	}

	us, err := h.progressSvc.GetUserSubject(c.Request.Context(), id)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, us)
}

// ListMyProgress 当前用户的全部科目进度
// GET /api/v1/user-subjects/me
func (h *ProgressHandler) ListMyProgress(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.progressSvc.ListByUser(c.Request.Context(), callerID)
	if err != nil {
		h.handleProgressError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleProgressError 统一处理进度模块业务错误
func (h *ProgressHandler) handleProgressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserSubjectNotFound):
		response.NotFound(c, 15001, "进度记录不存在")
	case errors.Is(err, service.ErrUserTaskNotFound):
		response.NotFound(c, 15002, "任务记录不存在")
	case errors.Is(err, service.ErrNotProgressOwner):
		response.Forbidden(c, 15003, "只能操作本人的进度")
	case errors.Is(err, service.ErrNegativeDuration):
		response.BadRequest(c, 15004, "耗时不能为负数")
	default:
		response.InternalError(c)
	}
}
