package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/service"
	"github.com/nguyenbaduy011/IE221-be/pkg/response"
)

// EnrollmentHandler 学员注册模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

// Enroll 批量注册学员并扩散进度树
// POST /api/v1/courses/:id/trainees
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.enrollSvc.Enroll(c.Request.Context(), id, &req)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, result)
}

// RemoveTrainee 将学员移出课程（幂等）
// DELETE /api/v1/courses/:id/trainees/:userId
func (h *EnrollmentHandler) RemoveTrainee(c *gin.Context) {
	id := c.Param("id")
	userID := c.Param("userId")
	if id == "" || userID == "" {
		response.BadRequest(c, 10001, "参数不能为空")
		return
	}

	if err := h.enrollSvc.RemoveTrainee(c.Request.Context(), id, userID); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListTrainees 列出课程的注册记录
// GET /api/v1/courses/:id/trainees
func (h *EnrollmentHandler) ListTrainees(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	list, err := h.enrollSvc.ListByCourse(c.Request.Context(), id)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleEnrollmentError 统一处理注册模块业务错误
func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrTraineeNotFound):
		response.NotFound(c, 14001, "学员不存在")
	default:
		response.InternalError(c)
	}
}
