package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/service"
	"github.com/nguyenbaduy011/IE221-be/pkg/response"
)

// AssessmentHandler 评估模块 HTTP 处理器
type AssessmentHandler struct {
	assessSvc service.AssessmentService
}

// NewAssessmentHandler 创建 AssessmentHandler
func NewAssessmentHandler(assessSvc service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessSvc: assessSvc}
}

// Assess 写入评分与评语（原子）
// POST /api/v1/user-subjects/:id/assess
func (h *AssessmentHandler) Assess(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "进度ID不能为空")
		return
	}

	var req dto.AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	graderID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.assessSvc.Assess(c.Request.Context(), id, &req, graderID)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ListComments 列出进度上的全部评语
// GET /api/v1/user-subjects/:id/comments
func (h *AssessmentHandler) ListComments(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "进度ID不能为空")
		return
	}

	comments, err := h.assessSvc.ListComments(c.Request.Context(), id)
	if err != nil {
		h.handleAssessmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": comments})
}

// handleAssessmentError 统一处理评估模块业务错误
func (h *AssessmentHandler) handleAssessmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserSubjectNotFound):
		response.NotFound(c, 15001, "进度记录不存在")
	case errors.Is(err, service.ErrAssessmentEmpty):
		response.BadRequest(c, 16001, "评分与评语至少需要给出其一")
	case errors.Is(err, service.ErrScoreExceedsMaximum):
		response.BadRequest(c, 16002, "评分不能超过科目满分")
	case errors.Is(err, service.ErrScoreNegative):
		response.BadRequest(c, 16003, "评分不能为负数")
	case errors.Is(err, service.ErrCommentLength):
		response.BadRequest(c, 16004, "评语长度需在 5 到 500 字之间")
	case errors.Is(err, service.ErrSupervisorNotFound):
		response.NotFound(c, 13008, "负责人不存在")
	case errors.Is(err, service.ErrSupervisorRole):
		response.Forbidden(c, 16005, "只有负责人可以评估")
	default:
		response.InternalError(c)
	}
}
