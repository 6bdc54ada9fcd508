package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
	"github.com/nguyenbaduy011/IE221-be/internal/service"
	"github.com/nguyenbaduy011/IE221-be/pkg/jwt"
	"github.com/nguyenbaduy011/IE221-be/pkg/response"
)

// DailyReportHandler 日报模块 HTTP 处理器
type DailyReportHandler struct {
	reportSvc service.DailyReportService
}

// NewDailyReportHandler 创建 DailyReportHandler
func NewDailyReportHandler(reportSvc service.DailyReportService) *DailyReportHandler {
	return &DailyReportHandler{reportSvc: reportSvc}
}

// CreateReport 创建日报（学员本人，一课程一天一条）
// POST /api/v1/daily-reports
func (h *DailyReportHandler) CreateReport(c *gin.Context) {
	var req dto.CreateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.Created(c, report)
}

// ListReports 日报列表：学员只见本人，负责人见名下课程，管理员见全部
// GET /api/v1/daily-reports?course_id=xxx&filter_date=2024-01-01&user_id=xxx
func (h *DailyReportHandler) ListReports(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	filter := repository.DailyReportFilter{
		CourseID: c.Query("course_id"),
	}
	if dateParam := c.Query("filter_date"); dateParam != "" {
		d, err := time.Parse("2006-01-02", dateParam)
		if err != nil {
			response.BadRequest(c, 10001, "日期格式不正确，应为 YYYY-MM-DD")
			return
		}
		filter.Date = &d
	}

	var (
		reports []dto.DailyReportResponse
		err     error
	)
	if role == jwt.RoleTrainee {
		reports, err = h.reportSvc.ListMine(c.Request.Context(), callerID, filter)
	} else {
		filter.UserID = c.Query("user_id")
		reports, err = h.reportSvc.ListForStaff(c.Request.Context(), callerID, role, filter)
	}
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, gin.H{"list": reports})
}

// GetReport 获取日报详情
// GET /api/v1/daily-reports/:id
func (h *DailyReportHandler) GetReport(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日报ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.GetByID(c.Request.Context(), id, callerID, role)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// UpdateReport 更新日报（仅本人）
// PUT /api/v1/daily-reports/:id
func (h *DailyReportHandler) UpdateReport(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日报ID不能为空")
		return
	}

	var req dto.UpdateDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	report, err := h.reportSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, report)
}

// DeleteReport 删除日报（仅本人）
// DELETE /api/v1/daily-reports/:id
func (h *DailyReportHandler) DeleteReport(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "日报ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.reportSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleReportError 统一处理日报模块业务错误
func (h *DailyReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDailyReportNotFound):
		response.NotFound(c, 17001, "日报不存在")
	case errors.Is(err, service.ErrDailyReportExists):
		response.Conflict(c, 17002, "当天该课程的日报已存在")
	case errors.Is(err, service.ErrNotReportOwner):
		response.Forbidden(c, 17003, "只能操作本人的日报")
	case errors.Is(err, service.ErrNotEnrolled):
		response.Forbidden(c, 17004, "未注册该课程")
	case errors.Is(err, service.ErrCourseDateFormat):
		response.BadRequest(c, 10001, "日期格式不正确，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
