package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyenbaduy011/IE221-be/internal/service"
	"github.com/nguyenbaduy011/IE221-be/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportProgressMatrix 导出课程进度矩阵
// GET /api/v1/courses/:id/export/progress
func (h *ExportHandler) ExportProgressMatrix(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	buf, err := h.exportSvc.ProgressMatrix(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", `attachment; filename="progress.xlsx"`)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

// ExportSchedule 导出课程科目排期（iCalendar）
// GET /api/v1/courses/:id/export/schedule.ics
func (h *ExportHandler) ExportSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	ical, err := h.exportSvc.SubjectSchedule(c.Request.Context(), id)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(ical))
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	default:
		response.InternalError(c)
	}
}
