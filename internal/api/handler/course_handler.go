package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/service"
	pkgerrors "github.com/nguyenbaduy011/IE221-be/pkg/errors"
	"github.com/nguyenbaduy011/IE221-be/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// CreateCourse 创建课程（至少挂载一个科目）
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, course)
}

// GetCourse 获取课程详情
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// ListCourses 获取课程列表
// GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": courses})
}

// UpdateCourse 更新课程；起止日期变更后状态按日期重算
// PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse 删除课程及其全部关联数据
// DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// AttachSubject 向课程挂载科目（已有模板或现场新建二选一）
// POST /api/v1/courses/:id/subjects
func (h *CourseHandler) AttachSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.AttachSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cs, err := h.courseSvc.AttachSubject(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, cs)
}

// DetachSubject 将科目从课程移除（级联清理学员进度）
// DELETE /api/v1/courses/:id/subjects/:csId
func (h *CourseHandler) DetachSubject(c *gin.Context) {
	id := c.Param("id")
	csID := c.Param("csId")
	if id == "" || csID == "" {
		response.BadRequest(c, 10001, "参数不能为空")
		return
	}

	if err := h.courseSvc.DetachSubject(c.Request.Context(), id, csID); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListCourseSubjects 按 position 顺序列出课程内科目（含任务）
// GET /api/v1/courses/:id/subjects
func (h *CourseHandler) ListCourseSubjects(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	list, err := h.courseSvc.ListSubjects(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// AddSupervisor 添加课程负责人
// POST /api/v1/courses/:id/supervisors
func (h *CourseHandler) AddSupervisor(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	var req dto.AddSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	sup, err := h.courseSvc.AddSupervisor(c.Request.Context(), id, &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.Created(c, sup)
}

// RemoveSupervisor 移除课程负责人；最后一名不可移除
// DELETE /api/v1/courses/:id/supervisors/:supervisorId
func (h *CourseHandler) RemoveSupervisor(c *gin.Context) {
	id := c.Param("id")
	supervisorID := c.Param("supervisorId")
	if id == "" || supervisorID == "" {
		response.BadRequest(c, 10001, "参数不能为空")
		return
	}

	if err := h.courseSvc.RemoveSupervisor(c.Request.Context(), id, supervisorID); err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, nil)
}

// ListSupervisors 列出课程负责人
// GET /api/v1/courses/:id/supervisors
func (h *CourseHandler) ListSupervisors(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课程ID不能为空")
		return
	}

	list, err := h.courseSvc.ListSupervisors(c.Request.Context(), id)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// handleCourseError 统一处理课程模块业务错误
func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		response.NotFound(c, 13001, "课程不存在")
	case errors.Is(err, service.ErrCourseNameTaken):
		response.BadRequest(c, 13002, "课程名称已存在")
	case errors.Is(err, service.ErrCourseDateInvalid):
		response.BadRequest(c, 13003, "课程结束日期不能早于开始日期")
	case errors.Is(err, service.ErrCourseDateFormat):
		response.BadRequest(c, 13004, "日期格式不正确，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 12001, "科目不存在")
	case errors.Is(err, service.ErrSubjectNameTaken):
		response.BadRequest(c, 12002, "科目名称已存在")
	case errors.Is(err, service.ErrAttachTargetRequired):
		response.BadRequest(c, 13005, "必须指定已有科目或提供新科目信息")
	case errors.Is(err, service.ErrDuplicateAttachment):
		response.Conflict(c, 13006, "该科目已挂载到此课程")
	case errors.Is(err, service.ErrCourseSubjectNotFound):
		response.NotFound(c, 13007, "课程内科目不存在")
	case errors.Is(err, service.ErrSupervisorNotFound):
		response.NotFound(c, 13008, "负责人不存在")
	case errors.Is(err, service.ErrSupervisorRole):
		response.BadRequest(c, 13009, "该用户不具备负责人角色")
	case errors.Is(err, service.ErrDuplicateSupervisor):
		response.Conflict(c, 13010, "该用户已是课程负责人")
	case errors.Is(err, service.ErrLastSupervisorRemoval):
		response.BadRequest(c, 13011, "课程必须至少保留一名负责人")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13012, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}
