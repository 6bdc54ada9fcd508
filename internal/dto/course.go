package dto

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程请求
// 课程创建时至少挂载一个科目；负责人缺省为创建者本人
type CreateCourseRequest struct {
	Name          string   `json:"name"           binding:"required,min=2,max=100"`
	Link          string   `json:"link"           binding:"omitempty,max=255"`
	ImageURL      string   `json:"image_url"      binding:"omitempty,max=255"`
	StartDate     string   `json:"start_date"     binding:"required"` // "2024-01-01"
	FinishDate    string   `json:"finish_date"    binding:"required"` // "2024-03-31"
	SubjectIDs    []string `json:"subject_ids"    binding:"required,min=1,dive,uuid"`
	SupervisorIDs []string `json:"supervisor_ids" binding:"omitempty,dive,uuid"`
}

// UpdateCourseRequest 更新课程请求
type UpdateCourseRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=100"`
	Link       *string `json:"link"        binding:"omitempty,max=255"`
	ImageURL   *string `json:"image_url"   binding:"omitempty,max=255"`
	StartDate  *string `json:"start_date"`
	FinishDate *string `json:"finish_date"`
}

// AttachSubjectRequest 向课程挂载科目请求
// subject_id 与 new_subject 二选一：引用已有模板或现场新建模板
type AttachSubjectRequest struct {
	SubjectID      string                `json:"subject_id"       binding:"omitempty,uuid"`
	NewSubject     *CreateSubjectRequest `json:"new_subject"      binding:"omitempty"`
	ExtraTaskNames []string              `json:"extra_task_names" binding:"omitempty,dive,required,max=255"`
}

// AddSupervisorRequest 添加课程负责人请求
type AddSupervisorRequest struct {
	SupervisorID string `json:"supervisor_id" binding:"required,uuid"`
}

// CourseResponse 课程响应
type CourseResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Link       string `json:"link,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	StartDate  string `json:"start_date"`
	FinishDate string `json:"finish_date"`
	Status     string `json:"status"`
	CreatorID  string `json:"creator_id"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// CourseSubjectResponse 课程内科目响应
type CourseSubjectResponse struct {
	ID         string           `json:"id"`
	CourseID   string           `json:"course_id"`
	Position   int              `json:"position"`
	StartDate  string           `json:"start_date,omitempty"`
	FinishDate string           `json:"finish_date,omitempty"`
	Subject    *SubjectResponse `json:"subject,omitempty"`
	Tasks      []TaskResponse   `json:"tasks,omitempty"`
}

// SupervisorResponse 课程负责人响应
type SupervisorResponse struct {
	SupervisorID string `json:"supervisor_id"`
	FullName     string `json:"full_name,omitempty"`
	Email        string `json:"email,omitempty"`
	AddedAt      string `json:"added_at"`
}
