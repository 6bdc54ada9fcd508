package dto

// ── 科目模板模块 DTO ──

// CreateSubjectRequest 创建科目模板请求（科目与模板任务原子创建）
type CreateSubjectRequest struct {
	Name          string   `json:"name"           binding:"required,min=2,max=100"`
	MaxScore      int      `json:"max_score"      binding:"min=0"`
	EstimatedDays int      `json:"estimated_days" binding:"min=0"`
	ImageURL      string   `json:"image_url"      binding:"omitempty,max=255"`
	TaskNames     []string `json:"task_names"     binding:"omitempty,dive,required,max=255"`
}

// UpdateSubjectRequest 更新科目模板请求
type UpdateSubjectRequest struct {
	Name          *string `json:"name"           binding:"omitempty,min=2,max=100"`
	MaxScore      *int    `json:"max_score"      binding:"omitempty,min=0"`
	EstimatedDays *int    `json:"estimated_days" binding:"omitempty,min=0"`
	ImageURL      *string `json:"image_url"      binding:"omitempty,max=255"`
}

// SubjectResponse 科目模板响应
type SubjectResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	MaxScore      int            `json:"max_score"`
	EstimatedDays int            `json:"estimated_days"`
	ImageURL      string         `json:"image_url,omitempty"`
	Tasks         []TaskResponse `json:"tasks,omitempty"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
}

// TaskResponse 任务响应（模板任务与课程内任务共用）
type TaskResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Position     int    `json:"position"`
	TaskableKind string `json:"taskable_kind"`
	TaskableID   string `json:"taskable_id"`
}
