package dto

// ── 注册与进度模块 DTO ──

// EnrollRequest 批量注册学员请求
type EnrollRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
}

// EnrollResponse 批量注册结果：added 新建完整进度树，skipped 幂等跳过
type EnrollResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// ToggleTaskRequest 任务勾选请求
type ToggleTaskRequest struct {
	Done        bool     `json:"done"`
	SpentTime   *float64 `json:"spent_time"   binding:"omitempty"`
	ArtifactURL *string  `json:"artifact_url" binding:"omitempty,max=255"`
}

// UserTaskResponse 学员任务响应
type UserTaskResponse struct {
	ID          string   `json:"id"`
	TaskID      string   `json:"task_id"`
	TaskName    string   `json:"task_name,omitempty"`
	Status      string   `json:"status"`
	SpentTime   *float64 `json:"spent_time,omitempty"`
	ArtifactURL string   `json:"artifact_url,omitempty"`
}

// UserSubjectResponse 学员科目进度响应
// status 为惰性求值后的有效状态（截止日已过的未完成项投影为 overdue_not_finished）
type UserSubjectResponse struct {
	ID          string             `json:"id"`
	CourseID    string             `json:"course_id,omitempty"`
	SubjectName string             `json:"subject_name,omitempty"`
	Status      string             `json:"status"`
	Score       *float64           `json:"score,omitempty"`
	MaxScore    int                `json:"max_score,omitempty"`
	StartedAt   string             `json:"started_at,omitempty"`
	CompletedAt string             `json:"completed_at,omitempty"`
	Tasks       []UserTaskResponse `json:"tasks,omitempty"`
}

// UserCourseResponse 学员课程注册响应
type UserCourseResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	CourseID   string `json:"course_id"`
	Status     string `json:"status"`
	JoinedAt   string `json:"joined_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}
