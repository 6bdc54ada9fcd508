package dto

// ── 日报模块 DTO ──

// CreateDailyReportRequest 创建日报请求；report_date 缺省为当天
type CreateDailyReportRequest struct {
	CourseID   string `json:"course_id"   binding:"required"`
	Content    string `json:"content"     binding:"omitempty,max=5000"`
	Status     string `json:"status"      binding:"omitempty,oneof=draft submitted"`
	ReportDate string `json:"report_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateDailyReportRequest 更新日报请求
type UpdateDailyReportRequest struct {
	Content *string `json:"content" binding:"omitempty,max=5000"`
	Status  *string `json:"status"  binding:"omitempty,oneof=draft submitted"`
}

// DailyReportResponse 日报响应
type DailyReportResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name,omitempty"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	ReportDate string `json:"report_date"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}
