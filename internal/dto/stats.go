package dto

// ── 统计模块 DTO（只读投影，供报表层消费）──

// OverviewStatsResponse 全局概览
type OverviewStatsResponse struct {
	ActiveCourses    int64   `json:"active_courses"`
	UpcomingCourses  int64   `json:"upcoming_courses"`
	FinishedCourses  int64   `json:"finished_courses"`
	DistinctTrainees int64   `json:"distinct_trainees"`
	CompletionRate   float64 `json:"completion_rate"` // 已完成进度条数 / 总进度条数
}

// ActivityItem 最近动态条目（按加入时间倒序）
type ActivityItem struct {
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name,omitempty"`
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name,omitempty"`
	JoinedAt   string `json:"joined_at"`
}
