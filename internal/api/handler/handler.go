package handler

import "github.com/nguyenbaduy011/IE221-be/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	User        *UserHandler
	Subject     *SubjectHandler
	Course      *CourseHandler
	Enrollment  *EnrollmentHandler
	Progress    *ProgressHandler
	Assessment  *AssessmentHandler
	Stats       *StatsHandler
	Export      *ExportHandler
	DailyReport *DailyReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		User:        NewUserHandler(svc.User),
		Subject:     NewSubjectHandler(svc.Subject),
		Course:      NewCourseHandler(svc.Course),
		Enrollment:  NewEnrollmentHandler(svc.Enrollment),
		Progress:    NewProgressHandler(svc.Progress),
		Assessment:  NewAssessmentHandler(svc.Assessment),
		Stats:       NewStatsHandler(svc.Stats),
		Export:      NewExportHandler(svc.Export),
		DailyReport: NewDailyReportHandler(svc.DailyReport),
	}
}
