package service

import (
	"go.uber.org/zap"

	"github.com/nguyenbaduy011/IE221-be/config"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// Service 所有业务服务的聚合入口
type Service struct {
	User        UserService
	Subject     SubjectService
	Course      CourseService
	Enrollment  EnrollmentService
	Progress    ProgressService
	Assessment  AssessmentService
	Stats       StatsService
	Export      ExportService
	DailyReport DailyReportService
}

// NewService 创建 Service 聚合
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		User:        NewUserService(repo, logger),
		Subject:     NewSubjectService(repo, logger),
		Course:      NewCourseService(repo, logger),
		Enrollment:  NewEnrollmentService(repo, logger),
		Progress:    NewProgressService(repo, cfg, logger),
		Assessment:  NewAssessmentService(repo, logger),
		Stats:       NewStatsService(repo, logger),
		Export:      NewExportService(repo, logger),
		DailyReport: NewDailyReportService(repo, logger),
	}
}
