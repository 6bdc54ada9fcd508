package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// StatsService 统计报表业务接口（只读投影）
type StatsService interface {
	Overview(ctx context.Context) (*dto.OverviewStatsResponse, error)
	RecentActivity(ctx context.Context, limit int) ([]dto.ActivityItem, error)
}

type statsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStatsService 创建 StatsService 实例
func NewStatsService(repo *repository.Repository, logger *zap.Logger) StatsService {
	return &statsService{repo: repo, logger: logger}
}

// Overview 全局概览：课程按日期窗口分桶计数、在读学员去重数、完成率
func (s *statsService) Overview(ctx context.Context) (*dto.OverviewStatsResponse, error) {
	active, upcoming, finished, err := s.repo.Course.CountByDateWindow(ctx, time.Now())
	if err != nil {
		s.logger.Error("统计课程失败", zap.Error(err))
		return nil, err
	}

	trainees, err := s.repo.UserCourse.CountDistinctUsers(ctx)
	if err != nil {
		s.logger.Error("统计学员失败", zap.Error(err))
		return nil, err
	}

	total, done, err := s.repo.UserSubject.CountTotalAndFinished(ctx)
	if err != nil {
		s.logger.Error("统计完成率失败", zap.Error(err))
		return nil, err
	}
	rate := 0.0
	if total > 0 {
		rate = float64(done) / float64(total)
	}

	return &dto.OverviewStatsResponse{
		ActiveCourses:    active,
		UpcomingCourses:  upcoming,
		FinishedCourses:  finished,
		DistinctTrainees: trainees,
		CompletionRate:   rate,
	}, nil
}

// RecentActivity 最近注册动态，按加入时间倒序
func (s *statsService) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	recent, err := s.repo.UserCourse.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("查询最近动态失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ActivityItem, 0, len(recent))
	for i := range recent {
		uc := &recent[i]
		item := dto.ActivityItem{
			UserID:   uc.UserID,
			CourseID: uc.CourseID,
			JoinedAt: uc.JoinedAt.Format(time.RFC3339),
		}
		if uc.User != nil {
			item.UserName = uc.User.FullName
		}
		if uc.Course != nil {
			item.CourseName = uc.Course.Name
		}
		result = append(result, item)
	}
	return result, nil
}
