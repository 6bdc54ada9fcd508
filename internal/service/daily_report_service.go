package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 日报模块业务错误 ──

var (
	ErrDailyReportNotFound = errors.New("日报不存在")
	ErrDailyReportExists   = errors.New("当天该课程的日报已存在")
	ErrNotReportOwner      = errors.New("只能操作本人的日报")
	ErrNotEnrolled         = errors.New("未注册该课程")
)

// DailyReportService 日报业务接口
// 学员维护本人日报；负责人只读名下课程的日报；管理员只读全部
type DailyReportService interface {
	// Create 创建日报；同一学员同一课程每天最多一条
	Create(ctx context.Context, req *dto.CreateDailyReportRequest, callerID string) (*dto.DailyReportResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateDailyReportRequest, callerID string) (*dto.DailyReportResponse, error)
	Delete(ctx context.Context, id, callerID string) error
	// GetByID 本人或课程管理角色可见
	GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.DailyReportResponse, error)
	ListMine(ctx context.Context, callerID string, filter repository.DailyReportFilter) ([]dto.DailyReportResponse, error)
	// ListForStaff 负责人限定名下课程，管理员不限
	ListForStaff(ctx context.Context, callerID, callerRole string, filter repository.DailyReportFilter) ([]dto.DailyReportResponse, error)
}

type dailyReportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDailyReportService 创建 DailyReportService 实例
func NewDailyReportService(repo *repository.Repository, logger *zap.Logger) DailyReportService {
	return &dailyReportService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *dailyReportService) Create(ctx context.Context, req *dto.CreateDailyReportRequest, callerID string) (*dto.DailyReportResponse, error) {
	// 只有已注册课程的学员才能写该课程的日报
	if _, err := s.repo.UserCourse.GetByUserAndCourse(ctx, callerID, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotEnrolled
		}
		s.logger.Error("查询注册记录失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	reportDate := model.DateOnly(time.Now())
	if req.ReportDate != "" {
		d, err := parseDate(req.ReportDate)
		if err != nil {
			return nil, ErrCourseDateFormat
		}
		reportDate = model.DateOnly(d)
	}

	if _, err := s.repo.DailyReport.GetByUserCourseAndDate(ctx, callerID, req.CourseID, reportDate); err == nil {
		return nil, ErrDailyReportExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询日报失败", zap.Error(err))
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = model.DailyReportDraft
	}

	report := &model.DailyReport{
		UserID:     callerID,
		CourseID:   req.CourseID,
		Content:    req.Content,
		Status:     status,
		ReportDate: reportDate,
	}
	if err := s.repo.DailyReport.Create(ctx, report); err != nil {
		// 并发创建时另一请求可能抢先插入同一天的日报
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDailyReportExists
		}
		s.logger.Error("创建日报失败", zap.String("course_id", req.CourseID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("日报已创建",
		zap.String("daily_report_id", report.DailyReportID),
		zap.String("user_id", callerID))
	return toDailyReportResponse(report), nil
}

// ────────────────────── Update ──────────────────────

func (s *dailyReportService) Update(ctx context.Context, id string, req *dto.UpdateDailyReportRequest, callerID string) (*dto.DailyReportResponse, error) {
	report, err := s.getOwnedReport(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		report.Content = *req.Content
	}
	if req.Status != nil {
		report.Status = *req.Status
	}

	if err := s.repo.DailyReport.Update(ctx, report); err != nil {
		s.logger.Error("更新日报失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toDailyReportResponse(report), nil
}

// ────────────────────── Delete ──────────────────────

func (s *dailyReportService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.getOwnedReport(ctx, id, callerID); err != nil {
		return err
	}
	if err := s.repo.DailyReport.Delete(ctx, id); err != nil {
		s.logger.Error("删除日报失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 查询 ──────────────────────

func (s *dailyReportService) GetByID(ctx context.Context, id, callerID, callerRole string) (*dto.DailyReportResponse, error) {
	report, err := s.repo.DailyReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailyReportNotFound
		}
		s.logger.Error("查询日报失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if report.UserID != callerID && callerRole == model.RoleTrainee {
		return nil, ErrNotReportOwner
	}
	return toDailyReportResponse(report), nil
}

func (s *dailyReportService) ListMine(ctx context.Context, callerID string, filter repository.DailyReportFilter) ([]dto.DailyReportResponse, error) {
	filter.UserID = callerID
	filter.CourseIDs = nil
	return s.list(ctx, filter)
}

func (s *dailyReportService) ListForStaff(ctx context.Context, callerID, callerRole string, filter repository.DailyReportFilter) ([]dto.DailyReportResponse, error) {
	if callerRole == model.RoleSupervisor {
		courseIDs, err := s.repo.CourseSupervisor.ListCourseIDsBySupervisor(ctx, callerID)
		if err != nil {
			s.logger.Error("查询负责课程失败", zap.String("supervisor_id", callerID), zap.Error(err))
			return nil, err
		}
		if courseIDs == nil {
			courseIDs = []string{}
		}
		filter.CourseIDs = courseIDs
	}
	return s.list(ctx, filter)
}

// ── 内部辅助方法 ──

func (s *dailyReportService) list(ctx context.Context, filter repository.DailyReportFilter) ([]dto.DailyReportResponse, error) {
	reports, err := s.repo.DailyReport.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出日报失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DailyReportResponse, 0, len(reports))
	for i := range reports {
		result = append(result, *toDailyReportResponse(&reports[i]))
	}
	return result, nil
}

func (s *dailyReportService) getOwnedReport(ctx context.Context, id, callerID string) (*model.DailyReport, error) {
	report, err := s.repo.DailyReport.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDailyReportNotFound
		}
		s.logger.Error("查询日报失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if report.UserID != callerID {
		return nil, ErrNotReportOwner
	}
	return report, nil
}

func toDailyReportResponse(report *model.DailyReport) *dto.DailyReportResponse {
	resp := &dto.DailyReportResponse{
		ID:         report.DailyReportID,
		UserID:     report.UserID,
		CourseID:   report.CourseID,
		Content:    report.Content,
		Status:     report.Status,
		ReportDate: formatDate(report.ReportDate),
		CreatedAt:  report.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  report.UpdatedAt.Format(time.RFC3339),
	}
	if report.User != nil {
		resp.UserName = report.User.FullName
	}
	if report.Course != nil {
		resp.CourseName = report.Course.Name
	}
	return resp
}
