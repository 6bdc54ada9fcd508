package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
)

// DailyReportFilter 日报列表过滤条件；零值字段不参与过滤
type DailyReportFilter struct {
	UserID    string
	CourseID  string
	CourseIDs []string // 非 nil 时限定课程范围（负责人视角）
	Date      *time.Time
}

// DailyReportRepository 日报数据访问接口
type DailyReportRepository interface {
	Create(ctx context.Context, report *model.DailyReport) error
	GetByID(ctx context.Context, id string) (*model.DailyReport, error)
	// GetByUserCourseAndDate 查询学员当天在课程内的日报（一天一条约束的预检）
	GetByUserCourseAndDate(ctx context.Context, userID, courseID string, date time.Time) (*model.DailyReport, error)
	// List 按更新时间倒序返回过滤后的日报
	List(ctx context.Context, filter DailyReportFilter) ([]model.DailyReport, error)
	Update(ctx context.Context, report *model.DailyReport) error
	Delete(ctx context.Context, id string) error
}

type dailyReportRepo struct {
	db *gorm.DB
}

// NewDailyReportRepo 创建 DailyReportRepository 实例
func NewDailyReportRepo(db *gorm.DB) DailyReportRepository {
	return &dailyReportRepo{db: db}
}

func (r *dailyReportRepo) Create(ctx context.Context, report *model.DailyReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *dailyReportRepo) GetByID(ctx context.Context, id string) (*model.DailyReport, error) {
	var report model.DailyReport
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Where("daily_report_id = ?", id).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *dailyReportRepo) GetByUserCourseAndDate(ctx context.Context, userID, courseID string, date time.Time) (*model.DailyReport, error) {
	var report model.DailyReport
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND report_date = ?",
			userID, courseID, model.DateOnly(date)).
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *dailyReportRepo) List(ctx context.Context, filter DailyReportFilter) ([]model.DailyReport, error) {
	db := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course")

	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.CourseID != "" {
		db = db.Where("course_id = ?", filter.CourseID)
	}
	if filter.CourseIDs != nil {
		db = db.Where("course_id IN ?", filter.CourseIDs)
	}
	if filter.Date != nil {
		db = db.Where("report_date = ?", model.DateOnly(*filter.Date))
	}

	var reports []model.DailyReport
	err := db.Order("updated_at DESC").Find(&reports).Error
	return reports, err
}

func (r *dailyReportRepo) Update(ctx context.Context, report *model.DailyReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

func (r *dailyReportRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("daily_report_id = ?", id).
		Delete(&model.DailyReport{}).Error
}
