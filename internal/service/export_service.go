package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ExportService 课程报表导出业务接口
type ExportService interface {
	// ProgressMatrix 导出课程进度矩阵（学员 × 科目）为 .xlsx
	ProgressMatrix(ctx context.Context, courseID string) (*bytes.Buffer, error)
	// SubjectSchedule 导出课程科目排期为 iCalendar
	SubjectSchedule(ctx context.Context, courseID string) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ────────────────────── ProgressMatrix ──────────────────────
// 第一行为科目名表头，之后每行一名学员；
// 单元格展示有效状态，已评分时附带 分数/满分

func (s *exportService) ProgressMatrix(ctx context.Context, courseID string) (*bytes.Buffer, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	courseSubjects, err := s.repo.CourseSubject.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	userCourses, err := s.repo.UserCourse.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	// 进度按 (user_course, course_subject) 索引
	type cellValue struct {
		status string
		score  *float64
		max    int
	}
	now := time.Now()
	cells := make(map[string]map[string]cellValue, len(userCourses))
	for i := range userCourses {
		uc := &userCourses[i]
		subjects, err := s.repo.UserSubject.ListByUserCourse(ctx, uc.UserCourseID)
		if err != nil {
			return nil, err
		}
		row := make(map[string]cellValue, len(subjects))
		for j := range subjects {
			us := &subjects[j]
			var deadline *time.Time
			maxScore := 0
			if us.CourseSubject != nil {
				deadline = us.CourseSubject.FinishDate
				if us.CourseSubject.Subject != nil {
					maxScore = us.CourseSubject.Subject.MaxScore
				}
			}
			row[us.CourseSubjectID] = cellValue{
				status: us.EffectiveStatus(deadline, now),
				score:  us.Score,
				max:    maxScore,
			}
		}
		cells[uc.UserCourseID] = row
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetCellValue(sheet, "A1", course.Name); err != nil {
		return nil, err
	}
	for i := range courseSubjects {
		name := ""
		if courseSubjects[i].Subject != nil {
			name = courseSubjects[i].Subject.Name
		}
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	for r := range userCourses {
		uc := &userCourses[r]
		name := uc.UserID
		if uc.User != nil {
			name = uc.User.FullName
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
		for c := range courseSubjects {
			v, ok := cells[uc.UserCourseID][courseSubjects[c].CourseSubjectID]
			if !ok {
				continue
			}
			text := v.status
			if v.score != nil {
				text = fmt.Sprintf("%s (%.1f/%d)", v.status, *v.score, v.max)
			}
			cell, err := excelize.CoordinatesToCellName(c+2, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, text); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 xlsx 失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("进度矩阵导出完成",
		zap.String("course_id", courseID),
		zap.Int("trainees", len(userCourses)),
		zap.Int("subjects", len(courseSubjects)))
	return buf, nil
}

// ────────────────────── SubjectSchedule ──────────────────────
// 每个有日期窗口的编排项生成一条全天跨度事件

func (s *exportService) SubjectSchedule(ctx context.Context, courseID string) (string, error) {
	course, err := s.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return "", err
	}

	courseSubjects, err := s.repo.CourseSubject.ListByCourse(ctx, courseID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//IE221 Training//Course Schedule//EN")

	for i := range courseSubjects {
		cs := &courseSubjects[i]
		if cs.StartDate == nil || cs.FinishDate == nil {
			continue
		}
		event := cal.AddEvent(cs.CourseSubjectID)
		event.SetCreatedTime(cs.CreatedAt)
		event.SetDtStampTime(time.Now())
		event.SetAllDayStartAt(model.DateOnly(*cs.StartDate))
		// DTEND 按 iCalendar 习惯取排他端点：结束日的次日
		event.SetAllDayEndAt(model.DateOnly(*cs.FinishDate).AddDate(0, 0, 1))
		summary := course.Name
		if cs.Subject != nil {
			summary = fmt.Sprintf("%s — %s", course.Name, cs.Subject.Name)
		}
		event.SetSummary(summary)
	}

	return cal.Serialize(), nil
}
