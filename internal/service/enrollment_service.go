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

// ── 注册模块业务错误 ──

var (
	ErrTraineeNotFound = errors.New("学员不存在")
)

// EnrollmentService 学员注册业务接口
type EnrollmentService interface {
	// Enroll 批量注册学员并扩散完整进度树；已注册者幂等跳过
	Enroll(ctx context.Context, courseID string, req *dto.EnrollRequest) (*dto.EnrollResponse, error)
	// RemoveTrainee 将学员从课程移除并有序级联清理其进度树；未注册时幂等无操作
	RemoveTrainee(ctx context.Context, courseID, userID string) error
	ListByCourse(ctx context.Context, courseID string) ([]dto.UserCourseResponse, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── Enroll ──────────────────────
// 扩散量级为 学员数 × 科目数 × 任务数。
// 任务按编排项预取建表，学员任务攒到最后一次性批量写入，
// 整个批次在单个事务内，任一失败全部回滚。

func (s *enrollmentService) Enroll(ctx context.Context, courseID string, req *dto.EnrollRequest) (*dto.EnrollResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	userIDs := dedupeIDs(req.UserIDs)
	users, err := s.repo.User.ListByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("查询学员失败", zap.Error(err))
		return nil, err
	}
	if len(users) != len(userIDs) {
		return nil, ErrTraineeNotFound
	}

	courseSubjects, err := s.repo.CourseSubject.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出课程科目失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	// 预取课程内全部任务并按编排项分桶，避免扩散时逐科目查询
	csIDs := make([]string, 0, len(courseSubjects))
	for i := range courseSubjects {
		csIDs = append(csIDs, courseSubjects[i].CourseSubjectID)
	}
	allTasks, err := s.repo.Task.ListByOwners(ctx, model.TaskableCourseSubject, csIDs)
	if err != nil {
		s.logger.Error("预取课程任务失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	tasksByCS := make(map[string][]model.Task, len(csIDs))
	for i := range allTasks {
		tasksByCS[allTasks[i].TaskableID] = append(tasksByCS[allTasks[i].TaskableID], allTasks[i])
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	added, skipped := 0, 0
	var pendingTasks []model.UserTask

	for _, userID := range userIDs {
		_, err := txRepo.UserCourse.GetByUserAndCourse(ctx, userID, courseID)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}

		uc := &model.UserCourse{
			UserID:   userID,
			CourseID: courseID,
			Status:   model.UserCourseNotStarted,
		}
		if err := txRepo.UserCourse.Create(ctx, uc); err != nil {
			// 并发注册时另一请求可能抢先插入，按已注册跳过
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("创建注册记录失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}

		userSubjects := make([]model.UserSubject, 0, len(courseSubjects))
		for i := range courseSubjects {
			userSubjects = append(userSubjects, model.UserSubject{
				UserID:          userID,
				UserCourseID:    uc.UserCourseID,
				CourseSubjectID: courseSubjects[i].CourseSubjectID,
				Status:          model.UserSubjectNotStarted,
			})
		}
		if err := txRepo.UserSubject.BatchCreate(ctx, userSubjects); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("创建进度记录失败", zap.String("user_id", userID), zap.Error(err))
			return nil, err
		}

		for i := range userSubjects {
			for _, task := range tasksByCS[userSubjects[i].CourseSubjectID] {
				pendingTasks = append(pendingTasks, model.UserTask{
					UserID:        userID,
					TaskID:        task.TaskID,
					UserSubjectID: userSubjects[i].UserSubjectID,
					Status:        model.UserTaskNotDone,
				})
			}
		}
		added++
	}

	if err := txRepo.UserTask.BatchCreate(ctx, pendingTasks); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("批量创建任务记录失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("批量注册完成",
		zap.String("course_id", courseID),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
		zap.Int("user_tasks", len(pendingTasks)))
	return &dto.EnrollResponse{Added: added, Skipped: skipped}, nil
}

// ────────────────────── RemoveTrainee ──────────────────────

func (s *enrollmentService) RemoveTrainee(ctx context.Context, courseID, userID string) error {
	uc, err := s.repo.UserCourse.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 未注册，幂等无操作
			return nil
		}
		s.logger.Error("查询注册记录失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := deleteEnrollmentTx(ctx, txRepo, uc); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("清理注册记录失败", zap.String("user_course_id", uc.UserCourseID), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("学员已移出课程",
		zap.String("course_id", courseID),
		zap.String("user_id", userID))
	return nil
}

// deleteEnrollmentTx 在事务内有序级联清理一条注册记录：
// user_tasks → user_subjects → user_course。课程整体删除时复用。
func deleteEnrollmentTx(ctx context.Context, repo *repository.Repository, uc *model.UserCourse) error {
	userSubjects, err := repo.UserSubject.ListByUserCourse(ctx, uc.UserCourseID)
	if err != nil {
		return err
	}
	usIDs := make([]string, 0, len(userSubjects))
	for i := range userSubjects {
		usIDs = append(usIDs, userSubjects[i].UserSubjectID)
	}

	if err := repo.UserTask.DeleteByUserSubjects(ctx, usIDs); err != nil {
		return err
	}
	if err := repo.UserSubject.DeleteByUserCourse(ctx, uc.UserCourseID); err != nil {
		return err
	}
	return repo.UserCourse.Delete(ctx, uc.UserCourseID)
}

// ────────────────────── ListByCourse ──────────────────────

func (s *enrollmentService) ListByCourse(ctx context.Context, courseID string) ([]dto.UserCourseResponse, error) {
	userCourses, err := s.repo.UserCourse.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出注册记录失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserCourseResponse, 0, len(userCourses))
	for i := range userCourses {
		result = append(result, *toUserCourseResponse(&userCourses[i]))
	}
	return result, nil
}

func toUserCourseResponse(uc *model.UserCourse) *dto.UserCourseResponse {
	resp := &dto.UserCourseResponse{
		ID:       uc.UserCourseID,
		UserID:   uc.UserID,
		CourseID: uc.CourseID,
		Status:   uc.Status,
		JoinedAt: uc.JoinedAt.Format(time.RFC3339),
	}
	if uc.FinishedAt != nil {
		resp.FinishedAt = uc.FinishedAt.Format(time.RFC3339)
	}
	return resp
}
