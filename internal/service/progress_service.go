package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/config"
	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 进度模块业务错误 ──

var (
	ErrUserSubjectNotFound = errors.New("进度记录不存在")
	ErrUserTaskNotFound    = errors.New("任务记录不存在")
	ErrNotProgressOwner    = errors.New("只能操作本人的进度")
	ErrNegativeDuration    = errors.New("耗时不能为负数")
)

// ProgressService 学习进度业务接口
type ProgressService interface {
	// StartSubject 显式将科目进度置为进行中；已完成的科目不可回退
	StartSubject(ctx context.Context, userSubjectID, callerID string) (*dto.UserSubjectResponse, error)
	// ToggleTask 勾选/取消任务；学员对科目的首次操作自动将其置为进行中
	ToggleTask(ctx context.Context, userTaskID string, req *dto.ToggleTaskRequest, callerID string) (*dto.UserTaskResponse, error)
	// FinishSubject 完成科目：强制收束全部任务并按窗口截止日分类完成态
	FinishSubject(ctx context.Context, userSubjectID, callerID string) (*dto.UserSubjectResponse, error)
	GetUserSubject(ctx context.Context, userSubjectID string) (*dto.UserSubjectResponse, error)
	ListByUser(ctx context.Context, userID string) ([]dto.UserSubjectResponse, error)
}

type progressService struct {
	repo   *repository.Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewProgressService 创建 ProgressService 实例
func NewProgressService(repo *repository.Repository, cfg *config.Config, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, cfg: cfg, logger: logger}
}

// ────────────────────── StartSubject ──────────────────────

func (s *progressService) StartSubject(ctx context.Context, userSubjectID, callerID string) (*dto.UserSubjectResponse, error) {
	us, err := s.getOwnedUserSubject(ctx, userSubjectID, callerID)
	if err != nil {
		return nil, err
	}

	if !us.IsFinished() && us.Status != model.UserSubjectInProgress {
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

		us.MarkInProgress(time.Now())
		if err := txRepo.UserSubject.Update(ctx, us); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("更新进度失败", zap.String("id", userSubjectID), zap.Error(err))
			return nil, err
		}
		if err := s.promoteUserCourse(ctx, txRepo, us.UserCourseID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}

		if tx != nil {
			if err := tx.Commit().Error; err != nil {
				s.logger.Error("提交事务失败", zap.Error(err))
				return nil, err
			}
		}
	}

	return s.toUserSubjectResponse(ctx, us)
}

// ────────────────────── ToggleTask ──────────────────────

func (s *progressService) ToggleTask(ctx context.Context, userTaskID string, req *dto.ToggleTaskRequest, callerID string) (*dto.UserTaskResponse, error) {
	ut, err := s.repo.UserTask.GetByID(ctx, userTaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserTaskNotFound
		}
		s.logger.Error("查询任务记录失败", zap.String("id", userTaskID), zap.Error(err))
		return nil, err
	}
	if ut.UserID != callerID {
		return nil, ErrNotProgressOwner
	}

	if req.SpentTime != nil {
		if *req.SpentTime < 0 {
			return nil, ErrNegativeDuration
		}
		rounded := model.RoundSpentTime(*req.SpentTime)
		ut.SpentTime = &rounded
	}
	if req.ArtifactURL != nil {
		ut.ArtifactURL = *req.ArtifactURL
	}
	if req.Done {
		ut.Status = model.UserTaskDone
	} else {
		ut.Status = model.UserTaskNotDone
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

	if err := txRepo.UserTask.Update(ctx, ut); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新任务记录失败", zap.String("id", userTaskID), zap.Error(err))
		return nil, err
	}

	// 首次任务操作把所属科目从未开始推进到进行中
	us, err := txRepo.UserSubject.GetByID(ctx, ut.UserSubjectID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	if us.Status == model.UserSubjectNotStarted {
		us.MarkInProgress(time.Now())
		if err := txRepo.UserSubject.Update(ctx, us); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
		if err := s.promoteUserCourse(ctx, txRepo, us.UserCourseID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return toUserTaskResponse(ut), nil
}

// ────────────────────── FinishSubject ──────────────────────
// 所有同科目任务强制置为已完成；completed_at 只盖一次，重复完成幂等。
// 课程内全部科目完成后注册记录进入 finish 态。

func (s *progressService) FinishSubject(ctx context.Context, userSubjectID, callerID string) (*dto.UserSubjectResponse, error) {
	us, err := s.getOwnedUserSubject(ctx, userSubjectID, callerID)
	if err != nil {
		return nil, err
	}
	if us.IsFinished() {
		return s.toUserSubjectResponse(ctx, us)
	}

	var deadline *time.Time
	if us.CourseSubject != nil {
		deadline = us.CourseSubject.FinishDate
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

	if err := txRepo.UserTask.MarkAllDone(ctx, userSubjectID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("收束任务失败", zap.String("user_subject_id", userSubjectID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	us.MarkFinished(now, deadline, s.cfg.Progress.EarlyFinishGraceDays)
	if err := txRepo.UserSubject.Update(ctx, us); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("更新进度失败", zap.String("id", userSubjectID), zap.Error(err))
		return nil, err
	}

	// 同课程下全部科目均已完成时，注册记录整体进入完成态
	siblings, err := txRepo.UserSubject.ListByUserCourse(ctx, us.UserCourseID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}
	allFinished := true
	for i := range siblings {
		if siblings[i].UserSubjectID == us.UserSubjectID {
			continue
		}
		if !siblings[i].IsFinished() {
			allFinished = false
			break
		}
	}
	if allFinished {
		uc, err := txRepo.UserCourse.GetByID(ctx, us.UserCourseID)
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
		uc.MarkFinished(now)
		if err := txRepo.UserCourse.Update(ctx, uc); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("科目完成",
		zap.String("user_subject_id", userSubjectID),
		zap.String("status", us.Status))
	return s.toUserSubjectResponse(ctx, us)
}

// ────────────────────── 查询 ──────────────────────

func (s *progressService) GetUserSubject(ctx context.Context, userSubjectID string) (*dto.UserSubjectResponse, error) {
	us, err := s.repo.UserSubject.GetByID(ctx, userSubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserSubjectNotFound
		}
		s.logger.Error("查询进度失败", zap.String("id", userSubjectID), zap.Error(err))
		return nil, err
	}
	return s.toUserSubjectResponse(ctx, us)
}

func (s *progressService) ListByUser(ctx context.Context, userID string) ([]dto.UserSubjectResponse, error) {
	list, err := s.repo.UserSubject.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出进度失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	now := time.Now()
	result := make([]dto.UserSubjectResponse, 0, len(list))
	for i := range list {
		result = append(result, *buildUserSubjectResponse(&list[i], nil, now))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *progressService) getOwnedUserSubject(ctx context.Context, userSubjectID, callerID string) (*model.UserSubject, error) {
	us, err := s.repo.UserSubject.GetByID(ctx, userSubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserSubjectNotFound
		}
		s.logger.Error("查询进度失败", zap.String("id", userSubjectID), zap.Error(err))
		return nil, err
	}
	if us.UserID != callerID {
		return nil, ErrNotProgressOwner
	}
	return us, nil
}

// promoteUserCourse 注册记录从未开始推进到进行中（已完成不回退），
// 随调用方的事务仓库一起提交
func (s *progressService) promoteUserCourse(ctx context.Context, r *repository.Repository, userCourseID string) error {
	uc, err := r.UserCourse.GetByID(ctx, userCourseID)
	if err != nil {
		return err
	}
	if uc.Status != model.UserCourseNotStarted {
		return nil
	}
	uc.Status = model.UserCourseInProgress
	return r.UserCourse.Update(ctx, uc)
}

func (s *progressService) toUserSubjectResponse(ctx context.Context, us *model.UserSubject) (*dto.UserSubjectResponse, error) {
	tasks, err := s.repo.UserTask.ListByUserSubject(ctx, us.UserSubjectID)
	if err != nil {
		s.logger.Error("列出任务记录失败", zap.String("user_subject_id", us.UserSubjectID), zap.Error(err))
		return nil, err
	}
	return buildUserSubjectResponse(us, tasks, time.Now()), nil
}

// buildUserSubjectResponse 组装进度响应；对外状态是惰性求值的有效状态
func buildUserSubjectResponse(us *model.UserSubject, tasks []model.UserTask, now time.Time) *dto.UserSubjectResponse {
	var deadline *time.Time
	resp := &dto.UserSubjectResponse{
		ID:    us.UserSubjectID,
		Score: us.Score,
	}
	if us.CourseSubject != nil {
		deadline = us.CourseSubject.FinishDate
		resp.CourseID = us.CourseSubject.CourseID
		if us.CourseSubject.Subject != nil {
			resp.SubjectName = us.CourseSubject.Subject.Name
			resp.MaxScore = us.CourseSubject.Subject.MaxScore
		}
	}
	resp.Status = us.EffectiveStatus(deadline, now)
	if us.StartedAt != nil {
		resp.StartedAt = us.StartedAt.Format(time.RFC3339)
	}
	if us.CompletedAt != nil {
		resp.CompletedAt = us.CompletedAt.Format(time.RFC3339)
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, *toUserTaskResponse(&tasks[i]))
	}
	return resp
}

func toUserTaskResponse(ut *model.UserTask) *dto.UserTaskResponse {
	resp := &dto.UserTaskResponse{
		ID:          ut.UserTaskID,
		TaskID:      ut.TaskID,
		Status:      ut.Status,
		SpentTime:   ut.SpentTime,
		ArtifactURL: ut.ArtifactURL,
	}
	if ut.Task != nil {
		resp.TaskName = ut.Task.Name
	}
	return resp
}
