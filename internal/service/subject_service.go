package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 科目模板模块业务错误 ──

var (
	ErrSubjectNotFound  = errors.New("科目不存在")
	ErrSubjectNameTaken = errors.New("科目名称已存在")
	ErrSubjectInUse     = errors.New("科目已被课程引用，无法删除")
)

// SubjectService 科目模板业务接口
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest, callerID string) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context) ([]dto.SubjectResponse, error)
	Search(ctx context.Context, query string, excludeIDs []string) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, callerID string) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id string) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────
// 科目与其模板任务在同一事务内原子创建

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest, callerID string) (*dto.SubjectResponse, error) {
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

	subject, tasks, err := createSubjectWithTasks(ctx, txRepo, req, callerID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if !errors.Is(err, ErrSubjectNameTaken) {
			s.logger.Error("创建科目失败", zap.String("name", req.Name), zap.Error(err))
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	return s.toSubjectResponse(subject, tasks), nil
}

// createSubjectWithTasks 在给定的（事务）Repository 上创建科目及模板任务
// 课程挂载现场新建科目时复用
func createSubjectWithTasks(ctx context.Context, repo *repository.Repository, req *dto.CreateSubjectRequest, callerID string) (*model.Subject, []model.Task, error) {
	subject := &model.Subject{
		Name:          req.Name,
		MaxScore:      req.MaxScore,
		EstimatedDays: req.EstimatedDays,
		ImageURL:      req.ImageURL,
	}
	subject.CreatedBy = &callerID
	subject.UpdatedBy = &callerID

	if err := repo.Subject.Create(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrSubjectNameTaken
		}
		return nil, nil, err
	}

	tasks := make([]model.Task, 0, len(req.TaskNames))
	for i, name := range req.TaskNames {
		tasks = append(tasks, model.Task{
			Name:         name,
			TaskableKind: model.TaskableSubject,
			TaskableID:   subject.SubjectID,
			Position:     i,
		})
	}
	if err := repo.Task.BatchCreate(ctx, tasks); err != nil {
		return nil, nil, err
	}

	return subject, tasks, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *subjectService) GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	tasks, err := s.repo.Task.ListByOwner(ctx, model.TaskOwner{Kind: model.TaskableSubject, ID: id})
	if err != nil {
		s.logger.Error("查询模板任务失败", zap.String("subject_id", id), zap.Error(err))
		return nil, err
	}

	return s.toSubjectResponse(subject, tasks), nil
}

// ────────────────────── List / Search ──────────────────────

func (s *subjectService) List(ctx context.Context) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *s.toSubjectResponse(&subjects[i], nil))
	}
	return result, nil
}

func (s *subjectService) Search(ctx context.Context, query string, excludeIDs []string) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.Search(ctx, query, excludeIDs)
	if err != nil {
		s.logger.Error("搜索科目失败", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *s.toSubjectResponse(&subjects[i], nil))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *subjectService) Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, callerID string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.MaxScore != nil {
		subject.MaxScore = *req.MaxScore
	}
	if req.EstimatedDays != nil {
		subject.EstimatedDays = *req.EstimatedDays
	}
	if req.ImageURL != nil {
		subject.ImageURL = *req.ImageURL
	}
	subject.UpdatedBy = &callerID

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSubjectNameTaken
		}
		s.logger.Error("更新科目失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSubjectResponse(subject, nil), nil
}

// ────────────────────── Delete ──────────────────────
// 被任何课程引用的科目不可删除；删除时连同模板任务一并移除

func (s *subjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Subject.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	refs, err := s.repo.Subject.CountReferences(ctx, id)
	if err != nil {
		s.logger.Error("统计科目引用失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if refs > 0 {
		return ErrSubjectInUse
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

	// 先删子后删父：模板任务 → 科目
	if err := txRepo.Task.DeleteByOwner(ctx, model.TaskOwner{Kind: model.TaskableSubject, ID: id}); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除模板任务失败", zap.String("subject_id", id), zap.Error(err))
		return err
	}
	if err := txRepo.Subject.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除科目失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *subjectService) toSubjectResponse(subject *model.Subject, tasks []model.Task) *dto.SubjectResponse {
	resp := &dto.SubjectResponse{
		ID:            subject.SubjectID,
		Name:          subject.Name,
		MaxScore:      subject.MaxScore,
		EstimatedDays: subject.EstimatedDays,
		ImageURL:      subject.ImageURL,
		CreatedAt:     subject.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     subject.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&tasks[i]))
	}
	return resp
}

func toTaskResponse(task *model.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:           task.TaskID,
		Name:         task.Name,
		Position:     task.Position,
		TaskableKind: task.TaskableKind,
		TaskableID:   task.TaskableID,
	}
}
