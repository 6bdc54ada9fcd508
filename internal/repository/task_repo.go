package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
)

// TaskRepository 任务数据访问接口
// 任务通过 (taskable_kind, taskable_id) 多态归属于科目模板或课程内科目
type TaskRepository interface {
	BatchCreate(ctx context.Context, tasks []model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	ListByOwner(ctx context.Context, owner model.TaskOwner) ([]model.Task, error)
	ListByOwners(ctx context.Context, kind string, ownerIDs []string) ([]model.Task, error)
	DeleteByOwner(ctx context.Context, owner model.TaskOwner) error
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) BatchCreate(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) ListByOwner(ctx context.Context, owner model.TaskOwner) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("taskable_kind = ? AND taskable_id = ?", owner.Kind, owner.ID).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// ListByOwners 一次性取出同种归属下多个 owner 的全部任务
// 注册扩散前的预取依赖此方法，避免逐科目查询
func (r *taskRepo) ListByOwners(ctx context.Context, kind string, ownerIDs []string) ([]model.Task, error) {
	var tasks []model.Task
	if len(ownerIDs) == 0 {
		return tasks, nil
	}
	err := r.db.WithContext(ctx).
		Where("taskable_kind = ? AND taskable_id IN ?", kind, ownerIDs).
		Order("position ASC, created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) DeleteByOwner(ctx context.Context, owner model.TaskOwner) error {
	return r.db.WithContext(ctx).
		Where("taskable_kind = ? AND taskable_id = ?", owner.Kind, owner.ID).
		Delete(&model.Task{}).Error
}
