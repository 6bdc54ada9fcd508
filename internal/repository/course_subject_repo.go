package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
	pkgerrors "github.com/nguyenbaduy011/IE221-be/pkg/errors"
)

// CourseSubjectRepository 课程-科目编排数据访问接口
type CourseSubjectRepository interface {
	Create(ctx context.Context, cs *model.CourseSubject) error
	GetByID(ctx context.Context, id string) (*model.CourseSubject, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseSubject, error)
	GetLastByPosition(ctx context.Context, courseID string) (*model.CourseSubject, error)
	Update(ctx context.Context, cs *model.CourseSubject) error
	Delete(ctx context.Context, id string) error
	CountByCourse(ctx context.Context, courseID string) (int64, error)
}

type courseSubjectRepo struct {
	db *gorm.DB
}

// NewCourseSubjectRepo 创建 CourseSubjectRepository 实例
func NewCourseSubjectRepo(db *gorm.DB) CourseSubjectRepository {
	return &courseSubjectRepo{db: db}
}

func (r *courseSubjectRepo) Create(ctx context.Context, cs *model.CourseSubject) error {
	return r.db.WithContext(ctx).Create(cs).Error
}

func (r *courseSubjectRepo) GetByID(ctx context.Context, id string) (*model.CourseSubject, error) {
	var cs model.CourseSubject
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Subject").
		Where("course_subject_id = ?", id).
		First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *courseSubjectRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseSubject, error) {
	var list []model.CourseSubject
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&list).Error
	return list, err
}

// GetLastByPosition 取课程内 position 最大的编排项；窗口链式推导与 position 分配依赖它
// 无任何编排项时返回 gorm.ErrRecordNotFound
func (r *courseSubjectRepo) GetLastByPosition(ctx context.Context, courseID string) (*model.CourseSubject, error) {
	var cs model.CourseSubject
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position DESC").
		First(&cs).Error
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *courseSubjectRepo) Update(ctx context.Context, cs *model.CourseSubject) error {
	oldVersion := cs.Version
	result := r.db.WithContext(ctx).
		Model(cs).
		Where("course_subject_id = ? AND version = ?", cs.CourseSubjectID, oldVersion).
		Updates(map[string]interface{}{
			"position":    cs.Position,
			"start_date":  cs.StartDate,
			"finish_date": cs.FinishDate,
			"updated_by":  cs.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	cs.Version = oldVersion + 1
	return nil
}

func (r *courseSubjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_subject_id = ?", id).
		Delete(&model.CourseSubject{}).Error
}

func (r *courseSubjectRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseSubject{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
