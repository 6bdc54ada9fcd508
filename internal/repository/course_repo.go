package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
	pkgerrors "github.com/nguyenbaduy011/IE221-be/pkg/errors"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id string) (*model.Course, error)
	// GetByIDForUpdate 以行锁读取课程；position 分配等并发敏感写入前调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
	CountByDateWindow(ctx context.Context, today time.Time) (active, upcoming, finished int64, err error)
}

// CourseSupervisorRepository 课程负责人数据访问接口
type CourseSupervisorRepository interface {
	Create(ctx context.Context, cs *model.CourseSupervisor) error
	ListByCourse(ctx context.Context, courseID string) ([]model.CourseSupervisor, error)
	// ListCourseIDsBySupervisor 返回某负责人名下全部课程 ID（日报负责人视角的范围裁剪）
	ListCourseIDsBySupervisor(ctx context.Context, supervisorID string) ([]string, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	Delete(ctx context.Context, courseID, supervisorID string) error
	DeleteByCourse(ctx context.Context, courseID string) error
}

// ── Course Repository 实现 ──

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("course_id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	oldVersion := course.Version
	result := r.db.WithContext(ctx).
		Model(course).
		Where("course_id = ? AND version = ?", course.CourseID, oldVersion).
		Updates(map[string]interface{}{
			"name":        course.Name,
			"link":        course.Link,
			"image_url":   course.ImageURL,
			"start_date":  course.StartDate,
			"finish_date": course.FinishDate,
			"status":      course.Status,
			"updated_by":  course.UpdatedBy,
			"version":     oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	course.Version = oldVersion + 1
	return nil
}

func (r *courseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", id).
		Delete(&model.Course{}).Error
}

// CountByDateWindow 按日期窗口统计进行中/未开始/已结束课程数
// 状态是日期的纯函数，因此直接以日期条件统计而非读 status 列
func (r *courseRepo) CountByDateWindow(ctx context.Context, today time.Time) (active, upcoming, finished int64, err error) {
	d := model.DateOnly(today)
	db := r.db.WithContext(ctx).Model(&model.Course{})

	if err = db.Session(&gorm.Session{}).
		Where("start_date <= ? AND finish_date >= ?", d, d).
		Count(&active).Error; err != nil {
		return
	}
	if err = db.Session(&gorm.Session{}).
		Where("start_date > ?", d).
		Count(&upcoming).Error; err != nil {
		return
	}
	err = db.Session(&gorm.Session{}).
		Where("finish_date < ?", d).
		Count(&finished).Error
	return
}

// ── CourseSupervisor Repository 实现 ──

type courseSupervisorRepo struct {
	db *gorm.DB
}

// NewCourseSupervisorRepo 创建 CourseSupervisorRepository 实例
func NewCourseSupervisorRepo(db *gorm.DB) CourseSupervisorRepository {
	return &courseSupervisorRepo{db: db}
}

func (r *courseSupervisorRepo) Create(ctx context.Context, cs *model.CourseSupervisor) error {
	return r.db.WithContext(ctx).Create(cs).Error
}

func (r *courseSupervisorRepo) ListByCourse(ctx context.Context, courseID string) ([]model.CourseSupervisor, error) {
	var supervisors []model.CourseSupervisor
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&supervisors).Error
	return supervisors, err
}

func (r *courseSupervisorRepo) ListCourseIDsBySupervisor(ctx context.Context, supervisorID string) ([]string, error) {
	var courseIDs []string
	err := r.db.WithContext(ctx).
		Model(&model.CourseSupervisor{}).
		Where("supervisor_id = ?", supervisorID).
		Pluck("course_id", &courseIDs).Error
	return courseIDs, err
}

func (r *courseSupervisorRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseSupervisor{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *courseSupervisorRepo) Delete(ctx context.Context, courseID, supervisorID string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ? AND supervisor_id = ?", courseID, supervisorID).
		Delete(&model.CourseSupervisor{}).Error
}

func (r *courseSupervisorRepo) DeleteByCourse(ctx context.Context, courseID string) error {
	return r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&model.CourseSupervisor{}).Error
}
