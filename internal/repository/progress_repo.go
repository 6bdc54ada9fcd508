package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
)

// UserCourseRepository 学员-课程注册数据访问接口
type UserCourseRepository interface {
	Create(ctx context.Context, uc *model.UserCourse) error
	GetByID(ctx context.Context, id string) (*model.UserCourse, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID string) (*model.UserCourse, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.UserCourse, error)
	ListRecent(ctx context.Context, limit int) ([]model.UserCourse, error)
	Update(ctx context.Context, uc *model.UserCourse) error
	Delete(ctx context.Context, id string) error
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	CountDistinctUsers(ctx context.Context) (int64, error)
}

// UserSubjectRepository 学员-科目进度数据访问接口
type UserSubjectRepository interface {
	BatchCreate(ctx context.Context, subjects []model.UserSubject) error
	GetByID(ctx context.Context, id string) (*model.UserSubject, error)
	ListByUser(ctx context.Context, userID string) ([]model.UserSubject, error)
	ListByUserCourse(ctx context.Context, userCourseID string) ([]model.UserSubject, error)
	ListByCourseSubject(ctx context.Context, courseSubjectID string) ([]model.UserSubject, error)
	Update(ctx context.Context, us *model.UserSubject) error
	DeleteByUserCourse(ctx context.Context, userCourseID string) error
	DeleteByCourseSubject(ctx context.Context, courseSubjectID string) error
	CountTotalAndFinished(ctx context.Context) (total, finished int64, err error)
}

// UserTaskRepository 学员-任务完成记录数据访问接口
type UserTaskRepository interface {
	BatchCreate(ctx context.Context, tasks []model.UserTask) error
	GetByID(ctx context.Context, id string) (*model.UserTask, error)
	ListByUserSubject(ctx context.Context, userSubjectID string) ([]model.UserTask, error)
	Update(ctx context.Context, ut *model.UserTask) error
	MarkAllDone(ctx context.Context, userSubjectID string) error
	DeleteByUserSubjects(ctx context.Context, userSubjectIDs []string) error
}

// ── UserCourse Repository 实现 ──

type userCourseRepo struct {
	db *gorm.DB
}

// NewUserCourseRepo 创建 UserCourseRepository 实例
func NewUserCourseRepo(db *gorm.DB) UserCourseRepository {
	return &userCourseRepo{db: db}
}

func (r *userCourseRepo) Create(ctx context.Context, uc *model.UserCourse) error {
	return r.db.WithContext(ctx).Create(uc).Error
}

func (r *userCourseRepo) GetByID(ctx context.Context, id string) (*model.UserCourse, error) {
	var uc model.UserCourse
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_course_id = ?", id).
		First(&uc).Error
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (r *userCourseRepo) GetByUserAndCourse(ctx context.Context, userID, courseID string) (*model.UserCourse, error) {
	var uc model.UserCourse
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&uc).Error
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (r *userCourseRepo) ListByCourse(ctx context.Context, courseID string) ([]model.UserCourse, error) {
	var list []model.UserCourse
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_id = ?", courseID).
		Order("joined_at ASC").
		Find(&list).Error
	return list, err
}

// ListRecent 最近加入的注册记录（活动流）
func (r *userCourseRepo) ListRecent(ctx context.Context, limit int) ([]model.UserCourse, error) {
	var list []model.UserCourse
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Course").
		Order("joined_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *userCourseRepo) Update(ctx context.Context, uc *model.UserCourse) error {
	return r.db.WithContext(ctx).Save(uc).Error
}

func (r *userCourseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("user_course_id = ?", id).
		Delete(&model.UserCourse{}).Error
}

func (r *userCourseRepo) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserCourse{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *userCourseRepo) CountDistinctUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserCourse{}).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

// ── UserSubject Repository 实现 ──

type userSubjectRepo struct {
	db *gorm.DB
}

// NewUserSubjectRepo 创建 UserSubjectRepository 实例
func NewUserSubjectRepo(db *gorm.DB) UserSubjectRepository {
	return &userSubjectRepo{db: db}
}

func (r *userSubjectRepo) BatchCreate(ctx context.Context, subjects []model.UserSubject) error {
	if len(subjects) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&subjects).Error
}

func (r *userSubjectRepo) GetByID(ctx context.Context, id string) (*model.UserSubject, error) {
	var us model.UserSubject
	err := r.db.WithContext(ctx).
		Preload("CourseSubject").
		Preload("CourseSubject.Subject").
		Preload("UserCourse").
		Where("user_subject_id = ?", id).
		First(&us).Error
	if err != nil {
		return nil, err
	}
	return &us, nil
}

func (r *userSubjectRepo) ListByUser(ctx context.Context, userID string) ([]model.UserSubject, error) {
	var list []model.UserSubject
	err := r.db.WithContext(ctx).
		Preload("CourseSubject").
		Preload("CourseSubject.Subject").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *userSubjectRepo) ListByUserCourse(ctx context.Context, userCourseID string) ([]model.UserSubject, error) {
	var list []model.UserSubject
	err := r.db.WithContext(ctx).
		Preload("CourseSubject").
		Preload("CourseSubject.Subject").
		Where("user_course_id = ?", userCourseID).
		Find(&list).Error
	return list, err
}

func (r *userSubjectRepo) ListByCourseSubject(ctx context.Context, courseSubjectID string) ([]model.UserSubject, error) {
	var list []model.UserSubject
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("course_subject_id = ?", courseSubjectID).
		Find(&list).Error
	return list, err
}

func (r *userSubjectRepo) Update(ctx context.Context, us *model.UserSubject) error {
	return r.db.WithContext(ctx).Save(us).Error
}

func (r *userSubjectRepo) DeleteByUserCourse(ctx context.Context, userCourseID string) error {
	return r.db.WithContext(ctx).
		Where("user_course_id = ?", userCourseID).
		Delete(&model.UserSubject{}).Error
}

func (r *userSubjectRepo) DeleteByCourseSubject(ctx context.Context, courseSubjectID string) error {
	return r.db.WithContext(ctx).
		Where("course_subject_id = ?", courseSubjectID).
		Delete(&model.UserSubject{}).Error
}

// CountTotalAndFinished 统计总进度条数与已完成条数（完成率投影）
func (r *userSubjectRepo) CountTotalAndFinished(ctx context.Context) (total, finished int64, err error) {
	db := r.db.WithContext(ctx).Model(&model.UserSubject{})
	if err = db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return
	}
	err = db.Session(&gorm.Session{}).
		Where("status IN ?", []string{
			model.UserSubjectFinishedEarly,
			model.UserSubjectFinishedOnTime,
			model.UserSubjectFinishedOverdue,
		}).
		Count(&finished).Error
	return
}

// ── UserTask Repository 实现 ──

type userTaskRepo struct {
	db *gorm.DB
}

// NewUserTaskRepo 创建 UserTaskRepository 实例
func NewUserTaskRepo(db *gorm.DB) UserTaskRepository {
	return &userTaskRepo{db: db}
}

func (r *userTaskRepo) BatchCreate(ctx context.Context, tasks []model.UserTask) error {
	if len(tasks) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *userTaskRepo) GetByID(ctx context.Context, id string) (*model.UserTask, error) {
	var ut model.UserTask
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("user_task_id = ?", id).
		First(&ut).Error
	if err != nil {
		return nil, err
	}
	return &ut, nil
}

func (r *userTaskRepo) ListByUserSubject(ctx context.Context, userSubjectID string) ([]model.UserTask, error) {
	var list []model.UserTask
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("user_subject_id = ?", userSubjectID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *userTaskRepo) Update(ctx context.Context, ut *model.UserTask) error {
	return r.db.WithContext(ctx).Save(ut).Error
}

// MarkAllDone 将某进度项下所有任务置为已完成（完成科目时强制收束）
func (r *userTaskRepo) MarkAllDone(ctx context.Context, userSubjectID string) error {
	return r.db.WithContext(ctx).
		Model(&model.UserTask{}).
		Where("user_subject_id = ?", userSubjectID).
		Update("status", model.UserTaskDone).Error
}

func (r *userTaskRepo) DeleteByUserSubjects(ctx context.Context, userSubjectIDs []string) error {
	if len(userSubjectIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_subject_id IN ?", userSubjectIDs).
		Delete(&model.UserTask{}).Error
}
