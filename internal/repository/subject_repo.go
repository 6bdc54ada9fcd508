package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
)

// SubjectRepository 科目模板数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	GetByName(ctx context.Context, name string) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
	Search(ctx context.Context, query string, excludeIDs []string) ([]model.Subject, error)
	Update(ctx context.Context, subject *model.Subject) error
	Delete(ctx context.Context, id string) error
	CountReferences(ctx context.Context, id string) (int64, error)
}

type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) GetByName(ctx context.Context, name string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&subjects).Error
	return subjects, err
}

// Search 按名称模糊搜索，可排除已挂载的科目
func (r *subjectRepo) Search(ctx context.Context, query string, excludeIDs []string) ([]model.Subject, error) {
	db := r.db.WithContext(ctx).Model(&model.Subject{})
	if query != "" {
		db = db.Where("name ILIKE ?", "%"+query+"%")
	}
	if len(excludeIDs) > 0 {
		db = db.Where("subject_id NOT IN ?", excludeIDs)
	}
	var subjects []model.Subject
	err := db.Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) Update(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Save(subject).Error
}

func (r *subjectRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("subject_id = ?", id).
		Delete(&model.Subject{}).Error
}

// CountReferences 统计被多少 CourseSubject 引用；>0 时科目不可删除
func (r *subjectRepo) CountReferences(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseSubject{}).
		Where("subject_id = ?", id).
		Count(&count).Error
	return count, err
}
