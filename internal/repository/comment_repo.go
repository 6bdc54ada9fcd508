package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
)

// CommentRepository 多态评语数据访问接口
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// ListByGraderAndTarget 按创建时间倒序返回同一评注人对同一目标的全部评语
	ListByGraderAndTarget(ctx context.Context, graderID string, target model.CommentTarget) ([]model.Comment, error)
	ListByTarget(ctx context.Context, target model.CommentTarget) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo 创建 CommentRepository 实例
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) ListByGraderAndTarget(ctx context.Context, graderID string, target model.CommentTarget) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND commentable_kind = ? AND commentable_id = ?",
			graderID, target.Kind, target.ID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) ListByTarget(ctx context.Context, target model.CommentTarget) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("commentable_kind = ? AND commentable_id = ?", target.Kind, target.ID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Delete(&model.Comment{}).Error
}
