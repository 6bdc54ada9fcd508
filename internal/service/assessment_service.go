package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 评估模块业务错误 ──

var (
	ErrAssessmentEmpty     = errors.New("评分与评语至少需要给出其一")
	ErrScoreExceedsMaximum = errors.New("评分不能超过科目满分")
	ErrScoreNegative       = errors.New("评分不能为负数")
	ErrCommentLength       = errors.New("评语长度需在 5 到 500 字之间")
	ErrCommentTargetKind   = errors.New("不支持的评语目标类型")
)

const (
	commentMinLen = 5
	commentMaxLen = 500
)

// AssessmentService 负责人评估业务接口
type AssessmentService interface {
	// Assess 对学员科目进度写入评分与评语；
	// 同一评注人对同一目标只保留一条有效评语
	Assess(ctx context.Context, userSubjectID string, req *dto.AssessRequest, graderID string) (*dto.AssessResponse, error)
	ListComments(ctx context.Context, userSubjectID string) ([]dto.CommentResponse, error)
}

type assessmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssessmentService 创建 AssessmentService 实例
func NewAssessmentService(repo *repository.Repository, logger *zap.Logger) AssessmentService {
	return &assessmentService{repo: repo, logger: logger}
}

// ────────────────────── Assess ──────────────────────
// 评分与评语在同一事务内原子写入；任一环节失败整体回滚

func (s *assessmentService) Assess(ctx context.Context, userSubjectID string, req *dto.AssessRequest, graderID string) (*dto.AssessResponse, error) {
	if req.Score == nil && req.Comment == nil {
		return nil, ErrAssessmentEmpty
	}
	if req.Comment != nil {
		if n := utf8.RuneCountInString(*req.Comment); n < commentMinLen || n > commentMaxLen {
			return nil, ErrCommentLength
		}
	}

	us, err := s.repo.UserSubject.GetByID(ctx, userSubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserSubjectNotFound
		}
		s.logger.Error("查询进度失败", zap.String("id", userSubjectID), zap.Error(err))
		return nil, err
	}

	grader, err := s.repo.User.GetByID(ctx, graderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		return nil, err
	}
	if !grader.IsStaff() {
		return nil, ErrSupervisorRole
	}

	if req.Score != nil {
		if *req.Score < 0 {
			return nil, ErrScoreNegative
		}
		maxScore := 0
		if us.CourseSubject != nil && us.CourseSubject.Subject != nil {
			maxScore = us.CourseSubject.Subject.MaxScore
		}
		if *req.Score > float64(maxScore) {
			return nil, ErrScoreExceedsMaximum
		}
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

	if req.Score != nil {
		us.Score = req.Score
		if err := txRepo.UserSubject.Update(ctx, us); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("写入评分失败", zap.String("id", userSubjectID), zap.Error(err))
			return nil, err
		}
	}

	if req.Comment != nil {
		target := model.CommentTarget{Kind: model.CommentableUserSubject, ID: userSubjectID}
		if err := upsertComment(ctx, txRepo, graderID, target, *req.Comment); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("写入评语失败", zap.String("id", userSubjectID), zap.Error(err))
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	usResp := buildUserSubjectResponse(us, nil, time.Now())
	comments, err := s.ListComments(ctx, userSubjectID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("评估已写入",
		zap.String("user_subject_id", userSubjectID),
		zap.String("grader_id", graderID),
		zap.Bool("score", req.Score != nil),
		zap.Bool("comment", req.Comment != nil))
	return &dto.AssessResponse{UserSubject: usResp, Comments: comments}, nil
}

// upsertComment 维持“同一评注人对同一目标仅一条有效评语”：
// 已有评语时更新最新一条并清理更早的历史残留，否则新建
func upsertComment(ctx context.Context, repo *repository.Repository, graderID string, target model.CommentTarget, content string) error {
	if !model.IsCommentableKind(target.Kind) {
		return ErrCommentTargetKind
	}

	existing, err := repo.Comment.ListByGraderAndTarget(ctx, graderID, target)
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		return repo.Comment.Create(ctx, &model.Comment{
			UserID:          graderID,
			Content:         content,
			CommentableKind: target.Kind,
			CommentableID:   target.ID,
		})
	}

	newest := existing[0]
	newest.Content = content
	if err := repo.Comment.Update(ctx, &newest); err != nil {
		return err
	}

	// 历史上重复插入产生的残留一并清除
	if len(existing) > 1 {
		staleIDs := make([]string, 0, len(existing)-1)
		for i := 1; i < len(existing); i++ {
			staleIDs = append(staleIDs, existing[i].CommentID)
		}
		return repo.Comment.DeleteByIDs(ctx, staleIDs)
	}
	return nil
}

// ────────────────────── ListComments ──────────────────────

func (s *assessmentService) ListComments(ctx context.Context, userSubjectID string) ([]dto.CommentResponse, error) {
	comments, err := s.repo.Comment.ListByTarget(ctx, model.CommentTarget{
		Kind: model.CommentableUserSubject, ID: userSubjectID,
	})
	if err != nil {
		s.logger.Error("列出评语失败", zap.String("user_subject_id", userSubjectID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		resp := dto.CommentResponse{
			ID:        c.CommentID,
			GraderID:  c.UserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
			UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
		}
		if c.User != nil {
			resp.Grader = c.User.FullName
		}
		result = append(result, resp)
	}
	return result, nil
}
