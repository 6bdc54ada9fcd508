package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 测试辅助 ──

func setupTestAssessmentService() (AssessmentService, *courseTestEnv, *mockCommentRepo) {
	env := &courseTestEnv{
		userRepo:       newMockUserRepo(),
		subjectRepo:    newMockSubjectRepo(),
		taskRepo:       newMockTaskRepo(),
		courseRepo:     newMockCourseRepo(),
		csRepo:         newMockCourseSubjectRepo(),
		supervisorRepo: newMockCourseSupervisorRepo(),
		ucRepo:         newMockUserCourseRepo(),
		usRepo:         newMockUserSubjectRepo(),
		utRepo:         newMockUserTaskRepo(),
	}
	commentRepo := newMockCommentRepo()
	repo := &repository.Repository{
		User:             env.userRepo,
		Subject:          env.subjectRepo,
		Task:             env.taskRepo,
		Course:           env.courseRepo,
		CourseSubject:    env.csRepo,
		CourseSupervisor: env.supervisorRepo,
		UserCourse:       env.ucRepo,
		UserSubject:      env.usRepo,
		UserTask:         env.utRepo,
		Comment:          commentRepo,
	}
	svc := NewAssessmentService(repo, zap.NewNop())
	return svc, env, commentRepo
}

func seedAssessable(env *courseTestEnv) {
	env.userRepo.users["staff-001"] = &model.User{UserID: "staff-001", FullName: "张主管", Role: model.RoleSupervisor}
	env.userRepo.users["trainee-001"] = &model.User{UserID: "trainee-001", Role: model.RoleTrainee}
	cs := &model.CourseSubject{
		CourseSubjectID: "cs-1", CourseID: "course-1", SubjectID: "subj-a",
		Subject: &model.Subject{SubjectID: "subj-a", Name: "Go 入门", MaxScore: 100},
	}
	env.csRepo.items["cs-1"] = cs
	env.usRepo.items["us-1"] = &model.UserSubject{
		UserSubjectID: "us-1", UserID: "trainee-001", UserCourseID: "uc-1",
		CourseSubjectID: "cs-1", Status: model.UserSubjectFinishedOnTime,
		CourseSubject: cs,
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// ── Assess 测试 ──

func TestAssessmentService_Assess_ScoreAndComment(t *testing.T) {
	svc, env, _ := setupTestAssessmentService()
	seedAssessable(env)

	result, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{
		Score:   floatPtr(85),
		Comment: strPtr("完成质量很好，继续保持"),
	}, "staff-001")
	if err != nil {
		t.Fatalf("Assess 应成功: %v", err)
	}
	if result.UserSubject.Score == nil || *result.UserSubject.Score != 85 {
		t.Errorf("评分未写入: %+v", result.UserSubject.Score)
	}
	if len(result.Comments) != 1 || result.Comments[0].Content != "完成质量很好，继续保持" {
		t.Errorf("评语未写入: %+v", result.Comments)
	}
	if env.usRepo.items["us-1"].Score == nil || *env.usRepo.items["us-1"].Score != 85 {
		t.Error("评分应落库")
	}
}

func TestAssessmentService_Assess_SecondCommentReplaces(t *testing.T) {
	svc, env, commentRepo := setupTestAssessmentService()
	seedAssessable(env)

	if _, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{
		Comment: strPtr("第一轮评语内容"),
	}, "staff-001"); err != nil {
		t.Fatalf("首次评语应成功: %v", err)
	}

	result, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{
		Comment: strPtr("第二轮评语覆盖前一条"),
	}, "staff-001")
	if err != nil {
		t.Fatalf("二次评语应成功: %v", err)
	}

	// 同一评注人对同一目标只保留一条有效评语
	if len(commentRepo.comments) != 1 {
		t.Fatalf("期望仅 1 条评语，实际=%d", len(commentRepo.comments))
	}
	if len(result.Comments) != 1 || result.Comments[0].Content != "第二轮评语覆盖前一条" {
		t.Errorf("评语应被覆盖更新: %+v", result.Comments)
	}
}

func TestAssessmentService_Assess_DedupesStaleComments(t *testing.T) {
	svc, env, commentRepo := setupTestAssessmentService()
	seedAssessable(env)

	// 历史残留：同一评注人对同一目标的两条评语
	now := time.Now()
	commentRepo.comments["cmt-old"] = &model.Comment{
		CommentID: "cmt-old", UserID: "staff-001", Content: "旧评语",
		CommentableKind: model.CommentableUserSubject, CommentableID: "us-1",
		CreatedAt: now.Add(-2 * time.Hour),
	}
	commentRepo.comments["cmt-new"] = &model.Comment{
		CommentID: "cmt-new", UserID: "staff-001", Content: "较新评语",
		CommentableKind: model.CommentableUserSubject, CommentableID: "us-1",
		CreatedAt: now.Add(-1 * time.Hour),
	}

	if _, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{
		Comment: strPtr("收束后的唯一评语"),
	}, "staff-001"); err != nil {
		t.Fatalf("Assess 应成功: %v", err)
	}

	if len(commentRepo.comments) != 1 {
		t.Fatalf("残留评语应被清除，实际=%d", len(commentRepo.comments))
	}
	kept, ok := commentRepo.comments["cmt-new"]
	if !ok {
		t.Fatal("应保留最新一条评语并更新内容")
	}
	if kept.Content != "收束后的唯一评语" {
		t.Errorf("保留评语内容错误: %s", kept.Content)
	}
}

func TestAssessmentService_Assess_ScoreBounds(t *testing.T) {
	svc, env, _ := setupTestAssessmentService()
	seedAssessable(env)

	_, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{Score: floatPtr(101)}, "staff-001")
	if !errors.Is(err, ErrScoreExceedsMaximum) {
		t.Errorf("期望 ErrScoreExceedsMaximum，实际: %v", err)
	}

	_, err = svc.Assess(context.Background(), "us-1", &dto.AssessRequest{Score: floatPtr(-1)}, "staff-001")
	if !errors.Is(err, ErrScoreNegative) {
		t.Errorf("期望 ErrScoreNegative，实际: %v", err)
	}
}

func TestAssessmentService_Assess_Empty(t *testing.T) {
	svc, env, _ := setupTestAssessmentService()
	seedAssessable(env)

	_, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{}, "staff-001")
	if !errors.Is(err, ErrAssessmentEmpty) {
		t.Errorf("期望 ErrAssessmentEmpty，实际: %v", err)
	}
}

func TestAssessmentService_Assess_CommentLength(t *testing.T) {
	svc, env, _ := setupTestAssessmentService()
	seedAssessable(env)

	_, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{Comment: strPtr("太短")}, "staff-001")
	if !errors.Is(err, ErrCommentLength) {
		t.Errorf("期望 ErrCommentLength，实际: %v", err)
	}
}

func TestAssessmentService_Assess_GraderMustBeStaff(t *testing.T) {
	svc, env, _ := setupTestAssessmentService()
	seedAssessable(env)

	_, err := svc.Assess(context.Background(), "us-1", &dto.AssessRequest{
		Comment: strPtr("学员不能互相评估"),
	}, "trainee-001")
	if !errors.Is(err, ErrSupervisorRole) {
		t.Errorf("期望 ErrSupervisorRole，实际: %v", err)
	}
}

func TestAssessmentService_ListComments_ChronologicalOrder(t *testing.T) {
	svc, env, commentRepo := setupTestAssessmentService()
	seedAssessable(env)

	now := time.Now()
	commentRepo.comments["cmt-1"] = &model.Comment{
		CommentID: "cmt-1", UserID: "staff-001", Content: "负责人甲的评语",
		CommentableKind: model.CommentableUserSubject, CommentableID: "us-1",
		CreatedAt: now.Add(-time.Hour),
	}
	commentRepo.comments["cmt-2"] = &model.Comment{
		CommentID: "cmt-2", UserID: "staff-002", Content: "负责人乙的评语",
		CommentableKind: model.CommentableUserSubject, CommentableID: "us-1",
		CreatedAt: now,
	}

	result, err := svc.ListComments(context.Background(), "us-1")
	if err != nil {
		t.Fatalf("ListComments 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望 2 条评语，实际=%d", len(result))
	}
	if result[0].ID != "cmt-1" || result[1].ID != "cmt-2" {
		t.Errorf("评语应按创建时间升序返回: %+v", result)
	}
}
