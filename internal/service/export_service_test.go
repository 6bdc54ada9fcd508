package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 测试辅助 ──

func setupTestExportService() (ExportService, *courseTestEnv) {
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
		Comment:          newMockCommentRepo(),
	}
	svc := NewExportService(repo, zap.NewNop())
	return svc, env
}

func seedExportCourse(t *testing.T, env *courseTestEnv) {
	t.Helper()
	seedCourse(env, "course-1", dateOf(t, "2024-01-01"), dateOf(t, "2024-03-31"))
	start, finish := dateOf(t, "2024-01-01"), dateOf(t, "2024-01-10")
	cs := &model.CourseSubject{
		CourseSubjectID: "cs-1", CourseID: "course-1", SubjectID: "subj-a", Position: 0,
		StartDate: &start, FinishDate: &finish,
		Subject: &model.Subject{SubjectID: "subj-a", Name: "Go 入门", MaxScore: 100},
	}
	env.csRepo.items["cs-1"] = cs
	env.ucRepo.items["uc-1"] = &model.UserCourse{
		UserCourseID: "uc-1", UserID: "trainee-001", CourseID: "course-1",
		JoinedAt: time.Now(),
		User:     &model.User{UserID: "trainee-001", FullName: "阮文安"},
	}
	score := 88.0
	env.usRepo.items["us-1"] = &model.UserSubject{
		UserSubjectID: "us-1", UserID: "trainee-001", UserCourseID: "uc-1",
		CourseSubjectID: "cs-1", Status: model.UserSubjectFinishedOnTime,
		Score: &score, CourseSubject: cs,
	}
}

// ── ProgressMatrix 测试 ──

func TestExportService_ProgressMatrix(t *testing.T) {
	svc, env := setupTestExportService()
	seedExportCourse(t, env)

	buf, err := svc.ProgressMatrix(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("ProgressMatrix 应成功: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("导出内容不应为空")
	}
	// xlsx 本质是 zip 容器
	if !strings.HasPrefix(buf.String(), "PK") {
		t.Error("导出内容应为 xlsx 格式")
	}
}

func TestExportService_ProgressMatrix_CourseNotFound(t *testing.T) {
	svc, _ := setupTestExportService()

	_, err := svc.ProgressMatrix(context.Background(), "missing")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

// ── SubjectSchedule 测试 ──

func TestExportService_SubjectSchedule(t *testing.T) {
	svc, env := setupTestExportService()
	seedExportCourse(t, env)

	cal, err := svc.SubjectSchedule(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("SubjectSchedule 应成功: %v", err)
	}
	if !strings.Contains(cal, "BEGIN:VCALENDAR") || !strings.Contains(cal, "BEGIN:VEVENT") {
		t.Error("输出应为 iCalendar 文档")
	}
	if !strings.Contains(cal, "Go 入门") {
		t.Error("事件摘要应包含科目名")
	}
	// 全天事件 DTEND 为排他端点：窗口结束日的次日
	if !strings.Contains(cal, "DTEND;VALUE=DATE:20240111") {
		t.Errorf("DTEND 应为结束日次日，实际输出:\n%s", cal)
	}
}

func TestExportService_SubjectSchedule_SkipsUndatedSubjects(t *testing.T) {
	svc, env := setupTestExportService()
	seedCourse(env, "course-1", dateOf(t, "2024-01-01"), dateOf(t, "2024-03-31"))
	env.csRepo.items["cs-1"] = &model.CourseSubject{
		CourseSubjectID: "cs-1", CourseID: "course-1", SubjectID: "subj-a", Position: 0,
	}

	cal, err := svc.SubjectSchedule(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("SubjectSchedule 应成功: %v", err)
	}
	if strings.Contains(cal, "BEGIN:VEVENT") {
		t.Error("无日期窗口的编排项不应生成事件")
	}
}
