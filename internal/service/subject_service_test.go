package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 测试辅助 ──

func setupTestSubjectService() (SubjectService, *mockSubjectRepo, *mockTaskRepo) {
	subjectRepo := newMockSubjectRepo()
	taskRepo := newMockTaskRepo()
	repo := &repository.Repository{
		User:             newMockUserRepo(),
		Subject:          subjectRepo,
		Task:             taskRepo,
		Course:           newMockCourseRepo(),
		CourseSubject:    newMockCourseSubjectRepo(),
		CourseSupervisor: newMockCourseSupervisorRepo(),
		UserCourse:       newMockUserCourseRepo(),
		UserSubject:      newMockUserSubjectRepo(),
		UserTask:         newMockUserTaskRepo(),
		Comment:          newMockCommentRepo(),
	}
	svc := NewSubjectService(repo, zap.NewNop())
	return svc, subjectRepo, taskRepo
}

// ── Create 测试 ──

func TestSubjectService_Create_WithTasks(t *testing.T) {
	svc, _, taskRepo := setupTestSubjectService()

	req := &dto.CreateSubjectRequest{
		Name:          "Golang 基础",
		MaxScore:      100,
		EstimatedDays: 10,
		TaskNames:     []string{"阅读官方教程", "完成练习题"},
	}

	result, err := svc.Create(context.Background(), req, "staff-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.ID == "" {
		t.Error("期望生成科目 ID")
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("期望 2 个模板任务，实际=%d", len(result.Tasks))
	}
	if result.Tasks[0].Position != 0 || result.Tasks[1].Position != 1 {
		t.Errorf("模板任务 position 应按序分配，实际=%d,%d",
			result.Tasks[0].Position, result.Tasks[1].Position)
	}

	stored, err := taskRepo.ListByOwner(context.Background(), model.TaskOwner{
		Kind: model.TaskableSubject, ID: result.ID,
	})
	if err != nil || len(stored) != 2 {
		t.Fatalf("模板任务应归属科目，实际=%d 条", len(stored))
	}
	if stored[0].TaskableKind != model.TaskableSubject {
		t.Errorf("模板任务归属种类错误: %s", stored[0].TaskableKind)
	}
}

func TestSubjectService_Create_DuplicateName(t *testing.T) {
	svc, _, _ := setupTestSubjectService()

	req := &dto.CreateSubjectRequest{Name: "数据库原理", MaxScore: 100, EstimatedDays: 5}
	if _, err := svc.Create(context.Background(), req, "staff-001"); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	_, err := svc.Create(context.Background(), req, "staff-001")
	if !errors.Is(err, ErrSubjectNameTaken) {
		t.Errorf("期望 ErrSubjectNameTaken，实际: %v", err)
	}
}

// ── 查询测试 ──

func TestSubjectService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := setupTestSubjectService()

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Errorf("期望 ErrSubjectNotFound，实际: %v", err)
	}
}

func TestSubjectService_Search_ExcludesIDs(t *testing.T) {
	svc, subjectRepo, _ := setupTestSubjectService()

	subjectRepo.subjects["subj-a"] = &model.Subject{SubjectID: "subj-a", Name: "Linux 运维"}
	subjectRepo.subjects["subj-b"] = &model.Subject{SubjectID: "subj-b", Name: "Linux 内核"}

	result, err := svc.Search(context.Background(), "linux", []string{"subj-a"})
	if err != nil {
		t.Fatalf("Search 应成功: %v", err)
	}
	if len(result) != 1 || result[0].ID != "subj-b" {
		t.Errorf("期望仅返回 subj-b，实际=%+v", result)
	}
}

// ── Update 测试 ──

func TestSubjectService_Update_Partial(t *testing.T) {
	svc, subjectRepo, _ := setupTestSubjectService()

	subjectRepo.subjects["subj-1"] = &model.Subject{
		SubjectID: "subj-1", Name: "网络基础", MaxScore: 100, EstimatedDays: 7,
	}

	newName := "计算机网络"
	result, err := svc.Update(context.Background(), "subj-1", &dto.UpdateSubjectRequest{Name: &newName}, "staff-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "计算机网络" {
		t.Errorf("期望更新后的名称，实际=%s", result.Name)
	}
	if result.MaxScore != 100 || result.EstimatedDays != 7 {
		t.Error("未提交的字段不应被改动")
	}
}

// ── Delete 测试 ──

func TestSubjectService_Delete_InUse(t *testing.T) {
	svc, subjectRepo, _ := setupTestSubjectService()

	subjectRepo.subjects["subj-1"] = &model.Subject{SubjectID: "subj-1", Name: "数据结构"}
	subjectRepo.refCount["subj-1"] = 2

	err := svc.Delete(context.Background(), "subj-1")
	if !errors.Is(err, ErrSubjectInUse) {
		t.Errorf("期望 ErrSubjectInUse，实际: %v", err)
	}
	if _, ok := subjectRepo.subjects["subj-1"]; !ok {
		t.Error("被引用的科目不应被删除")
	}
}

func TestSubjectService_Delete_CascadesTemplateTasks(t *testing.T) {
	svc, subjectRepo, taskRepo := setupTestSubjectService()

	subjectRepo.subjects["subj-1"] = &model.Subject{SubjectID: "subj-1", Name: "操作系统"}
	taskRepo.tasks["task-1"] = &model.Task{
		TaskID: "task-1", Name: "阅读讲义",
		TaskableKind: model.TaskableSubject, TaskableID: "subj-1",
	}

	if err := svc.Delete(context.Background(), "subj-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(subjectRepo.subjects) != 0 {
		t.Error("科目应被删除")
	}
	if len(taskRepo.tasks) != 0 {
		t.Error("模板任务应随科目删除")
	}
}
