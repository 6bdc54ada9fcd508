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

type dailyReportTestEnv struct {
	ucRepo         *mockUserCourseRepo
	supervisorRepo *mockCourseSupervisorRepo
	reportRepo     *mockDailyReportRepo
}

func setupTestDailyReportService() (DailyReportService, *dailyReportTestEnv) {
	env := &dailyReportTestEnv{
		ucRepo:         newMockUserCourseRepo(),
		supervisorRepo: newMockCourseSupervisorRepo(),
		reportRepo:     newMockDailyReportRepo(),
	}
	repo := &repository.Repository{
		UserCourse:       env.ucRepo,
		CourseSupervisor: env.supervisorRepo,
		DailyReport:      env.reportRepo,
	}
	svc := NewDailyReportService(repo, zap.NewNop())
	return svc, env
}

// seedReportEnrollment 把学员注册进课程，日报写入依赖注册记录
func seedReportEnrollment(env *dailyReportTestEnv, userID, courseID string) {
	id := "uc-" + userID + "-" + courseID
	env.ucRepo.items[id] = &model.UserCourse{
		UserCourseID: id,
		UserID:       userID,
		CourseID:     courseID,
		Status:       model.UserCourseInProgress,
		JoinedAt:     time.Now(),
	}
}

// ── Create 测试 ──

func TestDailyReportService_Create(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")

	result, err := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1",
		Content:  "完成了 Go 入门的前两个任务",
	}, "trainee-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.DailyReportDraft {
		t.Errorf("缺省状态应为 draft，实际=%s", result.Status)
	}
	if result.ReportDate != model.DateOnly(time.Now()).Format("2006-01-02") {
		t.Errorf("缺省日期应为当天，实际=%s", result.ReportDate)
	}
	if len(env.reportRepo.items) != 1 {
		t.Errorf("期望 1 条日报，实际=%d", len(env.reportRepo.items))
	}
}

func TestDailyReportService_Create_OnePerDay(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")

	req := &dto.CreateDailyReportRequest{CourseID: "course-1", Content: "第一条", ReportDate: "2024-01-15"}
	if _, err := svc.Create(context.Background(), req, "trainee-001"); err != nil {
		t.Fatalf("首条日报应成功: %v", err)
	}

	_, err := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1", Content: "第二条", ReportDate: "2024-01-15",
	}, "trainee-001")
	if !errors.Is(err, ErrDailyReportExists) {
		t.Errorf("期望 ErrDailyReportExists，实际: %v", err)
	}

	// 换一天可以继续写
	if _, err := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1", Content: "次日", ReportDate: "2024-01-16",
	}, "trainee-001"); err != nil {
		t.Errorf("次日的日报应成功: %v", err)
	}
}

func TestDailyReportService_Create_NotEnrolled(t *testing.T) {
	svc, env := setupTestDailyReportService()

	_, err := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1", Content: "内容",
	}, "trainee-001")
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("期望 ErrNotEnrolled，实际: %v", err)
	}
	if len(env.reportRepo.items) != 0 {
		t.Error("未注册课程不应产生日报")
	}
}

// ── Update / Delete 测试 ──

func TestDailyReportService_Update_SubmitTransition(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")

	created, err := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1", Content: "草稿",
	}, "trainee-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	content := "修订后的内容"
	status := model.DailyReportSubmitted
	result, err := svc.Update(context.Background(), created.ID, &dto.UpdateDailyReportRequest{
		Content: &content, Status: &status,
	}, "trainee-001")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Status != model.DailyReportSubmitted {
		t.Errorf("期望 submitted，实际=%s", result.Status)
	}
	if result.Content != "修订后的内容" {
		t.Errorf("内容应被更新，实际=%q", result.Content)
	}
}

func TestDailyReportService_Update_NotOwner(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")

	created, _ := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1", Content: "草稿",
	}, "trainee-001")

	content := "篡改"
	_, err := svc.Update(context.Background(), created.ID, &dto.UpdateDailyReportRequest{Content: &content}, "trainee-999")
	if !errors.Is(err, ErrNotReportOwner) {
		t.Errorf("期望 ErrNotReportOwner，实际: %v", err)
	}
}

func TestDailyReportService_Delete(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")

	created, _ := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1", Content: "草稿",
	}, "trainee-001")

	if err := svc.Delete(context.Background(), created.ID, "trainee-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(env.reportRepo.items) != 0 {
		t.Error("日报应被删除")
	}

	if err := svc.Delete(context.Background(), created.ID, "trainee-001"); !errors.Is(err, ErrDailyReportNotFound) {
		t.Errorf("期望 ErrDailyReportNotFound，实际: %v", err)
	}
}

// ── 查询测试 ──

func TestDailyReportService_GetByID_TraineeScope(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")

	created, _ := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: "course-1", Content: "内容",
	}, "trainee-001")

	// 本人可见
	if _, err := svc.GetByID(context.Background(), created.ID, "trainee-001", model.RoleTrainee); err != nil {
		t.Errorf("本人应可见: %v", err)
	}
	// 其他学员不可见
	if _, err := svc.GetByID(context.Background(), created.ID, "trainee-002", model.RoleTrainee); !errors.Is(err, ErrNotReportOwner) {
		t.Errorf("期望 ErrNotReportOwner，实际: %v", err)
	}
	// 管理角色可见
	if _, err := svc.GetByID(context.Background(), created.ID, "staff-001", model.RoleSupervisor); err != nil {
		t.Errorf("负责人应可见: %v", err)
	}
}

func TestDailyReportService_ListMine_Filters(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")
	seedReportEnrollment(env, "trainee-001", "course-2")
	seedReportEnrollment(env, "trainee-002", "course-1")

	mustCreateReport(t, svc, "trainee-001", "course-1", "2024-01-15")
	mustCreateReport(t, svc, "trainee-001", "course-2", "2024-01-15")
	mustCreateReport(t, svc, "trainee-001", "course-1", "2024-01-16")
	mustCreateReport(t, svc, "trainee-002", "course-1", "2024-01-15")

	// 只列出本人的
	all, err := svc.ListMine(context.Background(), "trainee-001", repository.DailyReportFilter{})
	if err != nil {
		t.Fatalf("ListMine 应成功: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("期望 3 条，实际=%d", len(all))
	}

	// 课程过滤
	byCourse, _ := svc.ListMine(context.Background(), "trainee-001", repository.DailyReportFilter{CourseID: "course-2"})
	if len(byCourse) != 1 {
		t.Errorf("按课程过滤期望 1 条，实际=%d", len(byCourse))
	}

	// 日期过滤
	day, _ := time.Parse("2006-01-02", "2024-01-16")
	byDate, _ := svc.ListMine(context.Background(), "trainee-001", repository.DailyReportFilter{Date: &day})
	if len(byDate) != 1 {
		t.Errorf("按日期过滤期望 1 条，实际=%d", len(byDate))
	}
}

func TestDailyReportService_ListForStaff_SupervisorScope(t *testing.T) {
	svc, env := setupTestDailyReportService()
	seedReportEnrollment(env, "trainee-001", "course-1")
	seedReportEnrollment(env, "trainee-002", "course-2")
	env.supervisorRepo.items["sup-1"] = &model.CourseSupervisor{
		CourseSupervisorID: "sup-1", CourseID: "course-1", SupervisorID: "staff-001",
	}

	mustCreateReport(t, svc, "trainee-001", "course-1", "2024-01-15")
	mustCreateReport(t, svc, "trainee-002", "course-2", "2024-01-15")

	// 负责人只见名下课程
	scoped, err := svc.ListForStaff(context.Background(), "staff-001", model.RoleSupervisor, repository.DailyReportFilter{})
	if err != nil {
		t.Fatalf("ListForStaff 应成功: %v", err)
	}
	if len(scoped) != 1 || scoped[0].CourseID != "course-1" {
		t.Errorf("负责人应只见 course-1 的日报，实际=%d 条", len(scoped))
	}

	// 没有负责课程的负责人列表为空
	empty, _ := svc.ListForStaff(context.Background(), "staff-999", model.RoleSupervisor, repository.DailyReportFilter{})
	if len(empty) != 0 {
		t.Errorf("无负责课程时期望空列表，实际=%d 条", len(empty))
	}

	// 管理员不受课程范围限制
	all, _ := svc.ListForStaff(context.Background(), "admin-001", model.RoleAdmin, repository.DailyReportFilter{})
	if len(all) != 2 {
		t.Errorf("管理员应见全部日报，实际=%d 条", len(all))
	}
}

func mustCreateReport(t *testing.T, svc DailyReportService, userID, courseID, date string) {
	t.Helper()
	if _, err := svc.Create(context.Background(), &dto.CreateDailyReportRequest{
		CourseID: courseID, Content: "日报内容", ReportDate: date,
	}, userID); err != nil {
		t.Fatalf("创建日报失败 user=%s course=%s date=%s: %v", userID, courseID, date, err)
	}
}
