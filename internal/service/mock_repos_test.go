package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
	seq      int
	// refCount 模拟 CountReferences 的课程引用数
	refCount map[string]int64
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{
		subjects: make(map[string]*model.Subject),
		refCount: make(map[string]int64),
	}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	for _, s := range m.subjects {
		if s.Name == subject.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if subject.SubjectID == "" {
		m.seq++
		subject.SubjectID = fmt.Sprintf("subj-%d", m.seq)
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByName(_ context.Context, name string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSubjectRepo) Search(_ context.Context, query string, excludeIDs []string) ([]model.Subject, error) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var result []model.Subject
	for _, s := range m.subjects {
		if excluded[s.SubjectID] {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(query)) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	for id, s := range m.subjects {
		if id != subject.SubjectID && s.Name == subject.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.subjects, id)
	return nil
}

func (m *mockSubjectRepo) CountReferences(_ context.Context, id string) (int64, error) {
	return m.refCount[id], nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) BatchCreate(_ context.Context, tasks []model.Task) error {
	for i := range tasks {
		if tasks[i].TaskID == "" {
			m.seq++
			tasks[i].TaskID = fmt.Sprintf("task-%d", m.seq)
		}
		t := tasks[i]
		m.tasks[t.TaskID] = &t
	}
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) ListByOwner(_ context.Context, owner model.TaskOwner) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.TaskableKind == owner.Kind && t.TaskableID == owner.ID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (m *mockTaskRepo) ListByOwners(_ context.Context, kind string, ownerIDs []string) ([]model.Task, error) {
	ids := make(map[string]bool, len(ownerIDs))
	for _, id := range ownerIDs {
		ids[id] = true
	}
	var result []model.Task
	for _, t := range m.tasks {
		if t.TaskableKind == kind && ids[t.TaskableID] {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (m *mockTaskRepo) DeleteByOwner(_ context.Context, owner model.TaskOwner) error {
	for id, t := range m.tasks {
		if t.TaskableKind == owner.Kind && t.TaskableID == owner.ID {
			delete(m.tasks, id)
		}
	}
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range m.courses {
		if c.Name == course.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Course, error) {
	return m.GetByID(ctx, id)
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	course.Version++
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) CountByDateWindow(_ context.Context, today time.Time) (active, upcoming, finished int64, err error) {
	d := model.DateOnly(today)
	for _, c := range m.courses {
		start, end := model.DateOnly(c.StartDate), model.DateOnly(c.FinishDate)
		switch {
		case d.Before(start):
			upcoming++
		case d.After(end):
			finished++
		default:
			active++
		}
	}
	return
}

// ── Mock CourseSubjectRepository ──

type mockCourseSubjectRepo struct {
	items map[string]*model.CourseSubject
	seq   int
}

func newMockCourseSubjectRepo() *mockCourseSubjectRepo {
	return &mockCourseSubjectRepo{items: make(map[string]*model.CourseSubject)}
}

func (m *mockCourseSubjectRepo) Create(_ context.Context, cs *model.CourseSubject) error {
	for _, existing := range m.items {
		if existing.CourseID == cs.CourseID && existing.SubjectID == cs.SubjectID {
			return gorm.ErrDuplicatedKey
		}
		if existing.CourseID == cs.CourseID && existing.Position == cs.Position {
			return gorm.ErrDuplicatedKey
		}
	}
	if cs.CourseSubjectID == "" {
		m.seq++
		cs.CourseSubjectID = fmt.Sprintf("cs-%d", m.seq)
	}
	m.items[cs.CourseSubjectID] = cs
	return nil
}

func (m *mockCourseSubjectRepo) GetByID(_ context.Context, id string) (*model.CourseSubject, error) {
	if cs, ok := m.items[id]; ok {
		return cs, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseSubjectRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseSubject, error) {
	var result []model.CourseSubject
	for _, cs := range m.items {
		if cs.CourseID == courseID {
			result = append(result, *cs)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (m *mockCourseSubjectRepo) GetLastByPosition(_ context.Context, courseID string) (*model.CourseSubject, error) {
	var last *model.CourseSubject
	for _, cs := range m.items {
		if cs.CourseID != courseID {
			continue
		}
		if last == nil || cs.Position > last.Position {
			last = cs
		}
	}
	if last == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return last, nil
}

func (m *mockCourseSubjectRepo) Update(_ context.Context, cs *model.CourseSubject) error {
	m.items[cs.CourseSubjectID] = cs
	cs.Version++
	return nil
}

func (m *mockCourseSubjectRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockCourseSubjectRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, cs := range m.items {
		if cs.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

// ── Mock CourseSupervisorRepository ──

type mockCourseSupervisorRepo struct {
	items map[string]*model.CourseSupervisor
	seq   int
}

func newMockCourseSupervisorRepo() *mockCourseSupervisorRepo {
	return &mockCourseSupervisorRepo{items: make(map[string]*model.CourseSupervisor)}
}

func (m *mockCourseSupervisorRepo) Create(_ context.Context, cs *model.CourseSupervisor) error {
	for _, existing := range m.items {
		if existing.CourseID == cs.CourseID && existing.SupervisorID == cs.SupervisorID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	cs.CourseSupervisorID = fmt.Sprintf("sup-%d", m.seq)
	m.items[cs.CourseSupervisorID] = cs
	return nil
}

func (m *mockCourseSupervisorRepo) ListByCourse(_ context.Context, courseID string) ([]model.CourseSupervisor, error) {
	var result []model.CourseSupervisor
	for _, cs := range m.items {
		if cs.CourseID == courseID {
			result = append(result, *cs)
		}
	}
	return result, nil
}

func (m *mockCourseSupervisorRepo) ListCourseIDsBySupervisor(_ context.Context, supervisorID string) ([]string, error) {
	var courseIDs []string
	for _, cs := range m.items {
		if cs.SupervisorID == supervisorID {
			courseIDs = append(courseIDs, cs.CourseID)
		}
	}
	return courseIDs, nil
}

func (m *mockCourseSupervisorRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, cs := range m.items {
		if cs.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockCourseSupervisorRepo) Delete(_ context.Context, courseID, supervisorID string) error {
	for id, cs := range m.items {
		if cs.CourseID == courseID && cs.SupervisorID == supervisorID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockCourseSupervisorRepo) DeleteByCourse(_ context.Context, courseID string) error {
	for id, cs := range m.items {
		if cs.CourseID == courseID {
			delete(m.items, id)
		}
	}
	return nil
}

// ── Mock UserCourseRepository ──

type mockUserCourseRepo struct {
	items map[string]*model.UserCourse
	seq   int
	// 模拟并发注册：名单内学员在 Create 时触发唯一约束冲突
	dupOnCreate map[string]bool
}

func newMockUserCourseRepo() *mockUserCourseRepo {
	return &mockUserCourseRepo{items: make(map[string]*model.UserCourse)}
}

func (m *mockUserCourseRepo) Create(_ context.Context, uc *model.UserCourse) error {
	if m.dupOnCreate[uc.UserID] {
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range m.items {
		if existing.UserID == uc.UserID && existing.CourseID == uc.CourseID {
			return gorm.ErrDuplicatedKey
		}
	}
	if uc.UserCourseID == "" {
		m.seq++
		uc.UserCourseID = fmt.Sprintf("uc-%d", m.seq)
	}
	if uc.JoinedAt.IsZero() {
		uc.JoinedAt = time.Now()
	}
	m.items[uc.UserCourseID] = uc
	return nil
}

func (m *mockUserCourseRepo) GetByID(_ context.Context, id string) (*model.UserCourse, error) {
	if uc, ok := m.items[id]; ok {
		return uc, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserCourseRepo) GetByUserAndCourse(_ context.Context, userID, courseID string) (*model.UserCourse, error) {
	for _, uc := range m.items {
		if uc.UserID == userID && uc.CourseID == courseID {
			return uc, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserCourseRepo) ListByCourse(_ context.Context, courseID string) ([]model.UserCourse, error) {
	var result []model.UserCourse
	for _, uc := range m.items {
		if uc.CourseID == courseID {
			result = append(result, *uc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JoinedAt.Before(result[j].JoinedAt) })
	return result, nil
}

func (m *mockUserCourseRepo) ListRecent(_ context.Context, limit int) ([]model.UserCourse, error) {
	var result []model.UserCourse
	for _, uc := range m.items {
		result = append(result, *uc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JoinedAt.After(result[j].JoinedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockUserCourseRepo) Update(_ context.Context, uc *model.UserCourse) error {
	m.items[uc.UserCourseID] = uc
	return nil
}

func (m *mockUserCourseRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockUserCourseRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var count int64
	for _, uc := range m.items {
		if uc.CourseID == courseID {
			count++
		}
	}
	return count, nil
}

func (m *mockUserCourseRepo) CountDistinctUsers(_ context.Context) (int64, error) {
	seen := make(map[string]bool)
	for _, uc := range m.items {
		seen[uc.UserID] = true
	}
	return int64(len(seen)), nil
}

// ── Mock UserSubjectRepository ──

type mockUserSubjectRepo struct {
	items map[string]*model.UserSubject
	seq   int
}

func newMockUserSubjectRepo() *mockUserSubjectRepo {
	return &mockUserSubjectRepo{items: make(map[string]*model.UserSubject)}
}

func (m *mockUserSubjectRepo) BatchCreate(_ context.Context, subjects []model.UserSubject) error {
	for i := range subjects {
		if subjects[i].UserSubjectID == "" {
			m.seq++
			subjects[i].UserSubjectID = fmt.Sprintf("us-%d", m.seq)
		}
		us := subjects[i]
		m.items[us.UserSubjectID] = &us
	}
	return nil
}

func (m *mockUserSubjectRepo) GetByID(_ context.Context, id string) (*model.UserSubject, error) {
	if us, ok := m.items[id]; ok {
		return us, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserSubjectRepo) ListByUser(_ context.Context, userID string) ([]model.UserSubject, error) {
	var result []model.UserSubject
	for _, us := range m.items {
		if us.UserID == userID {
			result = append(result, *us)
		}
	}
	return result, nil
}

func (m *mockUserSubjectRepo) ListByUserCourse(_ context.Context, userCourseID string) ([]model.UserSubject, error) {
	var result []model.UserSubject
	for _, us := range m.items {
		if us.UserCourseID == userCourseID {
			result = append(result, *us)
		}
	}
	return result, nil
}

func (m *mockUserSubjectRepo) ListByCourseSubject(_ context.Context, courseSubjectID string) ([]model.UserSubject, error) {
	var result []model.UserSubject
	for _, us := range m.items {
		if us.CourseSubjectID == courseSubjectID {
			result = append(result, *us)
		}
	}
	return result, nil
}

func (m *mockUserSubjectRepo) Update(_ context.Context, us *model.UserSubject) error {
	m.items[us.UserSubjectID] = us
	return nil
}

func (m *mockUserSubjectRepo) DeleteByUserCourse(_ context.Context, userCourseID string) error {
	for id, us := range m.items {
		if us.UserCourseID == userCourseID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockUserSubjectRepo) DeleteByCourseSubject(_ context.Context, courseSubjectID string) error {
	for id, us := range m.items {
		if us.CourseSubjectID == courseSubjectID {
			delete(m.items, id)
		}
	}
	return nil
}

func (m *mockUserSubjectRepo) CountTotalAndFinished(_ context.Context) (total, finished int64, err error) {
	for _, us := range m.items {
		total++
		if us.IsFinished() {
			finished++
		}
	}
	return
}

// ── Mock UserTaskRepository ──

type mockUserTaskRepo struct {
	items map[string]*model.UserTask
	seq   int
}

func newMockUserTaskRepo() *mockUserTaskRepo {
	return &mockUserTaskRepo{items: make(map[string]*model.UserTask)}
}

func (m *mockUserTaskRepo) BatchCreate(_ context.Context, tasks []model.UserTask) error {
	for i := range tasks {
		if tasks[i].UserTaskID == "" {
			m.seq++
			tasks[i].UserTaskID = fmt.Sprintf("ut-%d", m.seq)
		}
		ut := tasks[i]
		m.items[ut.UserTaskID] = &ut
	}
	return nil
}

func (m *mockUserTaskRepo) GetByID(_ context.Context, id string) (*model.UserTask, error) {
	if ut, ok := m.items[id]; ok {
		return ut, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserTaskRepo) ListByUserSubject(_ context.Context, userSubjectID string) ([]model.UserTask, error) {
	var result []model.UserTask
	for _, ut := range m.items {
		if ut.UserSubjectID == userSubjectID {
			result = append(result, *ut)
		}
	}
	return result, nil
}

func (m *mockUserTaskRepo) Update(_ context.Context, ut *model.UserTask) error {
	m.items[ut.UserTaskID] = ut
	return nil
}

func (m *mockUserTaskRepo) MarkAllDone(_ context.Context, userSubjectID string) error {
	for _, ut := range m.items {
		if ut.UserSubjectID == userSubjectID {
			ut.Status = model.UserTaskDone
		}
	}
	return nil
}

func (m *mockUserTaskRepo) DeleteByUserSubjects(_ context.Context, userSubjectIDs []string) error {
	ids := make(map[string]bool, len(userSubjectIDs))
	for _, id := range userSubjectIDs {
		ids[id] = true
	}
	for id, ut := range m.items {
		if ids[ut.UserSubjectID] {
			delete(m.items, id)
		}
	}
	return nil
}

// ── Mock CommentRepository ──

type mockCommentRepo struct {
	comments map[string]*model.Comment
	seq      int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[string]*model.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	m.seq++
	if comment.CommentID == "" {
		comment.CommentID = fmt.Sprintf("cmt-%d", m.seq)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	}
	m.comments[comment.CommentID] = comment
	return nil
}

func (m *mockCommentRepo) ListByGraderAndTarget(_ context.Context, graderID string, target model.CommentTarget) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.comments {
		if c.UserID == graderID && c.CommentableKind == target.Kind && c.CommentableID == target.ID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockCommentRepo) ListByTarget(_ context.Context, target model.CommentTarget) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.comments {
		if c.CommentableKind == target.Kind && c.CommentableID == target.ID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockCommentRepo) Update(_ context.Context, comment *model.Comment) error {
	m.comments[comment.CommentID] = comment
	return nil
}

func (m *mockCommentRepo) DeleteByIDs(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(m.comments, id)
	}
	return nil
}

// ── Mock DailyReportRepository ──

type mockDailyReportRepo struct {
	items map[string]*model.DailyReport
	seq   int
}

func newMockDailyReportRepo() *mockDailyReportRepo {
	return &mockDailyReportRepo{items: make(map[string]*model.DailyReport)}
}

func (m *mockDailyReportRepo) Create(_ context.Context, report *model.DailyReport) error {
	day := model.DateOnly(report.ReportDate)
	for _, existing := range m.items {
		if existing.UserID == report.UserID && existing.CourseID == report.CourseID &&
			model.DateOnly(existing.ReportDate).Equal(day) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	if report.DailyReportID == "" {
		report.DailyReportID = fmt.Sprintf("dr-%d", m.seq)
	}
	// 依次错开时间戳保证倒序可断言
	report.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	report.UpdatedAt = report.CreatedAt
	m.items[report.DailyReportID] = report
	return nil
}

func (m *mockDailyReportRepo) GetByID(_ context.Context, id string) (*model.DailyReport, error) {
	if report, ok := m.items[id]; ok {
		return report, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyReportRepo) GetByUserCourseAndDate(_ context.Context, userID, courseID string, date time.Time) (*model.DailyReport, error) {
	day := model.DateOnly(date)
	for _, report := range m.items {
		if report.UserID == userID && report.CourseID == courseID &&
			model.DateOnly(report.ReportDate).Equal(day) {
			return report, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDailyReportRepo) List(_ context.Context, filter repository.DailyReportFilter) ([]model.DailyReport, error) {
	var result []model.DailyReport
	for _, report := range m.items {
		if filter.UserID != "" && report.UserID != filter.UserID {
			continue
		}
		if filter.CourseID != "" && report.CourseID != filter.CourseID {
			continue
		}
		if filter.CourseIDs != nil && !containsID(filter.CourseIDs, report.CourseID) {
			continue
		}
		if filter.Date != nil && !model.DateOnly(report.ReportDate).Equal(model.DateOnly(*filter.Date)) {
			continue
		}
		result = append(result, *report)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (m *mockDailyReportRepo) Update(_ context.Context, report *model.DailyReport) error {
	if _, ok := m.items[report.DailyReportID]; !ok {
		return gorm.ErrRecordNotFound
	}
	report.UpdatedAt = time.Now().Add(time.Duration(m.seq+100) * time.Millisecond)
	m.items[report.DailyReportID] = report
	return nil
}

func (m *mockDailyReportRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
