package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nguyenbaduy011/IE221-be/internal/dto"
	"github.com/nguyenbaduy011/IE221-be/internal/model"
	"github.com/nguyenbaduy011/IE221-be/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound        = errors.New("课程不存在")
	ErrCourseNameTaken       = errors.New("课程名称已存在")
	ErrCourseDateInvalid     = errors.New("课程结束日期不能早于开始日期")
	ErrCourseDateFormat      = errors.New("日期格式不正确，应为 YYYY-MM-DD")
	ErrAttachTargetRequired  = errors.New("必须指定已有科目或提供新科目信息")
	ErrDuplicateAttachment   = errors.New("该科目已挂载到此课程")
	ErrCourseSubjectNotFound = errors.New("课程内科目不存在")
	ErrSupervisorNotFound    = errors.New("负责人不存在")
	ErrSupervisorRole        = errors.New("该用户不具备负责人角色")
	ErrDuplicateSupervisor   = errors.New("该用户已是课程负责人")
	ErrLastSupervisorRemoval = errors.New("课程必须至少保留一名负责人")
)

// CourseService 课程编排业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	List(ctx context.Context) ([]dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error

	AttachSubject(ctx context.Context, courseID string, req *dto.AttachSubjectRequest, callerID string) (*dto.CourseSubjectResponse, error)
	DetachSubject(ctx context.Context, courseID, courseSubjectID string) error
	ListSubjects(ctx context.Context, courseID string) ([]dto.CourseSubjectResponse, error)

	AddSupervisor(ctx context.Context, courseID string, req *dto.AddSupervisorRequest) (*dto.SupervisorResponse, error)
	RemoveSupervisor(ctx context.Context, courseID, supervisorID string) error
	ListSupervisors(ctx context.Context, courseID string) ([]dto.SupervisorResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────
// 课程、负责人与首批科目挂载在同一事务内完成；
// 负责人列表为空时默认创建者本人

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrCourseDateFormat
	}
	finishDate, err := parseDate(req.FinishDate)
	if err != nil {
		return nil, ErrCourseDateFormat
	}
	if finishDate.Before(startDate) {
		return nil, ErrCourseDateInvalid
	}

	now := time.Now()
	course := &model.Course{
		Name:       req.Name,
		Link:       req.Link,
		ImageURL:   req.ImageURL,
		StartDate:  startDate,
		FinishDate: finishDate,
		CreatorID:  callerID,
	}
	course.RefreshStatus(now)
	course.CreatedBy = &callerID
	course.UpdatedBy = &callerID

	supervisorIDs := req.SupervisorIDs
	if len(supervisorIDs) == 0 {
		supervisorIDs = []string{callerID}
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

	if err := txRepo.Course.Create(ctx, course); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseNameTaken
		}
		s.logger.Error("创建课程失败", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	for _, supID := range dedupeIDs(supervisorIDs) {
		if err := txRepo.CourseSupervisor.Create(ctx, &model.CourseSupervisor{
			CourseID:     course.CourseID,
			SupervisorID: supID,
		}); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("添加课程负责人失败", zap.String("supervisor_id", supID), zap.Error(err))
			return nil, err
		}
	}

	// 按请求顺序逐一挂载科目；此时尚无注册学员，扩散环节自然空转
	for _, subjectID := range req.SubjectIDs {
		subject, err := txRepo.Subject.GetByID(ctx, subjectID)
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSubjectNotFound
			}
			return nil, err
		}
		if _, _, err := attachSubjectTx(ctx, txRepo, course, subject, nil, callerID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("课程创建成功",
		zap.String("course_id", course.CourseID),
		zap.Int("subjects", len(req.SubjectIDs)))
	return toCourseResponse(course), nil
}

// ────────────────────── GetByID / List ──────────────────────

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, *toCourseResponse(&courses[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────
// 起止日期变更后状态立即按新日期重算；乐观锁冲突原样上抛

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest, callerID string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Link != nil {
		course.Link = *req.Link
	}
	if req.ImageURL != nil {
		course.ImageURL = *req.ImageURL
	}
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, ErrCourseDateFormat
		}
		course.StartDate = d
	}
	if req.FinishDate != nil {
		d, err := parseDate(*req.FinishDate)
		if err != nil {
			return nil, ErrCourseDateFormat
		}
		course.FinishDate = d
	}
	if course.FinishDate.Before(course.StartDate) {
		return nil, ErrCourseDateInvalid
	}

	course.RefreshStatus(time.Now())
	course.UpdatedBy = &callerID

	if err := s.repo.Course.Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseNameTaken
		}
		s.logger.Error("更新课程失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toCourseResponse(course), nil
}

// ────────────────────── Delete ──────────────────────
// 有序级联：user_tasks → user_subjects → user_courses →
// 课程内任务 → course_subjects → 负责人 → 课程本体
// 不依赖外键级联，全部删除在单个事务内子先父后执行

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
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

	userCourses, err := txRepo.UserCourse.ListByCourse(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	for i := range userCourses {
		if err := deleteEnrollmentTx(ctx, txRepo, &userCourses[i]); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("清理注册记录失败",
				zap.String("user_course_id", userCourses[i].UserCourseID), zap.Error(err))
			return err
		}
	}

	courseSubjects, err := txRepo.CourseSubject.ListByCourse(ctx, id)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	for i := range courseSubjects {
		cs := &courseSubjects[i]
		if err := txRepo.Task.DeleteByOwner(ctx, model.TaskOwner{
			Kind: model.TaskableCourseSubject, ID: cs.CourseSubjectID,
		}); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return err
		}
		if err := txRepo.CourseSubject.Delete(ctx, cs.CourseSubjectID); err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return err
		}
	}

	if err := txRepo.CourseSupervisor.DeleteByCourse(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if err := txRepo.Course.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("课程已删除", zap.String("course_id", id))
	return nil
}

// ────────────────────── AttachSubject ──────────────────────
// 引用已有模板或现场新建模板二选一；
// position 分配在课程行锁下进行，并发挂载不会产生重复位次

func (s *courseService) AttachSubject(ctx context.Context, courseID string, req *dto.AttachSubjectRequest, callerID string) (*dto.CourseSubjectResponse, error) {
	if (req.SubjectID == "") == (req.NewSubject == nil) {
		return nil, ErrAttachTargetRequired
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

	course, err := txRepo.Course.GetByIDForUpdate(ctx, courseID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("锁定课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	var subject *model.Subject
	if req.SubjectID != "" {
		subject, err = txRepo.Subject.GetByID(ctx, req.SubjectID)
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSubjectNotFound
			}
			return nil, err
		}
	} else {
		subject, _, err = createSubjectWithTasks(ctx, txRepo, req.NewSubject, callerID)
		if err != nil {
			if tx != nil {
				tx.Rollback()
			}
			return nil, err
		}
	}

	cs, tasks, err := attachSubjectTx(ctx, txRepo, course, subject, req.ExtraTaskNames, callerID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if !errors.Is(err, ErrDuplicateAttachment) {
			s.logger.Error("挂载科目失败",
				zap.String("course_id", courseID),
				zap.String("subject_id", subject.SubjectID),
				zap.Error(err))
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("科目挂载成功",
		zap.String("course_id", courseID),
		zap.String("course_subject_id", cs.CourseSubjectID),
		zap.Int("position", cs.Position))

	cs.Subject = subject
	return toCourseSubjectResponse(cs, tasks), nil
}

// attachSubjectTx 在事务内完成一次挂载：
// position = 末位 + 1，日期窗口链式推导并收拢到课程结束日，
// 克隆模板任务、追加临时任务，再向所有已注册学员追溯扩散进度树。
// 课程行已被调用方锁定。
func attachSubjectTx(ctx context.Context, repo *repository.Repository, course *model.Course, subject *model.Subject, extraTaskNames []string, callerID string) (*model.CourseSubject, []model.Task, error) {
	position := 0
	var prevFinish *time.Time
	last, err := repo.CourseSubject.GetLastByPosition(ctx, course.CourseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	if last != nil {
		position = last.Position + 1
		prevFinish = last.FinishDate
	}

	start, finish := chainWindow(course, prevFinish, subject.EstimatedDays)

	cs := &model.CourseSubject{
		CourseID:   course.CourseID,
		SubjectID:  subject.SubjectID,
		Position:   position,
		StartDate:  start,
		FinishDate: finish,
	}
	cs.CreatedBy = &callerID
	cs.UpdatedBy = &callerID

	if err := repo.CourseSubject.Create(ctx, cs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrDuplicateAttachment
		}
		return nil, nil, err
	}

	// 模板任务克隆为课程内任务；临时任务排在模板任务之后
	templates, err := repo.Task.ListByOwner(ctx, model.TaskOwner{
		Kind: model.TaskableSubject, ID: subject.SubjectID,
	})
	if err != nil {
		return nil, nil, err
	}
	tasks := make([]model.Task, 0, len(templates)+len(extraTaskNames))
	for i := range templates {
		tasks = append(tasks, templates[i].CloneFor(cs.CourseSubjectID))
	}
	nextPos := len(templates)
	for i, name := range extraTaskNames {
		tasks = append(tasks, model.Task{
			Name:         name,
			TaskableKind: model.TaskableCourseSubject,
			TaskableID:   cs.CourseSubjectID,
			Position:     nextPos + i,
		})
	}
	if err := repo.Task.BatchCreate(ctx, tasks); err != nil {
		return nil, nil, err
	}

	// 追溯扩散：已注册学员立即获得新科目的完整进度树
	userCourses, err := repo.UserCourse.ListByCourse(ctx, course.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if len(userCourses) > 0 {
		userSubjects := make([]model.UserSubject, 0, len(userCourses))
		for i := range userCourses {
			userSubjects = append(userSubjects, model.UserSubject{
				UserID:          userCourses[i].UserID,
				UserCourseID:    userCourses[i].UserCourseID,
				CourseSubjectID: cs.CourseSubjectID,
				Status:          model.UserSubjectNotStarted,
			})
		}
		if err := repo.UserSubject.BatchCreate(ctx, userSubjects); err != nil {
			return nil, nil, err
		}

		userTasks := make([]model.UserTask, 0, len(userSubjects)*len(tasks))
		for i := range userSubjects {
			for j := range tasks {
				userTasks = append(userTasks, model.UserTask{
					UserID:        userSubjects[i].UserID,
					TaskID:        tasks[j].TaskID,
					UserSubjectID: userSubjects[i].UserSubjectID,
					Status:        model.UserTaskNotDone,
				})
			}
		}
		if err := repo.UserTask.BatchCreate(ctx, userTasks); err != nil {
			return nil, nil, err
		}
	}

	return cs, tasks, nil
}

// chainWindow 推导新挂载科目的日期窗口：
// 首个科目从课程开始日起算，其余从前一科目结束日的次日起算；
// 长度为预估天数，结束日收拢到课程结束日，起始日越界时整窗贴底
func chainWindow(course *model.Course, prevFinish *time.Time, estimatedDays int) (*time.Time, *time.Time) {
	start := model.DateOnly(course.StartDate)
	if prevFinish != nil {
		start = model.DateOnly(*prevFinish).AddDate(0, 0, 1)
	}

	courseEnd := model.DateOnly(course.FinishDate)
	if start.After(courseEnd) {
		start = courseEnd
	}

	finish := start
	if estimatedDays > 0 {
		finish = start.AddDate(0, 0, estimatedDays-1)
	}
	if finish.After(courseEnd) {
		finish = courseEnd
	}

	return &start, &finish
}

// ────────────────────── DetachSubject ──────────────────────
// 有序级联：学员任务 → 学员进度 → 课程内任务 → 编排项

func (s *courseService) DetachSubject(ctx context.Context, courseID, courseSubjectID string) error {
	cs, err := s.repo.CourseSubject.GetByID(ctx, courseSubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseSubjectNotFound
		}
		s.logger.Error("查询编排项失败", zap.String("id", courseSubjectID), zap.Error(err))
		return err
	}
	if cs.CourseID != courseID {
		return ErrCourseSubjectNotFound
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
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

	userSubjects, err := txRepo.UserSubject.ListByCourseSubject(ctx, courseSubjectID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	usIDs := make([]string, 0, len(userSubjects))
	for i := range userSubjects {
		usIDs = append(usIDs, userSubjects[i].UserSubjectID)
	}

	if err := txRepo.UserTask.DeleteByUserSubjects(ctx, usIDs); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if err := txRepo.UserSubject.DeleteByCourseSubject(ctx, courseSubjectID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if err := txRepo.Task.DeleteByOwner(ctx, model.TaskOwner{
		Kind: model.TaskableCourseSubject, ID: courseSubjectID,
	}); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}
	if err := txRepo.CourseSubject.Delete(ctx, courseSubjectID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	s.logger.Info("科目已从课程移除",
		zap.String("course_id", courseID),
		zap.String("course_subject_id", courseSubjectID))
	return nil
}

// ────────────────────── ListSubjects ──────────────────────

func (s *courseService) ListSubjects(ctx context.Context, courseID string) ([]dto.CourseSubjectResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	courseSubjects, err := s.repo.CourseSubject.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出课程科目失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	csIDs := make([]string, 0, len(courseSubjects))
	for i := range courseSubjects {
		csIDs = append(csIDs, courseSubjects[i].CourseSubjectID)
	}
	tasks, err := s.repo.Task.ListByOwners(ctx, model.TaskableCourseSubject, csIDs)
	if err != nil {
		s.logger.Error("列出课程任务失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	tasksByOwner := make(map[string][]model.Task, len(csIDs))
	for i := range tasks {
		tasksByOwner[tasks[i].TaskableID] = append(tasksByOwner[tasks[i].TaskableID], tasks[i])
	}

	result := make([]dto.CourseSubjectResponse, 0, len(courseSubjects))
	for i := range courseSubjects {
		cs := &courseSubjects[i]
		result = append(result, *toCourseSubjectResponse(cs, tasksByOwner[cs.CourseSubjectID]))
	}
	return result, nil
}

// ────────────────────── 负责人管理 ──────────────────────

func (s *courseService) AddSupervisor(ctx context.Context, courseID string, req *dto.AddSupervisorRequest) (*dto.SupervisorResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, req.SupervisorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupervisorNotFound
		}
		return nil, err
	}
	if !user.IsStaff() {
		return nil, ErrSupervisorRole
	}

	cs := &model.CourseSupervisor{
		CourseID:     courseID,
		SupervisorID: req.SupervisorID,
	}
	if err := s.repo.CourseSupervisor.Create(ctx, cs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSupervisor
		}
		s.logger.Error("添加负责人失败",
			zap.String("course_id", courseID),
			zap.String("supervisor_id", req.SupervisorID),
			zap.Error(err))
		return nil, err
	}

	return &dto.SupervisorResponse{
		SupervisorID: user.UserID,
		FullName:     user.FullName,
		Email:        user.Email,
		AddedAt:      cs.CreatedAt.Format(time.RFC3339),
	}, nil
}

// RemoveSupervisor 移除负责人；最后一名负责人不可移除
func (s *courseService) RemoveSupervisor(ctx context.Context, courseID, supervisorID string) error {
	count, err := s.repo.CourseSupervisor.CountByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("统计负责人失败", zap.String("course_id", courseID), zap.Error(err))
		return err
	}
	if count <= 1 {
		return ErrLastSupervisorRemoval
	}
	return s.repo.CourseSupervisor.Delete(ctx, courseID, supervisorID)
}

func (s *courseService) ListSupervisors(ctx context.Context, courseID string) ([]dto.SupervisorResponse, error) {
	supervisors, err := s.repo.CourseSupervisor.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出负责人失败", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SupervisorResponse, 0, len(supervisors))
	for i := range supervisors {
		sup := &supervisors[i]
		resp := dto.SupervisorResponse{
			SupervisorID: sup.SupervisorID,
			AddedAt:      sup.CreatedAt.Format(time.RFC3339),
		}
		if sup.Supervisor != nil {
			resp.FullName = sup.Supervisor.FullName
			resp.Email = sup.Supervisor.Email
		}
		result = append(result, resp)
	}
	return result, nil
}

// ── 内部辅助方法 ──

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:         course.CourseID,
		Name:       course.Name,
		Link:       course.Link,
		ImageURL:   course.ImageURL,
		StartDate:  formatDate(course.StartDate),
		FinishDate: formatDate(course.FinishDate),
		Status:     model.ComputeCourseStatus(course.StartDate, course.FinishDate, time.Now()),
		CreatorID:  course.CreatorID,
		CreatedAt:  course.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  course.UpdatedAt.Format(time.RFC3339),
	}
}

func toCourseSubjectResponse(cs *model.CourseSubject, tasks []model.Task) *dto.CourseSubjectResponse {
	resp := &dto.CourseSubjectResponse{
		ID:       cs.CourseSubjectID,
		CourseID: cs.CourseID,
		Position: cs.Position,
	}
	if cs.StartDate != nil {
		resp.StartDate = formatDate(*cs.StartDate)
	}
	if cs.FinishDate != nil {
		resp.FinishDate = formatDate(*cs.FinishDate)
	}
	if cs.Subject != nil {
		resp.Subject = &dto.SubjectResponse{
			ID:            cs.Subject.SubjectID,
			Name:          cs.Subject.Name,
			MaxScore:      cs.Subject.MaxScore,
			EstimatedDays: cs.Subject.EstimatedDays,
			ImageURL:      cs.Subject.ImageURL,
		}
	}
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&tasks[i]))
	}
	return resp
}
