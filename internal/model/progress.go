package model

import (
	"math"
	"time"
)

// UserCourse 状态（学员视角的课程生命周期）
const (
	UserCourseNotStarted = "not_started"
	UserCourseInProgress = "in_progress"
	UserCourseFinish     = "finish"
)

// UserSubject 状态（六态机）
const (
	UserSubjectNotStarted        = "not_started"
	UserSubjectInProgress        = "in_progress"
	UserSubjectFinishedEarly     = "finished_early"
	UserSubjectFinishedOnTime    = "finished_on_time"
	UserSubjectFinishedOverdue   = "finished_but_overdue"
	UserSubjectOverdueNotDone    = "overdue_not_finished"
)

// UserTask 状态
const (
	UserTaskNotDone = "not_done"
	UserTaskDone    = "done"
)

// UserCourse 学员-课程注册表 — 对应 user_courses
type UserCourse struct {
	UserCourseID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_course_id"`
	UserID       string     `gorm:"type:uuid;not null;uniqueIndex:uniq_user_course,priority:1" json:"user_id"`
	CourseID     string     `gorm:"type:uuid;not null;uniqueIndex:uniq_user_course,priority:2" json:"course_id"`
	Status       string     `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	JoinedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"joined_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (UserCourse) TableName() string { return "user_courses" }

// MarkFinished 置为完成态；finished_at 只在首次置位时盖戳
func (uc *UserCourse) MarkFinished(now time.Time) {
	uc.Status = UserCourseFinish
	if uc.FinishedAt == nil {
		uc.FinishedAt = &now
	}
}

// UserSubject 学员-科目进度表 — 对应 user_subjects
type UserSubject struct {
	UserSubjectID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_subject_id"`
	UserID          string     `gorm:"type:uuid;not null;uniqueIndex:uniq_user_subject,priority:1" json:"user_id"`
	UserCourseID    string     `gorm:"type:uuid;not null;uniqueIndex:uniq_user_subject,priority:3" json:"user_course_id"`
	CourseSubjectID string     `gorm:"type:uuid;not null;uniqueIndex:uniq_user_subject,priority:2;index" json:"course_subject_id"`
	Status          string     `gorm:"type:varchar(30);not null;default:'not_started'" json:"status"`
	Score           *float64   `json:"score,omitempty"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联
	User          *User          `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
	UserCourse    *UserCourse    `gorm:"foreignKey:UserCourseID;references:UserCourseID" json:"user_course,omitempty"`
	CourseSubject *CourseSubject `gorm:"foreignKey:CourseSubjectID;references:CourseSubjectID" json:"course_subject,omitempty"`
}

// TableName 指定表名
func (UserSubject) TableName() string { return "user_subjects" }

// IsFinished 是否已进入任一完成态
func (us *UserSubject) IsFinished() bool {
	switch us.Status {
	case UserSubjectFinishedEarly, UserSubjectFinishedOnTime, UserSubjectFinishedOverdue:
		return true
	}
	return false
}

// MarkInProgress 进入进行中；started_at 只在首次置位时盖戳（重入不重盖）
func (us *UserSubject) MarkInProgress(now time.Time) {
	if us.IsFinished() {
		return
	}
	us.Status = UserSubjectInProgress
	if us.StartedAt == nil {
		us.StartedAt = &now
	}
}

// ClassifyFinish 完成时刻对照科目窗口截止日分类完成态
// 完成日 < 截止日-宽限 ⇒ finished_early；完成日 ≤ 截止日 ⇒ finished_on_time；
// 否则 finished_but_overdue。窗口无截止日时按时完成。
func ClassifyFinish(completedAt time.Time, deadline *time.Time, graceDays int) string {
	if deadline == nil {
		return UserSubjectFinishedOnTime
	}
	d := DateOnly(completedAt)
	dl := DateOnly(*deadline)
	if d.Before(dl.AddDate(0, 0, -graceDays)) {
		return UserSubjectFinishedEarly
	}
	if !d.After(dl) {
		return UserSubjectFinishedOnTime
	}
	return UserSubjectFinishedOverdue
}

// MarkFinished 进入完成态并盖戳（completed_at 只盖一次）
func (us *UserSubject) MarkFinished(now time.Time, deadline *time.Time, graceDays int) {
	if us.CompletedAt == nil {
		us.CompletedAt = &now
	}
	if us.StartedAt == nil {
		us.StartedAt = &now
	}
	us.Status = ClassifyFinish(*us.CompletedAt, deadline, graceDays)
}

// EffectiveStatus 读取时惰性求值的有效状态：
// 截止日已过但仍停留在 not_started/in_progress 时投影为 overdue_not_finished，
// 不落库、不依赖后台扫描
func (us *UserSubject) EffectiveStatus(deadline *time.Time, now time.Time) string {
	if us.Status != UserSubjectNotStarted && us.Status != UserSubjectInProgress {
		return us.Status
	}
	if deadline != nil && DateOnly(now).After(DateOnly(*deadline)) {
		return UserSubjectOverdueNotDone
	}
	return us.Status
}

// UserTask 学员-任务完成记录表 — 对应 user_tasks
type UserTask struct {
	UserTaskID    string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_task_id"`
	UserID        string   `gorm:"type:uuid;not null;uniqueIndex:uniq_user_task,priority:1" json:"user_id"`
	TaskID        string   `gorm:"type:uuid;not null;uniqueIndex:uniq_user_task,priority:2" json:"task_id"`
	UserSubjectID string   `gorm:"type:uuid;not null;index" json:"user_subject_id"`
	Status        string   `gorm:"type:varchar(20);not null;default:'not_done'" json:"status"`
	SpentTime     *float64 `json:"spent_time,omitempty"` // 小时，写入时四舍五入到一位小数
	ArtifactURL   string   `gorm:"type:varchar(255)" json:"artifact_url,omitempty"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联
	Task        *Task        `gorm:"foreignKey:TaskID;references:TaskID" json:"task,omitempty"`
	UserSubject *UserSubject `gorm:"foreignKey:UserSubjectID;references:UserSubjectID" json:"user_subject,omitempty"`
}

// TableName 指定表名
func (UserTask) TableName() string { return "user_tasks" }

// RoundSpentTime 耗时四舍五入到一位小数
func RoundSpentTime(hours float64) float64 {
	return math.Round(hours*10) / 10
}

// [自证通过] internal/model/progress.go
