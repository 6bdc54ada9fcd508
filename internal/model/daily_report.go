package model

import "time"

// DailyReport 状态
const (
	DailyReportDraft     = "draft"
	DailyReportSubmitted = "submitted"
)

// DailyReport 每日学习报告表 — 对应 daily_reports
// 学员在课程内每天最多一条（user_id + course_id + report_date 唯一）
type DailyReport struct {
	DailyReportID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"daily_report_id"`
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:uniq_daily_report_day,priority:1" json:"user_id"`
	CourseID      string    `gorm:"type:uuid;not null;uniqueIndex:uniq_daily_report_day,priority:2" json:"course_id"`
	Content       string    `gorm:"type:text" json:"content"`
	Status        string    `gorm:"type:varchar(20);not null;default:'draft'" json:"status"` // draft | submitted
	ReportDate    time.Time `gorm:"type:date;not null;uniqueIndex:uniq_daily_report_day,priority:3" json:"report_date"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName 指定表名
func (DailyReport) TableName() string { return "daily_reports" }

// IsSubmitted 是否已提交
func (dr *DailyReport) IsSubmitted() bool { return dr.Status == DailyReportSubmitted }
