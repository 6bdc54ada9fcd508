package dto

// ── 用户模块 DTO ──

// ResetPasswordResponse 重置密码响应，临时密码只在本次响应中返回
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}
