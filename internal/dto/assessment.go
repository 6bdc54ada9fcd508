package dto

// ── 评估模块 DTO ──

// AssessRequest 负责人评估请求（评分与评语至少给出其一）
type AssessRequest struct {
	Score   *float64 `json:"score"   binding:"omitempty,min=0"`
	Comment *string  `json:"comment" binding:"omitempty,min=5,max=500"`
}

// CommentResponse 评语响应
type CommentResponse struct {
	ID        string `json:"id"`
	GraderID  string `json:"grader_id"`
	Grader    string `json:"grader,omitempty"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AssessResponse 评估结果响应
type AssessResponse struct {
	UserSubject *UserSubjectResponse `json:"user_subject"`
	Comments    []CommentResponse    `json:"comments,omitempty"`
}
