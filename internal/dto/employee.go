package dto

// ── 员工模块 DTO ──

// CreateEmployeeRequest 创建员工请求
type CreateEmployeeRequest struct {
	Name     string `json:"name"     binding:"required,min=1,max=100"`
	Position string `json:"position" binding:"required"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Phone    string `json:"phone"    binding:"omitempty,max=30"`
	// Password 可选：录入后该员工可登录系统查看自己的排班
	Password string `json:"password" binding:"omitempty,min=6,max=72"`
}

// UpdateEmployeeRequest 更新员工请求
type UpdateEmployeeRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Position *string `json:"position"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Phone    *string `json:"phone"    binding:"omitempty,max=30"`
}

// EmployeeResponse 员工响应
type EmployeeResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	PositionLabel string `json:"position_label"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}
