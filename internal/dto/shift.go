package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求
// Day 允许传 "Everyday"：Service 层会展开为周一至周日 7 条班次
type CreateShiftRequest struct {
	Name             string `json:"name"              binding:"required,min=1,max=100"`
	Day              string `json:"day"               binding:"required"`
	StartTime        string `json:"start_time"        binding:"required"`
	EndTime          string `json:"end_time"          binding:"required"`
	RequiredPosition string `json:"required_position" binding:"omitempty"` // 空字符串表示任意岗位
	MinStaffCount    int    `json:"min_staff_count"   binding:"required,min=1"`
}

// UpdateShiftRequest 更新班次请求（不接受 "Everyday"）
type UpdateShiftRequest struct {
	Name             *string `json:"name"              binding:"omitempty,min=1,max=100"`
	Day              *string `json:"day"`
	StartTime        *string `json:"start_time"`
	EndTime          *string `json:"end_time"`
	RequiredPosition *string `json:"required_position"`
	MinStaffCount    *int    `json:"min_staff_count"   binding:"omitempty,min=1"`
}

// ShiftResponse 班次响应
type ShiftResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Day              string `json:"day"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	RequiredPosition string `json:"required_position,omitempty"`
	MinStaffCount    int    `json:"min_staff_count"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}
