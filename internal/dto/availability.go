package dto

// ── 空闲时间模块 DTO ──

// UpsertAvailabilityRequest 写入空闲时间请求
// 同一 (employee_id, day) 重复提交即整体覆盖
type UpsertAvailabilityRequest struct {
	EmployeeID  string `json:"employee_id"  binding:"required,uuid"`
	Day         string `json:"day"          binding:"required"`
	StartTime   string `json:"start_time"   binding:"required"`
	EndTime     string `json:"end_time"     binding:"required"`
	IsAvailable bool   `json:"is_available"`
}

// AvailabilityResponse 空闲时间响应
type AvailabilityResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}
