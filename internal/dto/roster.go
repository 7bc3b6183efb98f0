package dto

// ── 排班模块 DTO ──

// SwapEntriesRequest 互换请求：交换两条排班记录的员工
type SwapEntriesRequest struct {
	EntryAID string `json:"entry_a_id" binding:"required,uuid"`
	EntryBID string `json:"entry_b_id" binding:"required,uuid"`
}

// AddEntryRequest 手工加入班次请求
type AddEntryRequest struct {
	ShiftID    string `json:"shift_id"    binding:"required,uuid"`
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

// RosterEntryResponse 排班记录响应
type RosterEntryResponse struct {
	ID         string         `json:"id"`
	ShiftID    string         `json:"shift_id"`
	EmployeeID string         `json:"employee_id"`
	Day        string         `json:"day"`
	StartTime  string         `json:"start_time"`
	EndTime    string         `json:"end_time"`
	Shift      *ShiftBrief    `json:"shift,omitempty"`
	Employee   *EmployeeBrief `json:"employee,omitempty"`
}

// ShiftBrief 班次简要信息
type ShiftBrief struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MinStaffCount int    `json:"min_staff_count"`
}

// EmployeeBrief 员工简要信息
type EmployeeBrief struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	PositionLabel string `json:"position_label"`
}

// ShiftCoverage 单个班次的人员覆盖状态
type ShiftCoverage struct {
	ShiftID       string `json:"shift_id"`
	Name          string `json:"name"`
	Day           string `json:"day"`
	Assigned      int    `json:"assigned"`
	MinStaffCount int    `json:"min_staff_count"`
	Status        string `json:"status"` // full | partial | unstaffed
}

// GenerateRosterResponse 自动排班响应
type GenerateRosterResponse struct {
	Entries  []RosterEntryResponse `json:"entries"`
	Coverage []ShiftCoverage       `json:"coverage"`
	// 覆盖统计
	TotalShifts      int      `json:"total_shifts"`
	FullyStaffed     int      `json:"fully_staffed"`
	PartiallyStaffed int      `json:"partially_staffed"`
	Unstaffed        int      `json:"unstaffed"`
	Warnings         []string `json:"warnings,omitempty"`
}

// CandidateResponse 可加入班次的候选员工
type CandidateResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	PositionLabel string `json:"position_label"`
}

// ── 工时报表 ──

// HoursTotals 单个员工的分桶工时（已扣休息时间）
type HoursTotals struct {
	WeekdayHours float64 `json:"weekday_hours"` // 周一至周六
	SundayHours  float64 `json:"sunday_hours"`
}

// HoursReportRow 工时报表行
type HoursReportRow struct {
	EmployeeID   string            `json:"employee_id"`
	Name         string            `json:"name"`
	Position     string            `json:"position"`
	DayShifts    map[string]string `json:"day_shifts"` // 星期 → "09:00-17:00, ..."，无班为空
	WeekdayHours float64           `json:"weekday_hours"`
	SundayHours  float64           `json:"sunday_hours"`
}

// HoursReportResponse 工时报表响应
type HoursReportResponse struct {
	Rows []HoursReportRow `json:"rows"`
	// 合计行：原始工时（不扣休息），与旧版报表口径一致
	GrandTotalByDay    map[string]float64 `json:"grand_total_by_day"`
	GrandTotalWeekdays float64            `json:"grand_total_weekdays"`
	GrandTotalSunday   float64            `json:"grand_total_sunday"`
}
