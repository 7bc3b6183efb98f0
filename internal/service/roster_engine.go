package service

import (
	"fmt"
	"sort"

	"github.com/KaanYilmazz/117RosterMaker/internal/model"
)

// ── 排班引擎 ────────────────────────────────────────────────
//
// 纯计算：输入员工/班次/空闲时间的内存快照，输出整套替换式排班记录。
// 不做任何 I/O，不触碰既有排班状态；持久化由 RosterService 负责。
// 单次确定性贪心，不回溯：前面的班次可能耗尽后面班次的候选人，
// 这是接受的行为（不追求全局最优）。
// ─────────────────────────────────────────────────────────────

// maxWorkingDaysDefault 每人每周最多工作天数（硬约束）
const maxWorkingDaysDefault = 5

// availabilityKey 空闲索引键："employeeID:day"
func availabilityKey(employeeID, day string) string {
	return fmt.Sprintf("%s:%s", employeeID, day)
}

// buildAvailabilityIndex 构建 (员工,星期) → 空闲记录 的查找索引
// 同键后写覆盖先写，与存储层的 upsert 语义保持一致
func buildAvailabilityIndex(availabilities []model.Availability) map[string]*model.Availability {
	index := make(map[string]*model.Availability, len(availabilities))
	for i := range availabilities {
		a := &availabilities[i]
		index[availabilityKey(a.EmployeeID, a.Day)] = a
	}
	return index
}

// rosterCounters 单次生成过程中的运行计数器，跨调用不共享
type rosterCounters struct {
	shiftCount    map[string]int             // 员工 → 本轮已排班次数
	daysWorked    map[string]map[string]bool // 员工 → 本轮已排的星期集合
	hoursAssigned map[string]float64         // 员工 → 本轮已排工时
}

func newRosterCounters() *rosterCounters {
	return &rosterCounters{
		shiftCount:    make(map[string]int),
		daysWorked:    make(map[string]map[string]bool),
		hoursAssigned: make(map[string]float64),
	}
}

func (c *rosterCounters) record(employeeID, day string, hours float64) {
	c.shiftCount[employeeID]++
	if c.daysWorked[employeeID] == nil {
		c.daysWorked[employeeID] = make(map[string]bool)
	}
	c.daysWorked[employeeID][day] = true
	c.hoursAssigned[employeeID] += hours
}

func (c *rosterCounters) workedDays(employeeID string) int {
	return len(c.daysWorked[employeeID])
}

func (c *rosterCounters) workedOn(employeeID, day string) bool {
	return c.daysWorked[employeeID][day]
}

// hasRosterConflict 冲突检测：候选时段与该员工同日既有记录是否重叠
// 生成过程对本轮已提交记录调用；手工加入对在库排班调用
func hasRosterConflict(committed []model.RosterEntry, employeeID, day string, candidate model.Interval) bool {
	for i := range committed {
		e := &committed[i]
		if e.EmployeeID != employeeID || e.Day != day {
			continue
		}
		iv, err := e.Interval()
		if err != nil {
			continue // 历史脏数据跳过，不阻塞排班
		}
		if iv.Overlaps(candidate) {
			return true
		}
	}
	return false
}

// expandEverydayShifts 将 "Everyday" 录入宏展开为 7 条具体班次
// 纯数据展开，发生在排班逻辑之前；展开结果不含 Everyday
func expandEverydayShifts(shifts []model.Shift) []model.Shift {
	expanded := make([]model.Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.Day != model.DayEveryday {
			expanded = append(expanded, s)
			continue
		}
		for _, day := range model.DaysOfWeek {
			clone := s
			clone.Day = day
			expanded = append(expanded, clone)
		}
	}
	return expanded
}

// sortShiftsByPriority 班次处理顺序：
// 指定岗位的班次优先（更难排的先挑人），同组内 min_staff_count 大者优先。
// 稳定排序保证同优先级班次维持输入顺序 → 输出确定
func sortShiftsByPriority(shifts []model.Shift) []model.Shift {
	sorted := make([]model.Shift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		iRequired := sorted[i].RequiredPosition != nil
		jRequired := sorted[j].RequiredPosition != nil
		if iRequired != jRequired {
			return iRequired
		}
		return sorted[i].MinStaffCount > sorted[j].MinStaffCount
	})
	return sorted
}

// eligibleEmployees 资格过滤：返回满足全部硬约束的员工（保持输入顺序）
//  1. 该 (员工, 星期) 有空闲记录、标记可用、且空闲窗口完整覆盖班次时段
//  2. 班次未指定岗位，或岗位完全一致
//  3. 本轮已排天数未达上限
//  4. 当天尚未排过任何班（同日单班规则，严于时段重叠）
//  5. 与本轮已提交记录无时段冲突
func eligibleEmployees(
	shift *model.Shift,
	shiftIv model.Interval,
	employees []model.Employee,
	availIndex map[string]*model.Availability,
	committed []model.RosterEntry,
	counters *rosterCounters,
	maxWorkingDays int,
) []model.Employee {
	var eligible []model.Employee
	for _, emp := range employees {
		avail, ok := availIndex[availabilityKey(emp.EmployeeID, shift.Day)]
		if !ok || !avail.IsAvailable {
			continue
		}
		availIv, err := avail.Interval()
		if err != nil || !availIv.Contains(shiftIv) {
			continue
		}
		if shift.RequiredPosition != nil && emp.Position != *shift.RequiredPosition {
			continue
		}
		if counters.workedDays(emp.EmployeeID) >= maxWorkingDays {
			continue
		}
		if counters.workedOn(emp.EmployeeID, shift.Day) {
			continue
		}
		if hasRosterConflict(committed, emp.EmployeeID, shift.Day, shiftIv) {
			continue
		}
		eligible = append(eligible, emp)
	}
	return eligible
}

// rankCandidates 公平排序：3 级比较键逐级定序
//  1. 工时缺口（目标周工时 − 本轮已排工时），缺口大者优先
//  2. 本轮已排班次数，少者优先
//  3. 岗位资历，高者优先
//
// 稳定排序 + 无随机数 → 相同输入必得相同输出
func rankCandidates(eligible []model.Employee, counters *rosterCounters) []model.Employee {
	ranked := make([]model.Employee, len(eligible))
	copy(ranked, eligible)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := &ranked[i], &ranked[j]

		deficitA := a.Position.TargetWeeklyHours() - counters.hoursAssigned[a.EmployeeID]
		deficitB := b.Position.TargetWeeklyHours() - counters.hoursAssigned[b.EmployeeID]
		if deficitA != deficitB {
			return deficitA > deficitB
		}

		countA := counters.shiftCount[a.EmployeeID]
		countB := counters.shiftCount[b.EmployeeID]
		if countA != countB {
			return countA < countB
		}

		return a.Position.Rank() < b.Position.Rank()
	})
	return ranked
}

// ════════════════════════════════════════════════════════════
// generateRosterEntries — 贪心生成整套排班
// ════════════════════════════════════════════════════════════
//
// 阶段1: Everyday 展开（数据准备）
// 阶段2: 班次优先级排序
// 阶段3: 逐班次过滤 → 排序 → 取前 min(minStaffCount, 候选数) 人并更新计数器
// 阶段4: 输出整套替换式记录；排不满的班次降级为 warning，不报错

func generateRosterEntries(
	employees []model.Employee,
	shifts []model.Shift,
	availabilities []model.Availability,
	maxWorkingDays int,
) ([]model.RosterEntry, []string) {
	if maxWorkingDays <= 0 {
		maxWorkingDays = maxWorkingDaysDefault
	}

	availIndex := buildAvailabilityIndex(availabilities)
	sortedShifts := sortShiftsByPriority(expandEverydayShifts(shifts))

	counters := newRosterCounters()
	var entries []model.RosterEntry
	var warnings []string

	for i := range sortedShifts {
		shift := &sortedShifts[i]

		shiftIv, err := shift.Interval()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("班次 %s (%s) 时间段非法，已跳过: %v", shift.Name, shift.Day, err))
			continue
		}

		eligible := eligibleEmployees(shift, shiftIv, employees, availIndex, entries, counters, maxWorkingDays)
		ranked := rankCandidates(eligible, counters)

		need := shift.MinStaffCount
		if len(ranked) < need {
			warnings = append(warnings, fmt.Sprintf(
				"班次 %s (%s %s-%s) 人手不足: 需 %d 人，仅排到 %d 人",
				shift.Name, shift.Day, shift.StartTime, shift.EndTime, need, len(ranked)))
			need = len(ranked)
		}

		for _, emp := range ranked[:need] {
			entries = append(entries, model.RosterEntry{
				ShiftID:    shift.ShiftID,
				EmployeeID: emp.EmployeeID,
				Day:        shift.Day,
				StartTime:  shift.StartTime,
				EndTime:    shift.EndTime,
			})
			counters.record(emp.EmployeeID, shift.Day, shiftIv.Hours())
		}
	}

	return entries, warnings
}

