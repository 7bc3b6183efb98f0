package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/model"
	"github.com/KaanYilmazz/117RosterMaker/internal/repository"
)

// ── 测试辅助 ──

type testRepos struct {
	employee     *mockEmployeeRepo
	shift        *mockShiftRepo
	availability *mockAvailabilityRepo
	roster       *mockRosterRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		employee:     newMockEmployeeRepo(),
		shift:        newMockShiftRepo(),
		availability: newMockAvailabilityRepo(),
		roster:       newMockRosterRepo(),
	}
}

func (r *testRepos) toRepository() *repository.Repository {
	return &repository.Repository{
		Employee:     r.employee,
		Shift:        r.shift,
		Availability: r.availability,
		Roster:       r.roster,
	}
}

func setupTestRosterService() (RosterService, *testRepos) {
	repos := newTestRepos()
	svc := NewRosterService(repos.toRepository(), 5, zap.NewNop())
	return svc, repos
}

// seedCafe 种子数据：3 名员工全周可用 + 周一 2 个班次
func seedCafe(t *testing.T, repos *testRepos) {
	t.Helper()
	ctx := context.Background()

	employees := []model.Employee{
		testEmployee("e-manager", model.PositionManager),
		testEmployee("e-barista", model.PositionHeadBarista),
		testEmployee("e-staff", model.PositionRegularStaff),
	}
	for i := range employees {
		emp := employees[i]
		if err := repos.employee.Create(ctx, &emp); err != nil {
			t.Fatalf("种子员工失败: %v", err)
		}
		for _, a := range allDayAvail(emp.EmployeeID) {
			avail := a
			if err := repos.availability.Upsert(ctx, &avail); err != nil {
				t.Fatalf("种子空闲时间失败: %v", err)
			}
		}
	}

	shifts := []model.Shift{
		testShift("", model.DayMonday, "07:00", "15:00", 1, positionPtr(model.PositionHeadBarista)),
		testShift("", model.DayMonday, "09:00", "17:00", 2, nil),
	}
	shifts[0].Name = "早班吧台"
	shifts[1].Name = "日班"
	if err := repos.shift.BatchCreate(ctx, shifts); err != nil {
		t.Fatalf("种子班次失败: %v", err)
	}
}

// ── Generate ──

func TestRosterGenerate_PersistsFullReplacement(t *testing.T) {
	svc, repos := setupTestRosterService()
	seedCafe(t, repos)
	ctx := context.Background()

	// 预置一条旧记录，生成后应被整套替换
	stale := &model.RosterEntry{
		ShiftID: "shift-1", EmployeeID: "e-staff",
		Day: model.DaySunday, StartTime: "09:00", EndTime: "17:00",
	}
	if err := repos.roster.Create(ctx, stale); err != nil {
		t.Fatalf("种子旧记录失败: %v", err)
	}

	resp, err := svc.Generate(ctx, "e-manager")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	stored, _ := repos.roster.List(ctx)
	if len(stored) != len(resp.Entries) {
		t.Fatalf("持久化记录数 %d 与响应 %d 不一致", len(stored), len(resp.Entries))
	}
	for i := range stored {
		if stored[i].Day == model.DaySunday {
			t.Fatalf("旧记录未被替换: %+v", stored[i])
		}
	}

	// 吧台班 1 人 + 日班 2 人（同日单班规则下恰好 3 人可用）
	if len(resp.Entries) != 3 {
		t.Fatalf("期望 3 条排班记录，实际 %d", len(resp.Entries))
	}
	if resp.TotalShifts != 2 || resp.FullyStaffed != 2 {
		t.Errorf("覆盖统计不正确: %+v", resp)
	}
}

func TestRosterGenerate_CoverageCountsPartialAndUnstaffed(t *testing.T) {
	svc, repos := setupTestRosterService()
	ctx := context.Background()

	emp := testEmployee("e1", model.PositionRegularStaff)
	if err := repos.employee.Create(ctx, &emp); err != nil {
		t.Fatal(err)
	}
	for _, a := range allDayAvail("e1") {
		avail := a
		repos.availability.Upsert(ctx, &avail)
	}
	shifts := []model.Shift{
		testShift("", model.DayMonday, "09:00", "17:00", 2, nil),
		testShift("", model.DayTuesday, "09:00", "17:00", 1, positionPtr(model.PositionManager)),
	}
	if err := repos.shift.BatchCreate(ctx, shifts); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.Generate(ctx, "caller")
	if err != nil {
		t.Fatalf("Generate 失败: %v", err)
	}

	if resp.PartiallyStaffed != 1 || resp.Unstaffed != 1 || resp.FullyStaffed != 0 {
		t.Fatalf("覆盖统计不正确: full=%d partial=%d unstaffed=%d",
			resp.FullyStaffed, resp.PartiallyStaffed, resp.Unstaffed)
	}
	if len(resp.Warnings) != 2 {
		t.Errorf("期望 2 条 warning，实际 %v", resp.Warnings)
	}
}

// ── Swap ──

func TestRosterSwap_ExchangesOnlyEmployees(t *testing.T) {
	svc, repos := setupTestRosterService()
	ctx := context.Background()

	a := &model.RosterEntry{ShiftID: "s1", EmployeeID: "e1", Day: model.DayMonday, StartTime: "09:00", EndTime: "17:00"}
	b := &model.RosterEntry{ShiftID: "s2", EmployeeID: "e2", Day: model.DayFriday, StartTime: "12:00", EndTime: "20:00"}
	repos.roster.Create(ctx, a)
	repos.roster.Create(ctx, b)

	if _, err := svc.Swap(ctx, &dto.SwapEntriesRequest{EntryAID: a.RosterEntryID, EntryBID: b.RosterEntryID}, "caller"); err != nil {
		t.Fatalf("Swap 失败: %v", err)
	}

	gotA, _ := repos.roster.GetByID(ctx, a.RosterEntryID)
	gotB, _ := repos.roster.GetByID(ctx, b.RosterEntryID)

	if gotA.EmployeeID != "e2" || gotB.EmployeeID != "e1" {
		t.Fatalf("员工未互换: a=%s b=%s", gotA.EmployeeID, gotB.EmployeeID)
	}
	// 班次、日期、时间保持原样
	if gotA.ShiftID != "s1" || gotA.Day != model.DayMonday || gotA.StartTime != "09:00" || gotA.EndTime != "17:00" {
		t.Errorf("记录 A 的班次/时间不应改变: %+v", gotA)
	}
	if gotB.ShiftID != "s2" || gotB.Day != model.DayFriday || gotB.StartTime != "12:00" || gotB.EndTime != "20:00" {
		t.Errorf("记录 B 的班次/时间不应改变: %+v", gotB)
	}
}

func TestRosterSwap_RejectsSelfAndMissing(t *testing.T) {
	svc, repos := setupTestRosterService()
	ctx := context.Background()

	a := &model.RosterEntry{ShiftID: "s1", EmployeeID: "e1", Day: model.DayMonday, StartTime: "09:00", EndTime: "17:00"}
	repos.roster.Create(ctx, a)

	if _, err := svc.Swap(ctx, &dto.SwapEntriesRequest{EntryAID: a.RosterEntryID, EntryBID: a.RosterEntryID}, "caller"); !errors.Is(err, ErrSwapSameEntry) {
		t.Errorf("期望 ErrSwapSameEntry，实际 %v", err)
	}
	if _, err := svc.Swap(ctx, &dto.SwapEntriesRequest{EntryAID: a.RosterEntryID, EntryBID: "missing"}, "caller"); !errors.Is(err, ErrRosterEntryNotFound) {
		t.Errorf("期望 ErrRosterEntryNotFound，实际 %v", err)
	}
}

// ── Remove ──

func TestRosterRemove(t *testing.T) {
	svc, repos := setupTestRosterService()
	ctx := context.Background()

	a := &model.RosterEntry{ShiftID: "s1", EmployeeID: "e1", Day: model.DayMonday, StartTime: "09:00", EndTime: "17:00"}
	repos.roster.Create(ctx, a)

	remaining, err := svc.Remove(ctx, a.RosterEntryID)
	if err != nil {
		t.Fatalf("Remove 失败: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("删除后应无记录，实际 %d", len(remaining))
	}

	if _, err := svc.Remove(ctx, "missing"); !errors.Is(err, ErrRosterEntryNotFound) {
		t.Errorf("期望 ErrRosterEntryNotFound，实际 %v", err)
	}
}

// ── Add 与 Candidates ──

func TestRosterAdd_ValidatesCandidateRules(t *testing.T) {
	svc, repos := setupTestRosterService()
	seedCafe(t, repos)
	ctx := context.Background()

	shifts, _ := repos.shift.List(ctx)
	barShift := shifts[0] // 指定 head-barista
	dayShift := shifts[1] // 开放班次

	// 岗位不符
	if _, err := svc.Add(ctx, &dto.AddEntryRequest{ShiftID: barShift.ShiftID, EmployeeID: "e-staff"}, "caller"); !errors.Is(err, ErrPositionMismatch) {
		t.Errorf("期望 ErrPositionMismatch，实际 %v", err)
	}

	// 正常加入
	roster, err := svc.Add(ctx, &dto.AddEntryRequest{ShiftID: dayShift.ShiftID, EmployeeID: "e-staff"}, "caller")
	if err != nil {
		t.Fatalf("Add 失败: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("期望返回完整排班 1 条，实际 %d", len(roster))
	}

	// 重复加入同一班次
	if _, err := svc.Add(ctx, &dto.AddEntryRequest{ShiftID: dayShift.ShiftID, EmployeeID: "e-staff"}, "caller"); !errors.Is(err, ErrAlreadyOnShift) {
		t.Errorf("期望 ErrAlreadyOnShift，实际 %v", err)
	}

	// 同日时段重叠（07:00-15:00 与 09:00-17:00 重叠）
	if _, err := svc.Add(ctx, &dto.AddEntryRequest{ShiftID: barShift.ShiftID, EmployeeID: "e-barista"}, "caller"); err != nil {
		t.Fatalf("吧台班加入失败: %v", err)
	}
	if _, err := svc.Add(ctx, &dto.AddEntryRequest{ShiftID: dayShift.ShiftID, EmployeeID: "e-barista"}, "caller"); !errors.Is(err, ErrEntryConflict) {
		t.Errorf("期望 ErrEntryConflict，实际 %v", err)
	}
}

func TestRosterCandidates(t *testing.T) {
	svc, repos := setupTestRosterService()
	seedCafe(t, repos)
	ctx := context.Background()

	shifts, _ := repos.shift.List(ctx)
	barShift := shifts[0]
	dayShift := shifts[1]

	// 吧台班只有 head-barista 一名候选（岗位精确匹配）
	candidates, err := svc.Candidates(ctx, barShift.ShiftID)
	if err != nil {
		t.Fatalf("Candidates 失败: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != "e-barista" {
		t.Fatalf("期望候选 [e-barista]，实际 %+v", candidates)
	}

	// 开放班次三人均为候选；把 barista 排进吧台班后因时段冲突只剩两人
	candidates, _ = svc.Candidates(ctx, dayShift.ShiftID)
	if len(candidates) != 3 {
		t.Fatalf("期望 3 名候选，实际 %d", len(candidates))
	}
	if _, err := svc.Add(ctx, &dto.AddEntryRequest{ShiftID: barShift.ShiftID, EmployeeID: "e-barista"}, "caller"); err != nil {
		t.Fatal(err)
	}
	candidates, _ = svc.Candidates(ctx, dayShift.ShiftID)
	if len(candidates) != 2 {
		t.Fatalf("冲突后期望 2 名候选，实际 %d", len(candidates))
	}

	if _, err := svc.Candidates(ctx, "missing"); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("期望 ErrShiftNotFound，实际 %v", err)
	}
}

