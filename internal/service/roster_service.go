package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/model"
	"github.com/KaanYilmazz/117RosterMaker/internal/repository"
)

// ── 排班模块业务错误 ──

var (
	ErrRosterEntryNotFound = errors.New("排班记录不存在")
	ErrShiftNotFound       = errors.New("班次不存在")
	ErrEmployeeNotFound    = errors.New("员工不存在")
	ErrSwapSameEntry       = errors.New("不能与自身互换")
	ErrAlreadyOnShift      = errors.New("该员工已在此班次中")
	ErrPositionMismatch    = errors.New("员工岗位与班次要求不符")
	ErrEntryConflict       = errors.New("该员工当天已有时段冲突的排班")
)

// RosterService 排班业务接口
type RosterService interface {
	// Generate 自动排班：整套替换既有排班（手工修改会被覆盖，属预期行为）
	Generate(ctx context.Context, callerID string) (*dto.GenerateRosterResponse, error)
	// GetRoster 获取当前排班
	GetRoster(ctx context.Context) ([]dto.RosterEntryResponse, error)
	// Swap 互换两条排班记录的员工（仅交换 employee_id，不做资格复核）
	Swap(ctx context.Context, req *dto.SwapEntriesRequest, callerID string) ([]dto.RosterEntryResponse, error)
	// Remove 删除一条排班记录
	Remove(ctx context.Context, entryID string) ([]dto.RosterEntryResponse, error)
	// Add 手工把员工加入班次（复核岗位与时段冲突；不复核空闲窗口与天数上限）
	Add(ctx context.Context, req *dto.AddEntryRequest, callerID string) ([]dto.RosterEntryResponse, error)
	// Candidates 获取可手工加入某班次的候选员工
	Candidates(ctx context.Context, shiftID string) ([]dto.CandidateResponse, error)
}

type rosterService struct {
	repo           *repository.Repository
	maxWorkingDays int
	logger         *zap.Logger
}

// NewRosterService 创建 RosterService 实例
func NewRosterService(repo *repository.Repository, maxWorkingDays int, logger *zap.Logger) RosterService {
	if maxWorkingDays <= 0 {
		maxWorkingDays = maxWorkingDaysDefault
	}
	return &rosterService{repo: repo, maxWorkingDays: maxWorkingDays, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Generate — 自动排班
// ════════════════════════════════════════════════════════════

func (s *rosterService) Generate(ctx context.Context, callerID string) (*dto.GenerateRosterResponse, error) {
	// ── 阶段1: 数据准备 ──
	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	shifts, err := s.repo.Shift.List(ctx)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	availabilities, err := s.repo.Availability.List(ctx)
	if err != nil {
		s.logger.Error("查询空闲时间失败", zap.Error(err))
		return nil, err
	}

	// ── 阶段2: 引擎计算（纯内存，无副作用） ──
	entries, warnings := generateRosterEntries(employees, shifts, availabilities, s.maxWorkingDays)

	// ── 阶段3: 整套替换持久化 ──
	if err := s.repo.Roster.ReplaceAll(ctx, entries); err != nil {
		s.logger.Error("替换排班记录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("自动排班完成",
		zap.Int("employees", len(employees)),
		zap.Int("shifts", len(shifts)),
		zap.Int("entries", len(entries)),
		zap.Int("warnings", len(warnings)),
		zap.String("caller", callerID),
	)

	// ── 阶段4: 构建响应（含覆盖统计） ──
	stored, err := s.repo.Roster.List(ctx)
	if err != nil {
		s.logger.Error("查询排班记录失败", zap.Error(err))
		return nil, err
	}

	resp := &dto.GenerateRosterResponse{
		Entries:  toRosterEntryResponses(stored),
		Warnings: warnings,
	}
	resp.Coverage, resp.TotalShifts, resp.FullyStaffed, resp.PartiallyStaffed, resp.Unstaffed =
		buildCoverage(shifts, stored)

	return resp, nil
}

// ════════════════════════════════════════════════════════════
// GetRoster — 获取当前排班
// ════════════════════════════════════════════════════════════

func (s *rosterService) GetRoster(ctx context.Context) ([]dto.RosterEntryResponse, error) {
	entries, err := s.repo.Roster.List(ctx)
	if err != nil {
		s.logger.Error("查询排班记录失败", zap.Error(err))
		return nil, err
	}
	return toRosterEntryResponses(entries), nil
}

// ════════════════════════════════════════════════════════════
// Swap — 互换两条排班记录的员工
// ════════════════════════════════════════════════════════════
//
// 只交换 employee_id，日期与起止时刻保持不变。
// 不做岗位/空闲复核：换班默认由值班经理人工把关（沿用旧版行为）。

func (s *rosterService) Swap(ctx context.Context, req *dto.SwapEntriesRequest, callerID string) ([]dto.RosterEntryResponse, error) {
	if req.EntryAID == req.EntryBID {
		return nil, ErrSwapSameEntry
	}

	entryA, err := s.getEntry(ctx, req.EntryAID)
	if err != nil {
		return nil, err
	}
	entryB, err := s.getEntry(ctx, req.EntryBID)
	if err != nil {
		return nil, err
	}

	entryA.EmployeeID, entryB.EmployeeID = entryB.EmployeeID, entryA.EmployeeID
	entryA.UpdatedBy = &callerID
	entryB.UpdatedBy = &callerID

	if err := s.repo.Roster.Update(ctx, entryA); err != nil {
		s.logger.Error("更新排班记录失败", zap.Error(err), zap.String("entry_id", entryA.RosterEntryID))
		return nil, err
	}
	if err := s.repo.Roster.Update(ctx, entryB); err != nil {
		s.logger.Error("更新排班记录失败", zap.Error(err), zap.String("entry_id", entryB.RosterEntryID))
		return nil, err
	}

	return s.GetRoster(ctx)
}

// ════════════════════════════════════════════════════════════
// Remove — 删除一条排班记录
// ════════════════════════════════════════════════════════════

func (s *rosterService) Remove(ctx context.Context, entryID string) ([]dto.RosterEntryResponse, error) {
	if _, err := s.getEntry(ctx, entryID); err != nil {
		return nil, err
	}
	if err := s.repo.Roster.Delete(ctx, entryID); err != nil {
		s.logger.Error("删除排班记录失败", zap.Error(err), zap.String("entry_id", entryID))
		return nil, err
	}
	return s.GetRoster(ctx)
}

// ════════════════════════════════════════════════════════════
// Add — 手工把员工加入班次
// ════════════════════════════════════════════════════════════
//
// 复核 Candidates 的同一套规则（岗位匹配 + 同日时段冲突 + 未在该班次）。
// 有意不复核空闲窗口与每周天数上限：手工加班属于经理决策。

func (s *rosterService) Add(ctx context.Context, req *dto.AddEntryRequest, callerID string) ([]dto.RosterEntryResponse, error) {
	shift, err := s.getShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}
	employee, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	roster, err := s.repo.Roster.List(ctx)
	if err != nil {
		s.logger.Error("查询排班记录失败", zap.Error(err))
		return nil, err
	}

	if err := s.checkCandidate(shift, employee, roster); err != nil {
		return nil, err
	}

	entry := &model.RosterEntry{
		ShiftID:    shift.ShiftID,
		EmployeeID: employee.EmployeeID,
		Day:        shift.Day,
		StartTime:  shift.StartTime,
		EndTime:    shift.EndTime,
	}
	entry.CreatedBy = &callerID
	entry.UpdatedBy = &callerID

	if err := s.repo.Roster.Create(ctx, entry); err != nil {
		s.logger.Error("创建排班记录失败", zap.Error(err))
		return nil, err
	}

	return s.GetRoster(ctx)
}

// ════════════════════════════════════════════════════════════
// Candidates — 可手工加入某班次的候选员工
// ════════════════════════════════════════════════════════════

func (s *rosterService) Candidates(ctx context.Context, shiftID string) ([]dto.CandidateResponse, error) {
	shift, err := s.getShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	roster, err := s.repo.Roster.List(ctx)
	if err != nil {
		s.logger.Error("查询排班记录失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CandidateResponse, 0, len(employees))
	for i := range employees {
		emp := &employees[i]
		if s.checkCandidate(shift, emp, roster) != nil {
			continue
		}
		result = append(result, dto.CandidateResponse{
			ID:            emp.EmployeeID,
			Name:          emp.Name,
			Position:      string(emp.Position),
			PositionLabel: emp.Position.Label(),
		})
	}
	return result, nil
}

// ── 内部辅助方法 ──

// checkCandidate 手工加入的候选规则（§Candidates 与 §Add 共用）：
//   - 未在该班次中
//   - 班次指定岗位时必须一致
//   - 与该员工当天其他排班无时段重叠
func (s *rosterService) checkCandidate(shift *model.Shift, employee *model.Employee, roster []model.RosterEntry) error {
	for i := range roster {
		if roster[i].ShiftID == shift.ShiftID && roster[i].EmployeeID == employee.EmployeeID {
			return ErrAlreadyOnShift
		}
	}

	if shift.RequiredPosition != nil && employee.Position != *shift.RequiredPosition {
		return ErrPositionMismatch
	}

	shiftIv, err := shift.Interval()
	if err != nil {
		return err
	}
	// 其他班次的同日记录参与冲突判定；本班次的记录已在上面拦截
	others := make([]model.RosterEntry, 0, len(roster))
	for i := range roster {
		if roster[i].ShiftID != shift.ShiftID {
			others = append(others, roster[i])
		}
	}
	if hasRosterConflict(others, employee.EmployeeID, shift.Day, shiftIv) {
		return ErrEntryConflict
	}
	return nil
}

func (s *rosterService) getEntry(ctx context.Context, id string) (*model.RosterEntry, error) {
	entry, err := s.repo.Roster.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRosterEntryNotFound
		}
		s.logger.Error("查询排班记录失败", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (s *rosterService) getShift(ctx context.Context, id string) (*model.Shift, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	return shift, nil
}

func (s *rosterService) getEmployee(ctx context.Context, id string) (*model.Employee, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	return employee, nil
}

// buildCoverage 按班次统计覆盖状态：full / partial / unstaffed
func buildCoverage(shifts []model.Shift, roster []model.RosterEntry) (coverage []dto.ShiftCoverage, total, full, partial, unstaffed int) {
	countByShift := make(map[string]int)
	for i := range roster {
		countByShift[roster[i].ShiftID]++
	}

	coverage = make([]dto.ShiftCoverage, 0, len(shifts))
	for i := range shifts {
		sh := &shifts[i]
		assigned := countByShift[sh.ShiftID]
		status := "unstaffed"
		switch {
		case assigned >= sh.MinStaffCount:
			status = "full"
			full++
		case assigned > 0:
			status = "partial"
			partial++
		default:
			unstaffed++
		}
		coverage = append(coverage, dto.ShiftCoverage{
			ShiftID:       sh.ShiftID,
			Name:          sh.Name,
			Day:           sh.Day,
			Assigned:      assigned,
			MinStaffCount: sh.MinStaffCount,
			Status:        status,
		})
	}
	return coverage, len(shifts), full, partial, unstaffed
}

// toRosterEntryResponse 转换排班记录为响应
func toRosterEntryResponse(entry *model.RosterEntry) dto.RosterEntryResponse {
	resp := dto.RosterEntryResponse{
		ID:         entry.RosterEntryID,
		ShiftID:    entry.ShiftID,
		EmployeeID: entry.EmployeeID,
		Day:        entry.Day,
		StartTime:  entry.StartTime,
		EndTime:    entry.EndTime,
	}
	if entry.Shift != nil {
		resp.Shift = &dto.ShiftBrief{
			ID:            entry.Shift.ShiftID,
			Name:          entry.Shift.Name,
			MinStaffCount: entry.Shift.MinStaffCount,
		}
	}
	if entry.Employee != nil {
		resp.Employee = &dto.EmployeeBrief{
			ID:            entry.Employee.EmployeeID,
			Name:          entry.Employee.Name,
			Position:      string(entry.Employee.Position),
			PositionLabel: entry.Employee.Position.Label(),
		}
	}
	return resp
}

func toRosterEntryResponses(entries []model.RosterEntry) []dto.RosterEntryResponse {
	result := make([]dto.RosterEntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, toRosterEntryResponse(&entries[i]))
	}
	return result
}

