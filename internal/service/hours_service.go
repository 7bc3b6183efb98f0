package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/model"
	"github.com/KaanYilmazz/117RosterMaker/internal/repository"
)

// HoursService 工时报表业务接口
type HoursService interface {
	// Report 生成周工时报表：每名员工逐日班次明细 + 扣休后的分桶工时，
	// 外加按原始工时口径的合计行
	Report(ctx context.Context) (*dto.HoursReportResponse, error)
}

type hoursService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewHoursService 创建 HoursService 实例
func NewHoursService(repo *repository.Repository, logger *zap.Logger) HoursService {
	return &hoursService{repo: repo, logger: logger}
}

// deductedHours 单条排班的实得工时：
// 原始时长超过 8 小时扣 0.5 小时休息，否则扣 0.25 小时。
// 扣休后可能为负（极短班次），按负值保留，由报表阅读者自行处理。
func deductedHours(iv model.Interval) float64 {
	raw := iv.Hours()
	if raw > 8 {
		return raw - 0.5
	}
	return raw - 0.25
}

// computeHoursTotals 汇总一名员工的分桶工时（周日单列，周一至周六合并）。
// 无法解析的记录跳过，不影响其余汇总。
func computeHoursTotals(entries []model.RosterEntry) dto.HoursTotals {
	var totals dto.HoursTotals
	for i := range entries {
		iv, err := entries[i].Interval()
		if err != nil {
			continue
		}
		if entries[i].Day == model.DaySunday {
			totals.SundayHours += deductedHours(iv)
		} else {
			totals.WeekdayHours += deductedHours(iv)
		}
	}
	return totals
}

func (s *hoursService) Report(ctx context.Context) (*dto.HoursReportResponse, error) {
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

	byEmployee := make(map[string][]model.RosterEntry)
	for i := range roster {
		byEmployee[roster[i].EmployeeID] = append(byEmployee[roster[i].EmployeeID], roster[i])
	}

	resp := &dto.HoursReportResponse{
		Rows:            make([]dto.HoursReportRow, 0, len(employees)),
		GrandTotalByDay: make(map[string]float64, len(model.DaysOfWeek)),
	}
	for _, day := range model.DaysOfWeek {
		resp.GrandTotalByDay[day] = 0
	}

	for i := range employees {
		emp := &employees[i]
		entries := byEmployee[emp.EmployeeID]
		totals := computeHoursTotals(entries)

		row := dto.HoursReportRow{
			EmployeeID:   emp.EmployeeID,
			Name:         emp.Name,
			Position:     string(emp.Position),
			DayShifts:    make(map[string]string, len(model.DaysOfWeek)),
			WeekdayHours: totals.WeekdayHours,
			SundayHours:  totals.SundayHours,
		}
		for _, day := range model.DaysOfWeek {
			row.DayShifts[day] = formatDayShifts(entries, day)
		}
		resp.Rows = append(resp.Rows, row)

		// 合计行按原始工时累加（不扣休息），与逐人列的口径有意不同
		for j := range entries {
			iv, err := entries[j].Interval()
			if err != nil {
				continue
			}
			resp.GrandTotalByDay[entries[j].Day] += iv.Hours()
			if entries[j].Day == model.DaySunday {
				resp.GrandTotalSunday += iv.Hours()
			} else {
				resp.GrandTotalWeekdays += iv.Hours()
			}
		}
	}

	return resp, nil
}

// formatDayShifts 拼接某天的班次时段列表，如 "09:00-17:00, 18:00-22:00"
func formatDayShifts(entries []model.RosterEntry, day string) string {
	var parts []string
	for i := range entries {
		if entries[i].Day != day {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s-%s", entries[i].StartTime, entries[i].EndTime))
	}
	return strings.Join(parts, ", ")
}

