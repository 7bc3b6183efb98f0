package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaanYilmazz/117RosterMaker/internal/model"
	"github.com/KaanYilmazz/117RosterMaker/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoRoster     = errors.New("暂无排班记录可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 排班表与工时汇总导出为单个 Excel (.xlsx)，合计行按原始工时口径
//   - 员工个人排班导出为 iCalendar (.ics)，事件落在各星期下一次出现的日期
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRoster 导出整周排班与工时汇总为 Excel
	ExportRoster(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportEmployeeICS 导出单个员工的排班为 ICS 日历
	ExportEmployeeICS(ctx context.Context, employeeID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo  *repository.Repository
	hours HoursService
	// now 可注入，测试时固定时间
	now    func() time.Time
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, hours HoursService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, hours: hours, now: time.Now, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportRoster — 导出排班表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式（单 Sheet）：
//   - 表头: | 员工 | 岗位 | Monday … Sunday | 周一至周六工时 | 周日工时 |
//   - 单元格: 该员工当天的班次时段列表，如 "09:00-17:00, 18:00-22:00"
//   - 末行: 合计（按原始工时，不扣休息）

func (s *exportService) ExportRoster(ctx context.Context) (*bytes.Buffer, string, error) {
	report, err := s.hours.Report(ctx)
	if err != nil {
		return nil, "", err
	}
	if len(report.Rows) == 0 {
		return nil, "", ErrExportNoRoster
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "排班表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽：员工/岗位窄列，七天宽列，两个工时列中等
	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 14)
	dayStartCol := 3
	for i := range model.DaysOfWeek {
		col := colName(dayStartCol + i - 1)
		f.SetColWidth(sheetName, col, col, 20)
	}
	hoursCol1 := colName(dayStartCol + len(model.DaysOfWeek) - 1)
	hoursCol2 := colName(dayStartCol + len(model.DaysOfWeek))
	f.SetColWidth(sheetName, hoursCol1, hoursCol2, 16)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	row := 1
	f.SetCellValue(sheetName, cell("A", row), "员工")
	f.SetCellValue(sheetName, cell("B", row), "岗位")
	for i, day := range model.DaysOfWeek {
		f.SetCellValue(sheetName, cell(colName(dayStartCol+i-1), row), day)
	}
	f.SetCellValue(sheetName, cell(hoursCol1, row), "周一至周六工时")
	f.SetCellValue(sheetName, cell(hoursCol2, row), "周日工时")
	f.SetCellStyle(sheetName, cell("A", row), cell(hoursCol2, row), headerStyle)

	// 数据行
	row = 2
	for _, r := range report.Rows {
		f.SetCellValue(sheetName, cell("A", row), r.Name)
		f.SetCellValue(sheetName, cell("B", row), r.Position)
		for i, day := range model.DaysOfWeek {
			text := r.DayShifts[day]
			if text == "" {
				text = "-"
			}
			f.SetCellValue(sheetName, cell(colName(dayStartCol+i-1), row), text)
		}
		f.SetCellValue(sheetName, cell(hoursCol1, row), r.WeekdayHours)
		f.SetCellValue(sheetName, cell(hoursCol2, row), r.SundayHours)
		row++
	}

	// 合计行：原始工时
	f.SetCellValue(sheetName, cell("A", row), "合计")
	for i, day := range model.DaysOfWeek {
		f.SetCellValue(sheetName, cell(colName(dayStartCol+i-1), row), report.GrandTotalByDay[day])
	}
	f.SetCellValue(sheetName, cell(hoursCol1, row), report.GrandTotalWeekdays)
	f.SetCellValue(sheetName, cell(hoursCol2, row), report.GrandTotalSunday)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "排班表.xlsx", nil
}

// ═══════════════════════════════════════════════════════════
// ExportEmployeeICS — 导出员工个人排班为 ICS 日历
// ═══════════════════════════════════════════════════════════
//
// 排班按星期循环、不带具体日期，导出时把每条记录落在
// "自今天起该星期的下一次出现" 的日期上，按周重复。

func (s *exportService) ExportEmployeeICS(ctx context.Context, employeeID string) (*bytes.Buffer, string, error) {
	employee, err := s.repo.Employee.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, "", err
	}

	roster, err := s.repo.Roster.List(ctx)
	if err != nil {
		s.logger.Error("查询排班记录失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cafe-roster//roster-export//EN")

	now := s.now()
	count := 0
	for i := range roster {
		entry := &roster[i]
		if entry.EmployeeID != employeeID {
			continue
		}
		start, end, err := nextOccurrence(now, entry.Day, entry.StartTime, entry.EndTime)
		if err != nil {
			s.logger.Warn("跳过无法解析的排班记录",
				zap.String("roster_entry_id", entry.RosterEntryID), zap.Error(err))
			continue
		}

		event := cal.AddEvent(entry.RosterEntryID + "@cafe-roster")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		summary := "值班"
		if entry.Shift != nil {
			summary = entry.Shift.Name
		}
		event.SetSummary(fmt.Sprintf("%s (%s)", summary, employee.Name))
		event.AddRrule("FREQ=WEEKLY")
		count++
	}

	if count == 0 {
		return nil, "", ErrExportNoRoster
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("%s_排班.ics", employee.Name)
	return buf, filename, nil
}

// nextOccurrence 计算自 now 起（含当天）某星期下一次出现的起止时刻
func nextOccurrence(now time.Time, day, startTime, endTime string) (time.Time, time.Time, error) {
	dayIdx := model.DayIndex(day)
	if dayIdx < 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("无效的星期: %s", day)
	}
	startMin, err := model.ParseClock(startTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := model.ParseClock(endTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	// time.Weekday 周日为 0；内部索引周一为 0
	nowIdx := (int(now.Weekday()) + 6) % 7
	delta := (dayIdx - nowIdx + 7) % 7

	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, delta)
	start := date.Add(time.Duration(startMin) * time.Minute)
	end := date.Add(time.Duration(endMin) * time.Minute)
	return start, end, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

