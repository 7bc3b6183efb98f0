package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/KaanYilmazz/117RosterMaker/internal/model"
)

func setupTestExportService(t *testing.T) (*exportService, *testRepos) {
	t.Helper()
	repos := newTestRepos()
	hours := NewHoursService(repos.toRepository(), zap.NewNop())
	svc := NewExportService(repos.toRepository(), hours, zap.NewNop()).(*exportService)
	// 固定时间：2026-08-31 是周一
	svc.now = func() time.Time {
		return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	}
	return svc, repos
}

func TestExportRoster_EmptyRoster(t *testing.T) {
	svc, _ := setupTestExportService(t)

	if _, _, err := svc.ExportRoster(context.Background()); !errors.Is(err, ErrExportNoRoster) {
		t.Errorf("期望 ErrExportNoRoster，实际 %v", err)
	}
}

func TestExportRoster_ProducesWorkbook(t *testing.T) {
	svc, repos := setupTestExportService(t)
	ctx := context.Background()

	emp := testEmployee("e1", model.PositionRegularStaff)
	repos.employee.Create(ctx, &emp)
	repos.roster.Create(ctx, &model.RosterEntry{
		ShiftID: "s1", EmployeeID: "e1",
		Day: model.DayMonday, StartTime: "09:00", EndTime: "17:00",
	})

	buf, filename, err := svc.ExportRoster(ctx)
	if err != nil {
		t.Fatalf("ExportRoster 失败: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Excel 内容不应为空")
	}
	if filename != "排班表.xlsx" {
		t.Errorf("文件名 = %q", filename)
	}
	// xlsx 是 zip 容器，魔数 PK
	if head := buf.Bytes()[:2]; string(head) != "PK" {
		t.Errorf("输出不是合法的 xlsx: % x", head)
	}
}

func TestExportEmployeeICS(t *testing.T) {
	svc, repos := setupTestExportService(t)
	ctx := context.Background()

	emp := testEmployee("e1", model.PositionRegularStaff)
	other := testEmployee("e2", model.PositionRegularStaff)
	repos.employee.Create(ctx, &emp)
	repos.employee.Create(ctx, &other)

	repos.roster.Create(ctx, &model.RosterEntry{
		RosterEntryID: "entry-a", ShiftID: "s1", EmployeeID: "e1",
		Day: model.DayWednesday, StartTime: "09:00", EndTime: "17:00",
	})
	repos.roster.Create(ctx, &model.RosterEntry{
		RosterEntryID: "entry-b", ShiftID: "s1", EmployeeID: "e2",
		Day: model.DayWednesday, StartTime: "09:00", EndTime: "17:00",
	})

	buf, filename, err := svc.ExportEmployeeICS(ctx, "e1")
	if err != nil {
		t.Fatalf("ExportEmployeeICS 失败: %v", err)
	}
	content := buf.String()

	if !strings.Contains(content, "BEGIN:VCALENDAR") || !strings.Contains(content, "BEGIN:VEVENT") {
		t.Fatal("输出应为 iCalendar 格式")
	}
	if !strings.Contains(content, "RRULE:FREQ=WEEKLY") {
		t.Error("事件应按周重复")
	}
	if !strings.Contains(content, "entry-a@cafe-roster") {
		t.Error("应包含 e1 的排班事件")
	}
	if strings.Contains(content, "entry-b@cafe-roster") {
		t.Error("不应包含其他员工的排班事件")
	}
	// 2026-08-31 是周一，下一个周三为 09-02
	if !strings.Contains(content, "20260902T090000") {
		t.Errorf("事件日期应为下一个周三，内容:\n%s", content)
	}
	if filename != "e1_排班.ics" {
		t.Errorf("文件名 = %q", filename)
	}
}

func TestExportEmployeeICS_NoEntries(t *testing.T) {
	svc, repos := setupTestExportService(t)
	ctx := context.Background()

	emp := testEmployee("e1", model.PositionRegularStaff)
	repos.employee.Create(ctx, &emp)

	if _, _, err := svc.ExportEmployeeICS(ctx, "e1"); !errors.Is(err, ErrExportNoRoster) {
		t.Errorf("期望 ErrExportNoRoster，实际 %v", err)
	}
	if _, _, err := svc.ExportEmployeeICS(ctx, "missing"); !errors.Is(err, ErrEmployeeNotFound) {
		t.Errorf("期望 ErrEmployeeNotFound，实际 %v", err)
	}
}

func TestNextOccurrence(t *testing.T) {
	// 2026-08-31 周一
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	// 当天的星期：落在今天
	start, end, err := nextOccurrence(now, model.DayMonday, "09:00", "17:00")
	if err != nil {
		t.Fatal(err)
	}
	if start.Day() != 31 || start.Hour() != 9 || end.Hour() != 17 {
		t.Errorf("周一应落在当天: start=%v end=%v", start, end)
	}

	// 周日：6 天后
	start, _, err = nextOccurrence(now, model.DaySunday, "10:00", "14:00")
	if err != nil {
		t.Fatal(err)
	}
	if start.Month() != time.September || start.Day() != 6 {
		t.Errorf("周日应为 09-06，实际 %v", start)
	}

	if _, _, err := nextOccurrence(now, "Funday", "09:00", "17:00"); err == nil {
		t.Error("无效星期应报错")
	}
}

