package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/model"
)

func setupTestShiftService() (ShiftService, *testRepos) {
	repos := newTestRepos()
	svc := NewShiftService(repos.toRepository(), zap.NewNop())
	return svc, repos
}

func TestShiftCreate_SingleDay(t *testing.T) {
	svc, _ := setupTestShiftService()

	created, err := svc.Create(context.Background(), &dto.CreateShiftRequest{
		Name:             "早班",
		Day:              model.DayMonday,
		StartTime:        "07:00",
		EndTime:          "15:00",
		RequiredPosition: string(model.PositionHeadBarista),
		MinStaffCount:    1,
	}, "caller")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if len(created) != 1 {
		t.Fatalf("期望创建 1 条，实际 %d", len(created))
	}
	if created[0].Day != model.DayMonday || created[0].RequiredPosition != string(model.PositionHeadBarista) {
		t.Errorf("创建结果不正确: %+v", created[0])
	}
}

func TestShiftCreate_EverydayExpandsToSevenRows(t *testing.T) {
	svc, repos := setupTestShiftService()

	created, err := svc.Create(context.Background(), &dto.CreateShiftRequest{
		Name:          "日班",
		Day:           model.DayEveryday,
		StartTime:     "09:00",
		EndTime:       "17:00",
		MinStaffCount: 2,
	}, "caller")
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	if len(created) != 7 {
		t.Fatalf("Everyday 应展开为 7 条，实际 %d", len(created))
	}
	seen := make(map[string]bool)
	for _, c := range created {
		if c.Day == model.DayEveryday {
			t.Fatalf("存储结果不应含 Everyday: %+v", c)
		}
		seen[c.Day] = true
	}
	if len(seen) != 7 {
		t.Errorf("应覆盖 7 个不同星期，实际 %d", len(seen))
	}

	stored, _ := repos.shift.List(context.Background())
	if len(stored) != 7 {
		t.Errorf("仓储中应有 7 条，实际 %d", len(stored))
	}
}

func TestShiftCreate_Validation(t *testing.T) {
	svc, _ := setupTestShiftService()
	ctx := context.Background()

	base := dto.CreateShiftRequest{
		Name: "班次", Day: model.DayMonday,
		StartTime: "09:00", EndTime: "17:00", MinStaffCount: 1,
	}

	badDay := base
	badDay.Day = "Funday"
	if _, err := svc.Create(ctx, &badDay, "c"); !errors.Is(err, ErrInvalidDay) {
		t.Errorf("期望 ErrInvalidDay，实际 %v", err)
	}

	badRange := base
	badRange.StartTime, badRange.EndTime = "17:00", "09:00"
	if _, err := svc.Create(ctx, &badRange, "c"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际 %v", err)
	}

	zeroLength := base
	zeroLength.StartTime, zeroLength.EndTime = "09:00", "09:00"
	if _, err := svc.Create(ctx, &zeroLength, "c"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("零长度班次应拒绝，实际 %v", err)
	}

	badPosition := base
	badPosition.RequiredPosition = "barista-supreme"
	if _, err := svc.Create(ctx, &badPosition, "c"); !errors.Is(err, ErrInvalidPosition) {
		t.Errorf("期望 ErrInvalidPosition，实际 %v", err)
	}
}

func TestShiftUpdate(t *testing.T) {
	svc, _ := setupTestShiftService()
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateShiftRequest{
		Name: "早班", Day: model.DayMonday,
		StartTime: "07:00", EndTime: "15:00", MinStaffCount: 1,
	}, "caller")
	if err != nil {
		t.Fatal(err)
	}
	id := created[0].ID

	newEnd := "16:00"
	updated, err := svc.Update(ctx, id, &dto.UpdateShiftRequest{EndTime: &newEnd}, "caller")
	if err != nil {
		t.Fatalf("Update 失败: %v", err)
	}
	if updated.EndTime != "16:00" || updated.StartTime != "07:00" {
		t.Errorf("更新结果不正确: %+v", updated)
	}

	// 更新不允许 Everyday
	everyday := model.DayEveryday
	if _, err := svc.Update(ctx, id, &dto.UpdateShiftRequest{Day: &everyday}, "caller"); !errors.Is(err, ErrEverydayOnlyOnCreate) {
		t.Errorf("期望 ErrEverydayOnlyOnCreate，实际 %v", err)
	}

	// 更新后的组合区间仍需合法
	badStart := "23:00"
	if _, err := svc.Update(ctx, id, &dto.UpdateShiftRequest{StartTime: &badStart}, "caller"); !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际 %v", err)
	}

	if _, err := svc.Update(ctx, "missing", &dto.UpdateShiftRequest{}, "caller"); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("期望 ErrShiftNotFound，实际 %v", err)
	}
}

func TestShiftDelete(t *testing.T) {
	svc, repos := setupTestShiftService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, &dto.CreateShiftRequest{
		Name: "早班", Day: model.DayMonday,
		StartTime: "07:00", EndTime: "15:00", MinStaffCount: 1,
	}, "caller")

	if err := svc.Delete(ctx, created[0].ID, "caller"); err != nil {
		t.Fatalf("Delete 失败: %v", err)
	}
	stored, _ := repos.shift.List(ctx)
	if len(stored) != 0 {
		t.Errorf("删除后仓储应为空，实际 %d", len(stored))
	}

	if err := svc.Delete(ctx, "missing", "caller"); !errors.Is(err, ErrShiftNotFound) {
		t.Errorf("期望 ErrShiftNotFound，实际 %v", err)
	}
}

