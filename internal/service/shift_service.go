package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/model"
	"github.com/KaanYilmazz/117RosterMaker/internal/repository"
)

// ── 班次模块业务错误 ──

var (
	ErrInvalidDay           = errors.New("无效的星期")
	ErrInvalidTimeRange     = errors.New("结束时刻必须晚于开始时刻")
	ErrInvalidPosition      = errors.New("无效的岗位")
	ErrEverydayOnlyOnCreate = errors.New("更新班次时不允许使用 Everyday")
)

// ShiftService 班次业务接口
type ShiftService interface {
	// Create 创建班次；Day 为 "Everyday" 时展开为周一至周日 7 条
	Create(ctx context.Context, req *dto.CreateShiftRequest, callerID string) ([]dto.ShiftResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error)
	List(ctx context.Context) ([]dto.ShiftResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateShiftRequest, callerID string) (*dto.ShiftResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest, callerID string) ([]dto.ShiftResponse, error) {
	if req.Day != model.DayEveryday && !model.ValidDay(req.Day) {
		return nil, ErrInvalidDay
	}
	if _, err := model.NewInterval(req.StartTime, req.EndTime); err != nil {
		return nil, s.intervalError(err)
	}

	var required *model.Position
	if req.RequiredPosition != "" {
		pos := model.Position(req.RequiredPosition)
		if !pos.Valid() {
			return nil, ErrInvalidPosition
		}
		required = &pos
	}

	days := []string{req.Day}
	if req.Day == model.DayEveryday {
		days = model.DaysOfWeek
	}

	shifts := make([]model.Shift, 0, len(days))
	for _, day := range days {
		shift := model.Shift{
			Name:             req.Name,
			Day:              day,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			RequiredPosition: required,
			MinStaffCount:    req.MinStaffCount,
		}
		shift.CreatedBy = &callerID
		shift.UpdatedBy = &callerID
		shifts = append(shifts, shift)
	}

	if err := s.repo.Shift.BatchCreate(ctx, shifts); err != nil {
		s.logger.Error("创建班次失败", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.logger.Info("班次已创建",
		zap.String("name", req.Name),
		zap.String("day", req.Day),
		zap.Int("count", len(shifts)),
	)

	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result, nil
}

func (s *shiftService) GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	resp := toShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) List(ctx context.Context) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.List(ctx)
	if err != nil {
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, toShiftResponse(&shifts[i]))
	}
	return result, nil
}

func (s *shiftService) Update(ctx context.Context, id string, req *dto.UpdateShiftRequest, callerID string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.Shift.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		shift.Name = *req.Name
	}
	if req.Day != nil {
		if *req.Day == model.DayEveryday {
			return nil, ErrEverydayOnlyOnCreate
		}
		if !model.ValidDay(*req.Day) {
			return nil, ErrInvalidDay
		}
		shift.Day = *req.Day
	}
	if req.StartTime != nil {
		shift.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		shift.EndTime = *req.EndTime
	}
	if _, err := model.NewInterval(shift.StartTime, shift.EndTime); err != nil {
		return nil, s.intervalError(err)
	}
	if req.RequiredPosition != nil {
		if *req.RequiredPosition == "" {
			shift.RequiredPosition = nil
		} else {
			pos := model.Position(*req.RequiredPosition)
			if !pos.Valid() {
				return nil, ErrInvalidPosition
			}
			shift.RequiredPosition = &pos
		}
	}
	if req.MinStaffCount != nil {
		shift.MinStaffCount = *req.MinStaffCount
	}
	shift.UpdatedBy = &callerID

	if err := s.repo.Shift.Update(ctx, shift); err != nil {
		s.logger.Error("更新班次失败", zap.Error(err), zap.String("shift_id", id))
		return nil, err
	}

	resp := toShiftResponse(shift)
	return &resp, nil
}

func (s *shiftService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Shift.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.Error(err))
		return err
	}
	if err := s.repo.Shift.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除班次失败", zap.Error(err), zap.String("shift_id", id))
		return err
	}
	s.logger.Info("班次已删除", zap.String("shift_id", id), zap.String("caller", callerID))
	return nil
}

// intervalError 把区间构造错误归一到业务错误，保留原始信息便于排查
func (s *shiftService) intervalError(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
}

// toShiftResponse 转换班次为响应
func toShiftResponse(shift *model.Shift) dto.ShiftResponse {
	resp := dto.ShiftResponse{
		ID:            shift.ShiftID,
		Name:          shift.Name,
		Day:           shift.Day,
		StartTime:     shift.StartTime,
		EndTime:       shift.EndTime,
		MinStaffCount: shift.MinStaffCount,
		CreatedAt:     shift.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     shift.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if shift.RequiredPosition != nil {
		resp.RequiredPosition = string(*shift.RequiredPosition)
	}
	return resp
}

