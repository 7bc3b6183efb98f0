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

// AvailabilityService 空闲时间业务接口
type AvailabilityService interface {
	// Upsert 写入员工某天的空闲窗口：同一 (员工, 星期) 重复提交即覆盖
	Upsert(ctx context.Context, req *dto.UpsertAvailabilityRequest, callerID string) (*dto.AvailabilityResponse, error)
	List(ctx context.Context) ([]dto.AvailabilityResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]dto.AvailabilityResponse, error)
}

type availabilityService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAvailabilityService 创建 AvailabilityService 实例
func NewAvailabilityService(repo *repository.Repository, logger *zap.Logger) AvailabilityService {
	return &availabilityService{repo: repo, logger: logger}
}

func (s *availabilityService) Upsert(ctx context.Context, req *dto.UpsertAvailabilityRequest, callerID string) (*dto.AvailabilityResponse, error) {
	if !model.ValidDay(req.Day) {
		return nil, ErrInvalidDay
	}
	if _, err := model.NewInterval(req.StartTime, req.EndTime); err != nil {
		return nil, errors.Join(ErrInvalidTimeRange, err)
	}
	if _, err := s.repo.Employee.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	availability := &model.Availability{
		EmployeeID:  req.EmployeeID,
		Day:         req.Day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	}
	availability.CreatedBy = &callerID
	availability.UpdatedBy = &callerID

	if err := s.repo.Availability.Upsert(ctx, availability); err != nil {
		s.logger.Error("写入空闲时间失败", zap.Error(err),
			zap.String("employee_id", req.EmployeeID), zap.String("day", req.Day))
		return nil, err
	}

	// Upsert 命中已有行时主键不会回填，按 (员工, 星期) 重查一次
	stored, err := s.repo.Availability.GetByEmployeeAndDay(ctx, req.EmployeeID, req.Day)
	if err != nil {
		s.logger.Error("查询空闲时间失败", zap.Error(err))
		return nil, err
	}

	resp := toAvailabilityResponse(stored)
	return &resp, nil
}

func (s *availabilityService) List(ctx context.Context) ([]dto.AvailabilityResponse, error) {
	availabilities, err := s.repo.Availability.List(ctx)
	if err != nil {
		s.logger.Error("查询空闲时间失败", zap.Error(err))
		return nil, err
	}
	return toAvailabilityResponses(availabilities), nil
}

func (s *availabilityService) ListByEmployee(ctx context.Context, employeeID string) ([]dto.AvailabilityResponse, error) {
	availabilities, err := s.repo.Availability.ListByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询空闲时间失败", zap.Error(err))
		return nil, err
	}
	return toAvailabilityResponses(availabilities), nil
}

func toAvailabilityResponse(a *model.Availability) dto.AvailabilityResponse {
	return dto.AvailabilityResponse{
		ID:          a.AvailabilityID,
		EmployeeID:  a.EmployeeID,
		Day:         a.Day,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		IsAvailable: a.IsAvailable,
	}
}

func toAvailabilityResponses(items []model.Availability) []dto.AvailabilityResponse {
	result := make([]dto.AvailabilityResponse, 0, len(items))
	for i := range items {
		result = append(result, toAvailabilityResponse(&items[i]))
	}
	return result
}

