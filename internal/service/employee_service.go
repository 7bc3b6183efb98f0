package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/model"
	"github.com/KaanYilmazz/117RosterMaker/internal/repository"
)

// ── 员工模块业务错误 ──

var ErrEmailTaken = errors.New("该邮箱已被使用")

// EmployeeService 员工业务接口
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context) ([]dto.EmployeeResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error)
	// Delete 删除员工并级联清理其空闲时间与排班记录
	Delete(ctx context.Context, id string, callerID string) error
}

type employeeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, logger: logger}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	position := model.Position(req.Position)
	if !position.Valid() {
		return nil, ErrInvalidPosition
	}

	if req.Email != "" {
		if _, err := s.repo.Employee.GetByEmail(ctx, req.Email); err == nil {
			return nil, ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询员工失败", zap.Error(err))
			return nil, err
		}
	}

	employee := &model.Employee{
		Name:     req.Name,
		Position: position,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, err
		}
		employee.PasswordHash = string(hash)
	}
	employee.CreatedBy = &callerID
	employee.UpdatedBy = &callerID

	if err := s.repo.Employee.Create(ctx, employee); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}

	s.logger.Info("员工已创建",
		zap.String("employee_id", employee.EmployeeID),
		zap.String("position", req.Position),
	)

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	resp := toEmployeeResponse(employee)
	return &resp, nil
}

func (s *employeeService) List(ctx context.Context) ([]dto.EmployeeResponse, error) {
	employees, err := s.repo.Employee.List(ctx)
	if err != nil {
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, toEmployeeResponse(&employees[i]))
	}
	return result, nil
}

func (s *employeeService) Update(ctx context.Context, id string, req *dto.UpdateEmployeeRequest, callerID string) (*dto.EmployeeResponse, error) {
	employee, err := s.repo.Employee.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Position != nil {
		position := model.Position(*req.Position)
		if !position.Valid() {
			return nil, ErrInvalidPosition
		}
		employee.Position = position
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	employee.UpdatedBy = &callerID

	if err := s.repo.Employee.Update(ctx, employee); err != nil {
		s.logger.Error("更新员工失败", zap.Error(err), zap.String("employee_id", id))
		return nil, err
	}

	resp := toEmployeeResponse(employee)
	return &resp, nil
}

func (s *employeeService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Employee.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.Error(err))
		return err
	}

	// 先清理从属数据，再删员工本体；空闲时间与排班对账以员工为准
	if err := s.repo.Availability.DeleteByEmployee(ctx, id); err != nil {
		s.logger.Error("清理空闲时间失败", zap.Error(err), zap.String("employee_id", id))
		return err
	}
	if err := s.repo.Roster.DeleteByEmployee(ctx, id); err != nil {
		s.logger.Error("清理排班记录失败", zap.Error(err), zap.String("employee_id", id))
		return err
	}
	if err := s.repo.Employee.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除员工失败", zap.Error(err), zap.String("employee_id", id))
		return err
	}

	s.logger.Info("员工已删除", zap.String("employee_id", id), zap.String("caller", callerID))
	return nil
}

// toEmployeeResponse 转换员工为响应
func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:            e.EmployeeID,
		Name:          e.Name,
		Position:      string(e.Position),
		PositionLabel: e.Position.Label(),
		Email:         e.Email,
		Phone:         e.Phone,
		CreatedAt:     e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

