package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/service"
	"github.com/KaanYilmazz/117RosterMaker/pkg/response"
)

// AvailabilityHandler 空闲时间模块 HTTP 处理器
type AvailabilityHandler struct {
	availabilitySvc service.AvailabilityService
}

// NewAvailabilityHandler 创建 AvailabilityHandler
func NewAvailabilityHandler(availabilitySvc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilitySvc: availabilitySvc}
}

// ListAvailabilities 获取全部空闲时间
// GET /api/v1/availabilities
func (h *AvailabilityHandler) ListAvailabilities(c *gin.Context) {
	// 可选按员工过滤
	if employeeID := c.Query("employee_id"); employeeID != "" {
		list, err := h.availabilitySvc.ListByEmployee(c.Request.Context(), employeeID)
		if err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, gin.H{"list": list})
		return
	}

	list, err := h.availabilitySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// UpsertAvailability 写入空闲时间（同员工同星期覆盖写）
// PUT /api/v1/availabilities
func (h *AvailabilityHandler) UpsertAvailability(c *gin.Context) {
	var req dto.UpsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	availability, err := h.availabilitySvc.Upsert(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleAvailabilityError(c, err)
		return
	}

	response.OK(c, availability)
}

// handleAvailabilityError 统一处理空闲时间模块业务错误
func (h *AvailabilityHandler) handleAvailabilityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 14001, "员工不存在")
	case errors.Is(err, service.ErrInvalidDay):
		response.BadRequest(c, 14002, "无效的星期")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 14003, "结束时刻必须晚于开始时刻")
	default:
		response.InternalError(c)
	}
}

