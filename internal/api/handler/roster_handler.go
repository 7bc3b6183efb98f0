package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/KaanYilmazz/117RosterMaker/internal/dto"
	"github.com/KaanYilmazz/117RosterMaker/internal/service"
	pkgerrors "github.com/KaanYilmazz/117RosterMaker/pkg/errors"
	"github.com/KaanYilmazz/117RosterMaker/pkg/response"
)

// RosterHandler 排班模块 HTTP 处理器
type RosterHandler struct {
	rosterSvc service.RosterService
	hoursSvc  service.HoursService
}

// NewRosterHandler 创建 RosterHandler
func NewRosterHandler(rosterSvc service.RosterService, hoursSvc service.HoursService) *RosterHandler {
	return &RosterHandler{rosterSvc: rosterSvc, hoursSvc: hoursSvc}
}

// GenerateRoster 自动排班（整套替换既有排班）
// POST /api/v1/roster/generate
func (h *RosterHandler) GenerateRoster(c *gin.Context) {
	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	result, err := h.rosterSvc.Generate(c.Request.Context(), callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, result)
}

// GetRoster 获取当前排班
// GET /api/v1/roster
func (h *RosterHandler) GetRoster(c *gin.Context) {
	entries, err := h.rosterSvc.GetRoster(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": entries})
}

// SwapEntries 互换两条排班记录的员工
// POST /api/v1/roster/swap
func (h *RosterHandler) SwapEntries(c *gin.Context) {
	var req dto.SwapEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	roster, err := h.rosterSvc.Swap(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, gin.H{"list": roster})
}

// RemoveEntry 删除一条排班记录
// DELETE /api/v1/roster/entries/:id
func (h *RosterHandler) RemoveEntry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排班记录ID不能为空")
		return
	}

	roster, err := h.rosterSvc.Remove(c.Request.Context(), id)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, gin.H{"list": roster})
}

// AddEntry 手工把员工加入班次
// POST /api/v1/roster/entries
func (h *RosterHandler) AddEntry(c *gin.Context) {
	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetEmployeeID(c)
	if !ok {
		return
	}

	roster, err := h.rosterSvc.Add(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.Created(c, gin.H{"list": roster})
}

// ListCandidates 获取可手工加入某班次的候选员工
// GET /api/v1/roster/shifts/:id/candidates
func (h *RosterHandler) ListCandidates(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班次ID不能为空")
		return
	}

	candidates, err := h.rosterSvc.Candidates(c.Request.Context(), id)
	if err != nil {
		h.handleRosterError(c, err)
		return
	}

	response.OK(c, gin.H{"list": candidates})
}

// HoursReport 周工时报表
// GET /api/v1/roster/hours
func (h *RosterHandler) HoursReport(c *gin.Context) {
	report, err := h.hoursSvc.Report(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, report)
}

// handleRosterError 统一处理排班模块业务错误
func (h *RosterHandler) handleRosterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRosterEntryNotFound):
		response.NotFound(c, 15001, "排班记录不存在")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 15002, "班次不存在")
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 15003, "员工不存在")
	case errors.Is(err, service.ErrSwapSameEntry):
		response.BadRequest(c, 15004, "不能与自身互换")
	case errors.Is(err, service.ErrAlreadyOnShift):
		response.Conflict(c, 15005, "该员工已在此班次中")
	case errors.Is(err, service.ErrPositionMismatch):
		response.BadRequest(c, 15006, "员工岗位与班次要求不符")
	case errors.Is(err, service.ErrEntryConflict):
		response.Conflict(c, 15007, "该员工当天已有时段冲突的排班")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 15008, "数据已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

