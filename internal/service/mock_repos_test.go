package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/KaanYilmazz/117RosterMaker/internal/model"
)

// Mock 一律按插入顺序返回列表，保证排班结果可复现

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees []*model.Employee
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{}
}

func (m *mockEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if employee.EmployeeID == "" {
		employee.EmployeeID = "emp-" + employee.Name
	}
	m.employees = append(m.employees, employee)
	return nil
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.EmployeeID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	result := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	for i, e := range m.employees {
		if e.EmployeeID == employee.EmployeeID {
			m.employees[i] = employee
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Delete(_ context.Context, id string, _ string) error {
	for i, e := range m.employees {
		if e.EmployeeID == id {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts []*model.Shift
	nextID int
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{}
}

func (m *mockShiftRepo) assignID(shift *model.Shift) {
	if shift.ShiftID == "" {
		m.nextID++
		shift.ShiftID = fmt.Sprintf("shift-%d", m.nextID)
	}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	m.assignID(shift)
	m.shifts = append(m.shifts, shift)
	return nil
}

func (m *mockShiftRepo) BatchCreate(_ context.Context, shifts []model.Shift) error {
	for i := range shifts {
		m.assignID(&shifts[i])
		copied := shifts[i]
		m.shifts = append(m.shifts, &copied)
	}
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	for _, s := range m.shifts {
		if s.ShiftID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context) ([]model.Shift, error) {
	result := make([]model.Shift, 0, len(m.shifts))
	for _, s := range m.shifts {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	for i, s := range m.shifts {
		if s.ShiftID == shift.ShiftID {
			m.shifts[i] = shift
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) Delete(_ context.Context, id string, _ string) error {
	for i, s := range m.shifts {
		if s.ShiftID == id {
			m.shifts = append(m.shifts[:i], m.shifts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock AvailabilityRepository ──

type mockAvailabilityRepo struct {
	availabilities []*model.Availability
}

func newMockAvailabilityRepo() *mockAvailabilityRepo {
	return &mockAvailabilityRepo{}
}

func (m *mockAvailabilityRepo) Upsert(_ context.Context, availability *model.Availability) error {
	for _, a := range m.availabilities {
		if a.EmployeeID == availability.EmployeeID && a.Day == availability.Day {
			a.StartTime = availability.StartTime
			a.EndTime = availability.EndTime
			a.IsAvailable = availability.IsAvailable
			return nil
		}
	}
	if availability.AvailabilityID == "" {
		availability.AvailabilityID = fmt.Sprintf("avail-%s-%s", availability.EmployeeID, availability.Day)
	}
	m.availabilities = append(m.availabilities, availability)
	return nil
}

func (m *mockAvailabilityRepo) GetByEmployeeAndDay(_ context.Context, employeeID, day string) (*model.Availability, error) {
	for _, a := range m.availabilities {
		if a.EmployeeID == employeeID && a.Day == day {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAvailabilityRepo) List(_ context.Context) ([]model.Availability, error) {
	result := make([]model.Availability, 0, len(m.availabilities))
	for _, a := range m.availabilities {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAvailabilityRepo) ListByEmployee(_ context.Context, employeeID string) ([]model.Availability, error) {
	var result []model.Availability
	for _, a := range m.availabilities {
		if a.EmployeeID == employeeID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAvailabilityRepo) DeleteByEmployee(_ context.Context, employeeID string) error {
	kept := m.availabilities[:0]
	for _, a := range m.availabilities {
		if a.EmployeeID != employeeID {
			kept = append(kept, a)
		}
	}
	m.availabilities = kept
	return nil
}

// ── Mock RosterRepository ──

type mockRosterRepo struct {
	entries []*model.RosterEntry
	nextID  int
}

func newMockRosterRepo() *mockRosterRepo {
	return &mockRosterRepo{}
}

func (m *mockRosterRepo) assignID(entry *model.RosterEntry) {
	if entry.RosterEntryID == "" {
		m.nextID++
		entry.RosterEntryID = fmt.Sprintf("entry-%d", m.nextID)
	}
}

func (m *mockRosterRepo) ReplaceAll(_ context.Context, entries []model.RosterEntry) error {
	m.entries = nil
	for i := range entries {
		m.assignID(&entries[i])
		copied := entries[i]
		m.entries = append(m.entries, &copied)
	}
	return nil
}

func (m *mockRosterRepo) Create(_ context.Context, entry *model.RosterEntry) error {
	m.assignID(entry)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockRosterRepo) GetByID(_ context.Context, id string) (*model.RosterEntry, error) {
	for _, e := range m.entries {
		if e.RosterEntryID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRosterRepo) List(_ context.Context) ([]model.RosterEntry, error) {
	result := make([]model.RosterEntry, 0, len(m.entries))
	for _, e := range m.entries {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockRosterRepo) ListByShift(_ context.Context, shiftID string) ([]model.RosterEntry, error) {
	var result []model.RosterEntry
	for _, e := range m.entries {
		if e.ShiftID == shiftID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockRosterRepo) Update(_ context.Context, entry *model.RosterEntry) error {
	for i, e := range m.entries {
		if e.RosterEntryID == entry.RosterEntryID {
			m.entries[i] = entry
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRosterRepo) Delete(_ context.Context, id string) error {
	for i, e := range m.entries {
		if e.RosterEntryID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockRosterRepo) DeleteByEmployee(_ context.Context, employeeID string) error {
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.EmployeeID != employeeID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

