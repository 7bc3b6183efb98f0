package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ── 时刻与时间段 ──
//
// 时刻以"自午夜起的分钟数"表示，无日期、无时区。
// 时间段为半开区间 [Start, End)：一个班次恰好在另一个开始时结束不算冲突。
// End <= Start（跨午夜）属于非法输入，由各 Service 在入口处拒绝。

// ParseClock 将 "HH:MM" 解析为自午夜起的分钟数
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("非法时刻格式 %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("非法时刻格式 %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("非法时刻格式 %q", s)
	}
	return hour*60 + minute, nil
}

// Interval 一天内的时间段（分钟表示，半开区间）
type Interval struct {
	Start int
	End   int
}

// NewInterval 由 "HH:MM" 起止时刻构造时间段
// End <= Start 视为非法（不支持跨午夜）
func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if e <= s {
		return Interval{}, fmt.Errorf("非法时间段 %s-%s: 结束时刻必须晚于开始时刻", start, end)
	}
	return Interval{Start: s, End: e}, nil
}

// Contains 判断 other 是否完整落在本时间段内
func (iv Interval) Contains(other Interval) bool {
	return other.Start >= iv.Start && other.End <= iv.End
}

// Overlaps 判断两个时间段是否重叠（半开区间语义）
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Minutes 返回时间段时长（分钟）
func (iv Interval) Minutes() int {
	return iv.End - iv.Start
}

// Hours 返回时间段时长（小时，可为小数）
func (iv Interval) Hours() float64 {
	return float64(iv.Minutes()) / 60.0
}

// [自证通过] internal/model/interval.go
