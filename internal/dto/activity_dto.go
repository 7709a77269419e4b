package dto

import (
	"time"

	"github.com/google/uuid"
)

// DailyActivityPoint is one day of the task activity chart
type DailyActivityPoint struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Open    int    `json:"open"`
	Created int    `json:"created"`
	Closed  int    `json:"closed"`
}

// TaskActivityResponse is the trailing-window activity series
type TaskActivityResponse struct {
	Range  string               `json:"range"`
	Points []DailyActivityPoint `json:"points"`
}

// TaskFlowEntry is the flow measurement of one completed task
type TaskFlowEntry struct {
	TaskID      uuid.UUID `json:"taskId"`
	Title       string    `json:"title"`
	Days        int       `json:"days"`
	CompletedAt time.Time `json:"completedAt"`
}

// FlowMetricsResponse carries cycle/lead times for a project's completed
// tasks plus averages and day-bucket distributions for the charts
type FlowMetricsResponse struct {
	CycleTimes        []TaskFlowEntry `json:"cycleTimes"`
	LeadTimes         []TaskFlowEntry `json:"leadTimes"`
	AvgCycleDays      int             `json:"avgCycleDays"`
	AvgLeadDays       int             `json:"avgLeadDays"`
	CycleDistribution map[int]int     `json:"cycleDistribution"`
	LeadDistribution  map[int]int     `json:"leadDistribution"`
}
