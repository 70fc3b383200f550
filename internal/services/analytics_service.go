package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/constants"
	"github.com/taskplatform/task-platform-api/internal/models"
	"github.com/taskplatform/task-platform-api/internal/policy"
	"github.com/taskplatform/task-platform-api/internal/repository"
)

// Summary aggregates the workload in one response. TopUsers is omitted for
// employees, who only see their own slice of the numbers.
type Summary struct {
	Total      int64                      `json:"total"`
	ByStatus   []repository.StatusCount   `json:"by_status"`
	ByPriority []repository.PriorityCount `json:"by_priority"`
	TopUsers   []repository.CreatorStat   `json:"top_users,omitempty"`
}

// TrendPoint is one day of the task-creation series.
type TrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// AnalyticsService computes workload aggregates. For the summary and trend
// queries employees are scoped to tasks assigned to them; the CSV export is
// unscoped for every role.
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{analyticsRepo: analyticsRepo}
}

func scopeFor(actor policy.Actor, requested *uuid.UUID) *uuid.UUID {
	if actor.Role == models.RoleEmployee {
		id := actor.ID
		return &id
	}
	return requested
}

// GetSummary returns total, per-status and per-priority counts, plus the
// top creator ranking for managerial roles.
func (s *AnalyticsService) GetSummary(actor policy.Actor) (*Summary, error) {
	scope := scopeFor(actor, nil)

	total, err := s.analyticsRepo.CountTasks(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	byStatus, err := s.analyticsRepo.CountByStatus(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	byPriority, err := s.analyticsRepo.CountByPriority(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to count by priority: %w", err)
	}

	summary := &Summary{
		Total:      total,
		ByStatus:   byStatus,
		ByPriority: byPriority,
	}
	if actor.Role.Managerial() {
		topUsers, err := s.analyticsRepo.TopCreators(constants.TopCreatorsLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to rank creators: %w", err)
		}
		summary.TopUsers = topUsers
	}
	return summary, nil
}

// GetTrends returns a dense series of tasks created per day over the last
// days days, ending today. Days without any tasks appear with a zero count.
func (s *AnalyticsService) GetTrends(actor policy.Actor, days int, assigneeID *uuid.UUID) ([]TrendPoint, error) {
	if days <= 0 {
		days = constants.DefaultTrendDays
	}
	if days > 365 {
		days = 365
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	rows, err := s.analyticsRepo.CreatedPerDay(from, scopeFor(actor, assigneeID))
	if err != nil {
		return nil, fmt.Errorf("failed to count per day: %w", err)
	}

	byDay := make(map[string]int64, len(rows))
	for _, row := range rows {
		day := row.Day
		// Postgres reports dates as timestamps, sqlite as plain text.
		if len(day) > 10 {
			day = day[:10]
		}
		byDay[day] += row.Count
	}

	series := make([]TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, TrendPoint{Date: date, Count: byDay[date]})
	}
	return series, nil
}

var exportHeader = []string{
	"ID", "Title", "Description", "Status", "Priority",
	"Due Date", "Created At", "Created By", "Assignee",
}

// WriteCSV streams the filtered task list as CSV to w. Unlike the summary
// and trend aggregates, the export is not scoped by role: any authenticated
// caller exports all non-deleted tasks, narrowed only by the explicit
// status/assignee filters.
func (s *AnalyticsService) WriteCSV(w io.Writer, status *models.TaskStatus, assigneeID *uuid.UUID) error {
	tasks, err := s.analyticsRepo.ExportTasks(status, assigneeID)
	if err != nil {
		return fmt.Errorf("failed to export tasks: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for _, task := range tasks {
		dueDate := ""
		if task.DueDate != nil {
			dueDate = task.DueDate.Format("2006-01-02")
		}
		assignees := make([]string, 0, len(task.Assignments))
		for _, a := range task.Assignments {
			assignees = append(assignees, fmt.Sprintf("%s <%s>", a.User.Name, a.User.Email))
		}
		record := []string{
			task.ID.String(),
			task.Title,
			task.Description,
			string(task.Status),
			string(task.Priority),
			dueDate,
			task.CreatedAt.Format(time.RFC3339),
			fmt.Sprintf("%s <%s>", task.Creator.Name, task.Creator.Email),
			strings.Join(assignees, "; "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
