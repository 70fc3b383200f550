package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskplatform/task-platform-api/internal/models"
	"gorm.io/gorm"
)

// GormAnalyticsRepository is a GORM implementation of AnalyticsRepository.
// The aggregations are written as portable SQL so they run against postgres
// in production and the sqlite database the tests use.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// scoped returns a task query optionally restricted to tasks assigned to one
// user. The soft-delete scope is applied by GORM.
func (r *GormAnalyticsRepository) scoped(assigneeID *uuid.UUID) *gorm.DB {
	query := r.db.Model(&models.Task{})
	if assigneeID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("task_assignments.task_id = tasks.id").
			Where("task_assignments.user_id = ?", *assigneeID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	return query
}

// CountTasks counts non-deleted tasks, optionally scoped to an assignee
func (r *GormAnalyticsRepository) CountTasks(assigneeID *uuid.UUID) (int64, error) {
	var total int64
	if err := r.scoped(assigneeID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CountByStatus groups non-deleted tasks by status
func (r *GormAnalyticsRepository) CountByStatus(assigneeID *uuid.UUID) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.scoped(assigneeID).
		Select("tasks.status AS status, COUNT(*) AS count").
		Group("tasks.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByPriority groups non-deleted tasks by priority
func (r *GormAnalyticsRepository) CountByPriority(assigneeID *uuid.UUID) ([]PriorityCount, error) {
	var rows []PriorityCount
	err := r.scoped(assigneeID).
		Select("tasks.priority AS priority, COUNT(*) AS count").
		Group("tasks.priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopCreators ranks creators by created count descending, counting completed
// (status = done) alongside, joined with the creator's name and email
func (r *GormAnalyticsRepository) TopCreators(limit int) ([]CreatorStat, error) {
	var rows []CreatorStat
	err := r.db.Model(&models.Task{}).
		Select("tasks.creator_id AS user_id, users.name AS name, users.email AS email, " +
			"COUNT(*) AS created, " +
			"SUM(CASE WHEN tasks.status = 'done' THEN 1 ELSE 0 END) AS completed").
		Joins("JOIN users ON users.id = tasks.creator_id").
		Group("tasks.creator_id, users.name, users.email").
		Order("created DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreatedPerDay counts tasks created per calendar day since from
func (r *GormAnalyticsRepository) CreatedPerDay(from time.Time, assigneeID *uuid.UUID) ([]DayCount, error) {
	var rows []DayCount
	err := r.scoped(assigneeID).
		Select("DATE(tasks.created_at) AS day, COUNT(*) AS count").
		Where("tasks.created_at >= ?", from).
		Group("DATE(tasks.created_at)").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExportTasks returns non-deleted tasks for CSV export, optionally filtered
// by status and assignee, with creator and assignees populated
func (r *GormAnalyticsRepository) ExportTasks(status *models.TaskStatus, assigneeID *uuid.UUID) ([]models.Task, error) {
	query := r.scoped(assigneeID)
	if status != nil {
		query = query.Where("tasks.status = ?", *status)
	}

	var tasks []models.Task
	err := query.
		Preload("Creator").
		Preload("Assignments").
		Preload("Assignments.User").
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
