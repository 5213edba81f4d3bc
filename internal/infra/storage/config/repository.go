package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Repository репозиторий для работы с конфигурацией расписания салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает конфигурацию расписания вместе с рабочими часами по дням недели.
// Конфигурация у салона одна, берем последнюю по id.
func (r *Repository) Get(ctx context.Context) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slot_step_minutes",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("schedule_config").
		OrderBy("id DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&config.SlotStepMinutes,
		&config.MinBookingNoticeMinutes,
		&config.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	if err := r.loadWorkingHours(ctx, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Update обновляет числовые параметры конфигурации расписания
func (r *Repository) Update(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_config").
		Set("slot_step_minutes", config.SlotStepMinutes).
		Set("min_booking_notice_minutes", config.MinBookingNoticeMinutes).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// loadWorkingHours заполняет расписание по дням недели.
// day_of_week хранится как 0-6 (воскресенье = 0), совпадает с time.Weekday.
func (r *Repository) loadWorkingHours(ctx context.Context, config *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
	).
		From("working_hours").
		Where(squirrel.Eq{"schedule_config_id": config.ID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dayOfWeek           int
			day                 domain.DaySchedule
			openTime, closeTime types.TimeString
		)

		if err := rows.Scan(&dayOfWeek, &day.IsOpen, &openTime, &closeTime); err != nil {
			return fmt.Errorf("%w: loadWorkingHours - scan row: %v", ErrScanRow, err)
		}

		if dayOfWeek < 0 || dayOfWeek > 6 {
			return fmt.Errorf("%w: loadWorkingHours - day_of_week out of range: %d", ErrScanRow, dayOfWeek)
		}

		// open_time/close_time могут быть NULL для выходных дней
		if !openTime.IsZero() {
			day.OpenTime = &openTime
		}
		if !closeTime.IsZero() {
			day.CloseTime = &closeTime
		}

		config.Week[dayOfWeek] = day
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return nil
}
