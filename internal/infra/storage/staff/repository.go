package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с мастерами и их квалификациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID вместе со списком его услуг
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := staffColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members, err := r.scanStaff(rows)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrStaffNotFound
	}

	if err := r.loadServiceIDs(ctx, members); err != nil {
		return nil, err
	}

	return members[0], nil
}

// GetSchedulable получает всех мастеров, участвующих в расчете доступности
// (активных и открытых для записи), вместе с их квалификациями
func (r *Repository) GetSchedulable(ctx context.Context) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := staffColumns().
		Where(squirrel.Eq{"status": domain.StaffActive}).
		Where(squirrel.Eq{"is_bookable": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedulable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSchedulable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members, err := r.scanStaff(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadServiceIDs(ctx, members); err != nil {
		return nil, err
	}

	return members, nil
}

// staffColumns базовый SELECT со всеми колонками мастера
func staffColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"name",
		"status",
		"is_bookable",
	).From("staff")
}

// scanStaff сканирует результаты запроса в слайс мастеров
func (r *Repository) scanStaff(rows *sql.Rows) ([]*domain.Staff, error) {
	members := make([]*domain.Staff, 0)

	for rows.Next() {
		var member domain.Staff

		err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Status,
			&member.IsBookable,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanStaff - scan row: %v", ErrScanRow, err)
		}

		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanStaff - rows error: %v", ErrScanRow, err)
	}

	return members, nil
}

// loadServiceIDs заполняет квалификации мастеров из staff_services
func (r *Repository) loadServiceIDs(ctx context.Context, members []*domain.Staff) error {
	if len(members) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, 0, len(members))
	byID := make(map[int64]*domain.Staff, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
		byID[m.ID] = m
	}

	query, args, err := psqlbuilder.Select(
		"staff_id",
		"service_id",
	).
		From("staff_services").
		Where(squirrel.Eq{"staff_id": ids}).
		OrderBy("staff_id ASC, service_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServiceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var staffID, serviceID int64
		if err := rows.Scan(&staffID, &serviceID); err != nil {
			return fmt.Errorf("%w: loadServiceIDs - scan row: %v", ErrScanRow, err)
		}
		if member, ok := byID[staffID]; ok {
			member.ServiceIDs = append(member.ServiceIDs, serviceID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServiceIDs - rows error: %v", ErrScanRow, err)
	}

	return nil
}
