package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с каталогом услуг, категориями
// и правилами комбо-апсейла
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID вместе со составом комбо (если есть)
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	services, err := r.GetServicesByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return nil, ErrServiceNotFound
	}
	return services[0], nil
}

// GetServicesByIDs получает услуги по списку ID вместе со составом комбо.
// Отсутствующие ID не считаются ошибкой, вызывающая сторона сверяет длины.
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := serviceColumns().
		Where(squirrel.Eq{"id": ids}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAssociations(ctx, services); err != nil {
		return nil, err
	}

	return services, nil
}

// GetActiveServices получает все активные услуги каталога
func (r *Repository) GetActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := serviceColumns().
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services, err := r.scanServices(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadAssociations(ctx, services); err != nil {
		return nil, err
	}

	return services, nil
}

// GetCategoryByID получает категорию по ID
func (r *Repository) GetCategoryByID(ctx context.Context, id int64) (*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"requires_removal",
		"removal_service_id",
	).
		From("categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - build select query: %v", ErrBuildQuery, err)
	}

	var category domain.Category
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&category.ID,
		&category.Name,
		&category.RequiresRemoval,
		&category.RemovalServiceID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - scan category: %v", ErrScanRow, err)
	}

	return &category, nil
}

// GetIncompatibilities получает все направленные пары несовместимых категорий
func (r *Repository) GetIncompatibilities(ctx context.Context) ([]*domain.CategoryIncompatibility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"category_id",
		"incompatible_category_id",
	).
		From("category_incompatibilities").
		OrderBy("category_id ASC, incompatible_category_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetIncompatibilities - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIncompatibilities - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pairs := make([]*domain.CategoryIncompatibility, 0)
	for rows.Next() {
		var pair domain.CategoryIncompatibility
		if err := rows.Scan(&pair.CategoryID, &pair.IncompatibleCategoryID); err != nil {
			return nil, fmt.Errorf("%w: GetIncompatibilities - scan row: %v", ErrScanRow, err)
		}
		pairs = append(pairs, &pair)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetIncompatibilities - rows error: %v", ErrScanRow, err)
	}

	return pairs, nil
}

// GetComboEligibleRules получает активные правила комбо-апсейла.
// service_ids хранится как int[], читается через pq.Array.
func (r *Repository) GetComboEligibleRules(ctx context.Context) ([]*domain.ComboEligibleRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_ids",
		"extra_price",
		"suggested_combo_service_id",
		"is_active",
	).
		From("combo_eligible_rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetComboEligibleRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetComboEligibleRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.ComboEligibleRule, 0)
	for rows.Next() {
		var rule domain.ComboEligibleRule
		var serviceIDs pq.Int64Array

		err := rows.Scan(
			&rule.ID,
			&serviceIDs,
			&rule.ExtraPrice,
			&rule.SuggestedComboServiceID,
			&rule.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetComboEligibleRules - scan row: %v", ErrScanRow, err)
		}

		rule.ServiceIDs = []int64(serviceIDs)
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetComboEligibleRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// serviceColumns базовый SELECT со всеми колонками услуги
func serviceColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"buffer_minutes",
		"category_id",
		"price",
		"is_active",
	).From("services")
}

// scanServices сканирует результаты запроса в слайс услуг
func (r *Repository) scanServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)

	for rows.Next() {
		var service domain.Service

		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.BufferMinutes,
			&service.CategoryID,
			&service.Price,
			&service.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanServices - scan row: %v", ErrScanRow, err)
		}

		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// loadAssociations заполняет состав комбо-услуг из service_associations.
// position фиксирует канонический порядок элементов внутри комбо.
func (r *Repository) loadAssociations(ctx context.Context, services []*domain.Service) error {
	if len(services) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	ids := make([]int64, 0, len(services))
	byID := make(map[int64]*domain.Service, len(services))
	for _, s := range services {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}

	query, args, err := psqlbuilder.Select(
		"combo_service_id",
		"associated_service_id",
	).
		From("service_associations").
		Where(squirrel.Eq{"combo_service_id": ids}).
		OrderBy("combo_service_id ASC, position ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadAssociations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadAssociations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var comboID, associatedID int64
		if err := rows.Scan(&comboID, &associatedID); err != nil {
			return fmt.Errorf("%w: loadAssociations - scan row: %v", ErrScanRow, err)
		}
		if service, ok := byID[comboID]; ok {
			service.AssociatedServiceIDs = append(service.AssociatedServiceIDs, associatedID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadAssociations - rows error: %v", ErrScanRow, err)
	}

	return nil
}
