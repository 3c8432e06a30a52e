package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const (
	tableAppointments = "appointments"

	// pqUniqueViolation код ошибки PostgreSQL unique_violation
	pqUniqueViolation = "23505"
)

var appointmentColumns = []string{
	"id",
	"client_name",
	"client_email",
	"service",
	"date",
	"status",
	"created_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория
// loc - часовой пояс салона, в который переводятся все даты из БД
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// Create сохраняет новую запись
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникальности по date возвращается как ErrDuplicateDate
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableAppointments).
		Columns(
			"client_name",
			"client_email",
			"service",
			"date",
			"status",
		).
		Values(
			appt.ClientName,
			appt.ClientEmail,
			appt.Service,
			appt.Date,
			string(appt.Status),
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: date=%s", ErrDuplicateDate, appt.Date.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.Date = appt.Date.In(r.loc)

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByID", query, args)
}

// GetByExactDate получает запись, занимающую ровно этот слот
// Сравнение по равенству, без учета длительности услуги
func (r *Repository) GetByExactDate(ctx context.Context, date time.Time) (*domain.Appointment, error) {
	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.Eq{"date": date}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByExactDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetByExactDate", query, args)
}

// GetInRange получает все записи с date в диапазоне [start, end] включительно
// Результат отсортирован по date по возрастанию
func (r *Repository) GetInRange(ctx context.Context, start, end time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(tableAppointments).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// TransitionStatus переводит запись из статуса from в статус to
// Обновление условное: если статус уже изменён параллельным запросом, возвращает ErrStatusConflict
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableAppointments).
		Set("status", string(to)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(from)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TransitionStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: id=%d is no longer %s", ErrStatusConflict, id, from)
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, query string, args []interface{}) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var appt domain.Appointment
	var createdAt sql.NullTime

	err := executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.ClientName,
		&appt.ClientEmail,
		&appt.Service,
		&appt.Date,
		&appt.Status,
		&createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	appt.Date = appt.Date.In(r.loc)
	appt.CreatedAt = createdAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var createdAt sql.NullTime

		err := rows.Scan(
			&appt.ID,
			&appt.ClientName,
			&appt.ClientEmail,
			&appt.Service,
			&appt.Date,
			&appt.Status,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		appt.Date = appt.Date.In(r.loc)
		appt.CreatedAt = createdAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
