package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"
)

type workerRepository struct {
	db DBTX
}

func NewWorkerRepository(db DBTX) repository.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `id, first_name, last_name, email, phone, address, work_start, work_end, working_days, job_title, rental_info_id`

func (r *workerRepository) Create(ctx context.Context, w *domain.Worker) error {
	query := `INSERT INTO workers (first_name, last_name, email, phone, address, work_start, work_end, working_days, job_title, rental_info_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		w.FirstName, w.LastName, strings.ToLower(w.Email), w.Phone, w.Address,
		w.WorkStart, w.WorkEnd, w.WorkingDays, w.JobTitle, w.RentalInfoID).Scan(&w.ID)
}

func (r *workerRepository) GetByEmail(ctx context.Context, email string) (*domain.Worker, error) {
	w := &domain.Worker{}
	query := `SELECT ` + workerColumns + ` FROM workers WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))).Scan(
		&w.ID, &w.FirstName, &w.LastName, &w.Email, &w.Phone, &w.Address,
		&w.WorkStart, &w.WorkEnd, &w.WorkingDays, &w.JobTitle, &w.RentalInfoID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *workerRepository) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *workerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workerColumns+` FROM workers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []domain.Worker
	for rows.Next() {
		var w domain.Worker
		if err := rows.Scan(&w.ID, &w.FirstName, &w.LastName, &w.Email, &w.Phone, &w.Address,
			&w.WorkStart, &w.WorkEnd, &w.WorkingDays, &w.JobTitle, &w.RentalInfoID); err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

type rentalInfoRepository struct {
	db DBTX
}

func NewRentalInfoRepository(db DBTX) repository.RentalInfoRepository {
	return &rentalInfoRepository{db: db}
}

func (r *rentalInfoRepository) First(ctx context.Context) (*domain.RentalInfo, error) {
	ri := &domain.RentalInfo{}
	query := `SELECT id, open_hour, close_hour, address, phone, open_days, email
	          FROM rental_info ORDER BY id LIMIT 1`
	err := r.db.QueryRowContext(ctx, query).Scan(
		&ri.ID, &ri.OpenHour, &ri.CloseHour, &ri.Address, &ri.Phone, &ri.OpenDays, &ri.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ri, nil
}
