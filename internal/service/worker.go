package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type workerService struct {
	repos repository.Repositories
	tx    repository.TxRunner
}

func NewWorkerService(repos repository.Repositories, tx repository.TxRunner) WorkerService {
	return &workerService{repos: repos, tx: tx}
}

// Register creates the staff record together with its login user, both or
// neither. The worker is attached to the rental location when one exists.
func (s *workerService) Register(ctx context.Context, input WorkerInput) (*domain.Worker, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, Validationf("email is required")
	}
	if len(input.Password) < 8 {
		return nil, Validationf("password must be at least 8 characters")
	}
	if _, err := s.repos.Workers.GetByEmail(ctx, email); err == nil {
		return nil, Validationf("worker %s already exists", email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var rentalInfoID int32
	if info, err := s.repos.RentalInfo.First(ctx); err == nil {
		rentalInfoID = info.ID
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	worker := &domain.Worker{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		Phone:        input.Phone,
		Address:      input.Address,
		WorkStart:    input.WorkStart,
		WorkEnd:      input.WorkEnd,
		WorkingDays:  input.WorkingDays,
		JobTitle:     input.JobTitle,
		RentalInfoID: rentalInfoID,
	}

	err = s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		user := &domain.User{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        email,
			Phone:        input.Phone,
			PasswordHash: string(hash),
			Role:         domain.RoleWorker,
		}
		if rentalInfoID != 0 {
			user.RentalInfoID = &rentalInfoID
		}
		if err := r.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("create worker user: %w", err)
		}
		if err := r.Workers.Create(ctx, worker); err != nil {
			return fmt.Errorf("create worker: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return worker, nil
}

// Delete removes the staff record and, when present, the matching login user.
func (s *workerService) Delete(ctx context.Context, email string) error {
	return s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Workers.DeleteByEmail(ctx, email); err != nil {
			return asNotFound(err)
		}
		user, err := r.Users.GetByEmail(ctx, email)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return r.Users.Delete(ctx, user.ID)
	})
}

func (s *workerService) List(ctx context.Context) ([]domain.Worker, error) {
	return s.repos.Workers.List(ctx)
}

type rentalInfoService struct {
	repos repository.Repositories
}

func NewRentalInfoService(repos repository.Repositories) RentalInfoService {
	return &rentalInfoService{repos: repos}
}

func (s *rentalInfoService) Get(ctx context.Context) (*domain.RentalInfo, error) {
	info, err := s.repos.RentalInfo.First(ctx)
	if err != nil {
		return nil, asNotFound(err)
	}
	return info, nil
}
