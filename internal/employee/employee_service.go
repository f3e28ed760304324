package employee

import (
	"context"

	employeeerrors "github.com/5niurb/timetracker/internal/employee/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	wage, err := parseWage(req.HourlyWage)
	if err != nil {
		return EmployeeResponse{}, err
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return EmployeeResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}
	payType := req.PayType
	if payType == "" {
		payType = PayTypeHourly
	}

	emp := &Employee{
		ID:         uuid.New(),
		FullName:   req.FullName,
		Email:      req.Email,
		PinHash:    string(pinHash),
		Role:       role,
		HourlyWage: wage,
		PayType:    payType,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	res := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		res[i] = mapToResponse(emp)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	wage, err := parseWage(req.HourlyWage)
	if err != nil {
		return EmployeeResponse{}, err
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	emp.FullName = req.FullName
	emp.Email = req.Email
	emp.Role = req.Role
	emp.HourlyWage = wage
	emp.PayType = req.PayType

	if req.Pin != nil && *req.Pin != "" {
		pinHash, err := bcrypt.GenerateFromPassword([]byte(*req.Pin), bcrypt.DefaultCost)
		if err != nil {
			return EmployeeResponse{}, err
		}
		emp.PinHash = string(pinHash)
	}

	if err := s.repo.Update(ctx, emp); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func parseWage(v string) (decimal.Decimal, error) {
	wage, err := decimal.NewFromString(v)
	if err != nil || wage.IsNegative() {
		return decimal.Zero, employeeerrors.ErrInvalidWage
	}
	return wage, nil
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         emp.ID.String(),
		FullName:   emp.FullName,
		Email:      emp.Email,
		Role:       emp.Role,
		HourlyWage: emp.HourlyWage.String(),
		PayType:    emp.PayType,
	}
}
