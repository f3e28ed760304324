package auth_test

import (
	"context"
	"testing"

	"github.com/5niurb/timetracker/internal/auth"
	autherrors "github.com/5niurb/timetracker/internal/auth/errors"
	"github.com/5niurb/timetracker/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	findByIDFn    func(ctx context.Context, id string) (*employee.Employee, error)
	findByEmailFn func(ctx context.Context, email string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

func testEmployee(t *testing.T, pin string) *employee.Employee {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	assert.NoError(t, err)
	return &employee.Employee{
		ID:       uuid.New(),
		FullName: "Maria Lopez",
		Email:    "maria@example.com",
		PinHash:  string(hash),
		Role:     employee.RoleManager,
		PayType:  employee.PayTypeHourly,
	}
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	return claims
}

func TestAuthService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	emp := testEmployee(t, "4321")

	repo := &fakeEmployeeRepository{
		findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			assert.Equal(t, "maria@example.com", email)
			return emp, nil
		},
	}
	svc := auth.NewService(repo)

	access, refresh, resp, err := svc.Login(ctx, "maria@example.com", "4321")

	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, emp.ID.String(), resp.EmployeeID)
	assert.Equal(t, employee.RoleManager, resp.Role)

	claims := parseClaims(t, access)
	assert.Equal(t, emp.ID.String(), claims["employee_id"])
	assert.Equal(t, employee.RoleManager, claims["role"])
}

func TestAuthService_Login_Rejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	emp := testEmployee(t, "4321")

	t.Run("wrong pin", func(t *testing.T) {
		repo := &fakeEmployeeRepository{
			findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
				return emp, nil
			},
		}
		svc := auth.NewService(repo)

		_, _, _, err := svc.Login(ctx, "maria@example.com", "0000")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeEmployeeRepository{})

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "4321")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()
	emp := testEmployee(t, "4321")

	repo := &fakeEmployeeRepository{
		findByEmailFn: func(ctx context.Context, email string) (*employee.Employee, error) {
			return emp, nil
		},
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			assert.Equal(t, emp.ID.String(), id)
			return emp, nil
		},
	}
	svc := auth.NewService(repo)

	_, refresh, _, err := svc.Login(ctx, "maria@example.com", "4321")
	assert.NoError(t, err)

	access, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, emp.ID.String(), resp.EmployeeID)

	_, _, _, err = svc.RefreshToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()
	emp := testEmployee(t, "4321")

	repo := &fakeEmployeeRepository{
		findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
			return emp, nil
		},
	}
	svc := auth.NewService(repo)

	resp, err := svc.GetMe(ctx, emp.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Maria Lopez", resp.FullName)
	assert.Equal(t, employee.PayTypeHourly, resp.PayType)

	svc = auth.NewService(&fakeEmployeeRepository{})
	_, err = svc.GetMe(ctx, uuid.New().String())
	assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
}
