package auth

import (
	"context"
	"os"
	"time"

	autherrors "github.com/5niurb/timetracker/internal/auth/errors"
	"github.com/5niurb/timetracker/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, email, pin string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, employeeID string) (*AuthResponse, error)
}

type service struct {
	employeeRepo employee.Repository
}

func NewService(employeeRepo employee.Repository) Service {
	return &service{employeeRepo: employeeRepo}
}

func (s *service) Login(ctx context.Context, email, pin string) (string, string, AuthResponse, error) {
	emp, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PinHash), []byte(pin)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := generateToken(emp.ID.String(), emp.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(emp.ID.String(), emp.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, mapToAuthResponse(*emp), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	// Re-read the employee so a role change invalidates old claims.
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	newAccessToken, err := generateToken(emp.ID.String(), emp.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := generateToken(emp.ID.String(), emp.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToAuthResponse(*emp), nil
}

func (s *service) GetMe(ctx context.Context, employeeID string) (*AuthResponse, error) {
	emp, err := s.employeeRepo.FindByID(ctx, employeeID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	resp := mapToAuthResponse(*emp)
	return &resp, nil
}

func generateToken(employeeID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"role":        role,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(emp employee.Employee) AuthResponse {
	return AuthResponse{
		EmployeeID: emp.ID.String(),
		FullName:   emp.FullName,
		Email:      emp.Email,
		Role:       emp.Role,
		PayType:    emp.PayType,
	}
}
