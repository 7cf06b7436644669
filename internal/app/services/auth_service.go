package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yit/registration/internal/app/models"
	"github.com/yit/registration/internal/app/models/dto"
	"github.com/yit/registration/internal/app/repositories"
	"github.com/yit/registration/internal/pkg/apperrors"
	"github.com/yit/registration/internal/pkg/auth"
	"github.com/yit/registration/internal/pkg/validation"
)

// AuthService handles account creation and login for both roles.
type AuthService struct {
	studentRepo *repositories.StudentRepository
	facultyRepo *repositories.FacultyRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	studentRepo *repositories.StudentRepository,
	facultyRepo *repositories.FacultyRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		facultyRepo: facultyRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// RegisterStudent creates a student account and issues a token for it.
func (s *AuthService) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidStudentID(req.StudentID) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "studentId must look like STU2024001")
	}

	existing, err := s.studentRepo.FindByEmailOrStudentID(ctx, req.Email, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing student: %w", err)
	}
	if existing != nil {
		if existing.Email == req.Email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.ErrIdentifierExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student, err := s.studentRepo.Create(ctx, &models.Student{
		StudentID:         req.StudentID,
		Name:              req.Name,
		Email:             req.Email,
		Password:          hash,
		Department:        req.Department,
		Semester:          req.Semester,
		Phone:             req.Phone,
		RegisteredCourses: []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	token, err := s.jwtService.GenerateToken(student.ID, models.RoleStudent, student.StudentID)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("studentId", student.StudentID).Msg("Student account created")

	return &dto.AuthResponse{
		Token: token,
		User: dto.AuthUser{
			ID:        student.ID,
			StudentID: student.StudentID,
			Name:      student.Name,
			Email:     student.Email,
			Role:      string(models.RoleStudent),
		},
	}, nil
}

// RegisterFaculty creates a faculty account and issues a token for it.
func (s *AuthService) RegisterFaculty(ctx context.Context, req *dto.RegisterFacultyRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidFacultyID(req.FacultyID) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "facultyId must look like FAC2024001")
	}

	existing, err := s.facultyRepo.FindByEmailOrFacultyID(ctx, req.Email, req.FacultyID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing faculty: %w", err)
	}
	if existing != nil {
		if existing.Email == req.Email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.ErrIdentifierExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	faculty, err := s.facultyRepo.Create(ctx, &models.Faculty{
		FacultyID:   req.FacultyID,
		Name:        req.Name,
		Email:       req.Email,
		Password:    hash,
		Department:  req.Department,
		Designation: req.Designation,
		Phone:       req.Phone,
		Courses:     []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating faculty: %w", err)
	}

	token, err := s.jwtService.GenerateToken(faculty.ID, models.RoleFaculty, faculty.FacultyID)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("facultyId", faculty.FacultyID).Msg("Faculty account created")

	return &dto.AuthResponse{
		Token: token,
		User: dto.AuthUser{
			ID:        faculty.ID,
			FacultyID: faculty.FacultyID,
			Name:      faculty.Name,
			Email:     faculty.Email,
			Role:      string(models.RoleFaculty),
		},
	}, nil
}

// Login authenticates an email/password pair against the collection selected
// by role.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	role := models.Role(req.Role)

	switch role {
	case models.RoleStudent:
		student, err := s.studentRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("error looking up student: %w", err)
		}
		if student == nil || !auth.CheckPassword(student.Password, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(student.ID, role, student.StudentID)
		if err != nil {
			return nil, fmt.Errorf("error generating token: %w", err)
		}
		return &dto.AuthResponse{
			Token: token,
			User: dto.AuthUser{
				ID:        student.ID,
				StudentID: student.StudentID,
				Name:      student.Name,
				Email:     student.Email,
				Role:      req.Role,
			},
		}, nil

	case models.RoleFaculty:
		faculty, err := s.facultyRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("error looking up faculty: %w", err)
		}
		if faculty == nil || !auth.CheckPassword(faculty.Password, req.Password) {
			return nil, apperrors.ErrInvalidCredentials
		}
		token, err := s.jwtService.GenerateToken(faculty.ID, role, faculty.FacultyID)
		if err != nil {
			return nil, fmt.Errorf("error generating token: %w", err)
		}
		return &dto.AuthResponse{
			Token: token,
			User: dto.AuthUser{
				ID:        faculty.ID,
				FacultyID: faculty.FacultyID,
				Name:      faculty.Name,
				Email:     faculty.Email,
				Role:      req.Role,
			},
		}, nil

	default:
		return nil, apperrors.ErrInvalidRole
	}
}
