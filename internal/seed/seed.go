package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/campusadmin/api/internal/app/models"
	appRepos "github.com/campusadmin/api/internal/app/repositories"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

const (
	defaultAdminEmail    = "admin@campus.edu"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates a couple of default departments and the
// superuser account if they don't exist yet. Individual failures are
// collected and returned together so one bad record does not stop the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Departments/Superuser)...")
	var finalErr error

	defaultDepartments := []*appModels.Department{
		{Name: "Computer Science", Code: "CS"},
		{Name: "Mathematics", Code: "MATH"},
	}
	for _, dept := range defaultDepartments {
		if err := departmentRepo.Create(ctx, dept); err != nil && !errors.Is(err, apperrors.ErrDepartmentAlreadyExists) {
			lgr.Error().Err(err).Str("code", dept.Code).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	exists, err := userRepo.ExistsByEmail(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if superuser exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Superuser already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Msg("Creating default superuser...")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing superuser password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  string(hashedPassword),
		FirstName: "System",
		LastName:  "Administrator",
		Role:      appModels.RoleSuperuser,
		IsActive:  true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating superuser")
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Int64("adminID", admin.ID).Msg("Default superuser created successfully")
	}

	return finalErr
}
