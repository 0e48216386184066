package contract

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	contracterrors "github.com/Vietanh2703/BASMS-BE-sub001/internal/contract/errors"
	"github.com/Vietanh2703/BASMS-BE-sub001/internal/shared/apperror"
)

// MapRepositoryError translates driver-level failures into domain errors.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_contract_number" {
			return contracterrors.ErrContractNumberExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_contract_number") {
		return contracterrors.ErrContractNumberExists
	}

	return err
}
