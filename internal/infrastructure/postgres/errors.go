package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Bodegas-api/internal/domain"
)

// Códigos SQLSTATE que el motor traduce a errores de dominio.
const (
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
)

// classify envuelve err con la operación y lo traduce a un Kind de dominio cuando aplica:
// lock_timeout -> ErrBusy; serialización/deadlock/duplicado -> ErrConflict; CHECK -> ErrCapacityInconsistent.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch pgErr.Code {
	case codeLockNotAvailable:
		return domain.Errorf(domain.ErrBusy, "%s: resource is locked by another operation", op)
	case codeSerializationFailure, codeDeadlockDetected:
		return domain.Errorf(domain.ErrConflict, "%s: concurrent modification, retry", op)
	case codeUniqueViolation:
		return domain.Errorf(domain.ErrConflict, "%s: already exists (%s)", op, pgErr.ConstraintName)
	case codeCheckViolation:
		return domain.Errorf(domain.ErrCapacityInconsistent, "%s: constraint %s violated", op, pgErr.ConstraintName)
	}
	return fmt.Errorf("%s: %w", op, err)
}
