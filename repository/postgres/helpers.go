package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/fastygo/planner/domain"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

func pgDate(d domain.Date) pgtype.Date {
	if !d.Valid {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}

func fromPgDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.DateOf(d.Time)
}

func pgTime(c domain.Clock) pgtype.Time {
	if !c.Valid {
		return pgtype.Time{}
	}
	us := int64(c.Hour)*int64(time.Hour/time.Microsecond) +
		int64(c.Minute)*int64(time.Minute/time.Microsecond) +
		int64(c.Second)*int64(time.Second/time.Microsecond)
	return pgtype.Time{Microseconds: us, Valid: true}
}

func fromPgTime(t pgtype.Time) domain.Clock {
	if !t.Valid {
		return domain.Clock{}
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	return domain.NewClock(int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second))
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolation
}
