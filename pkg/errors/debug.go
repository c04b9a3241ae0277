package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is a log-friendly snapshot of an error chain.
type ErrorDump struct {
	TopMessage string       `json:"top_message"`
	Code       Code         `json:"code,omitempty"`
	Chain      []string     `json:"chain,omitempty"`
	Postgres   *PostgresErr `json:"postgres,omitempty"`
}

// PostgresErr carries the server-side diagnostics of a failed statement.
type PostgresErr struct {
	Code       string `json:"code"`
	Message    string `json:"message,omitempty"`
	Detail     string `json:"detail,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

// Fields flattens the diagnostics for structured logging.
func (p *PostgresErr) Fields() map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"pg_code":       p.Code,
		"pg_message":    p.Message,
		"pg_detail":     p.Detail,
		"pg_table":      p.Table,
		"pg_column":     p.Column,
		"pg_constraint": p.Constraint,
	}
}

// Dump walks err and collects its chain plus any typed or driver details.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}
	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}
	d.Postgres = postgresDetails(err)
	return d
}

// gorm's postgres driver surfaces pgconn errors; pq shows up when goose or
// database/sql talk to the server directly.
func postgresDetails(err error) *PostgresErr {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return &PostgresErr{
			Code:       pgxErr.Code,
			Message:    pgxErr.Message,
			Detail:     pgxErr.Detail,
			Table:      pgxErr.TableName,
			Column:     pgxErr.ColumnName,
			Constraint: pgxErr.ConstraintName,
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return &PostgresErr{
			Code:       string(pqErr.Code),
			Message:    pqErr.Message,
			Detail:     pqErr.Detail,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
			Constraint: pqErr.Constraint,
		}
	}
	return nil
}
