package errors

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorDump flattens an error chain into log fields.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`
	Retryable  bool   `json:"retryable,omitempty"`
	Details    any    `json:"details,omitempty"`

	Chain []string `json:"chain,omitempty"`
	Cause string   `json:"cause,omitempty"`

	// Store fields are set when a SQL backend produced the error.
	StoreDriver     string `json:"store_driver,omitempty"`
	StoreCode       string `json:"store_code,omitempty"`
	StoreConstraint string `json:"store_constraint,omitempty"`
	StoreTable      string `json:"store_table,omitempty"`
	StoreDetail     string `json:"store_detail,omitempty"`
	StoreMessage    string `json:"store_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{TopMessage: err.Error()}
	if te := As(err); te != nil {
		d.Code = te.Code()
		d.Retryable = MetadataFor(te.Code()).Retryable
		d.Details = te.Details()
	}

	root := err
	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
		root = e
	}
	if root != err {
		d.Cause = root.Error()
	}

	dumpStoreError(err, &d)
	return d
}

func dumpStoreError(err error, d *ErrorDump) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.StoreDriver = "pgx"
		d.StoreCode = pgxErr.Code
		d.StoreConstraint = pgxErr.ConstraintName
		d.StoreTable = pgxErr.TableName
		d.StoreDetail = pgxErr.Detail
		d.StoreMessage = pgxErr.Message
		return
	}

	// Migrations run over lib/pq.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.StoreDriver = "pq"
		d.StoreCode = string(pqErr.Code)
		d.StoreConstraint = pqErr.Constraint
		d.StoreTable = pqErr.Table
		d.StoreDetail = pqErr.Detail
		d.StoreMessage = pqErr.Message
		return
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.StoreDriver = "sqlite3"
		d.StoreCode = strconv.Itoa(int(liteErr.ExtendedCode))
		d.StoreMessage = liteErr.Code.Error()
		d.StoreDetail = liteErr.Error()
	}
}
