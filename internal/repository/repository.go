package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oapi-codegen/nullable"
)

// ErrNotFound is returned when a statement addressed by id matched no row.
var ErrNotFound = errors.New("record not found")

// updateSet accumulates the SET clause of a partial UPDATE.
type updateSet struct {
	cols []string
	args pgx.NamedArgs
}

func newUpdateSet(id int64) *updateSet {
	return &updateSet{args: pgx.NamedArgs{"id": id}}
}

func (u *updateSet) set(col string, v any) {
	u.cols = append(u.cols, fmt.Sprintf("%s = @%s", col, col))
	u.args[col] = v
}

// sql renders the UPDATE statement. With nothing to set it still touches the
// row so the affected count says whether the id exists.
func (u *updateSet) sql(table string) string {
	set := "id = id"
	if len(u.cols) > 0 {
		set = strings.Join(u.cols, ", ")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = @id", table, set)
}

func toNumeric(f float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(strconv.FormatFloat(f, 'f', -1, 64)); err != nil {
		return n, fmt.Errorf("scan numeric: %w", err)
	}
	return n, nil
}

func fromNumeric(n pgtype.Numeric) (float64, error) {
	f, err := n.Float64Value()
	if err != nil {
		return 0, fmt.Errorf("convert numeric to float64: %w", err)
	}
	return f.Float64, nil
}

// nullableArg turns a specified field into a statement argument, nil for null.
func nullableArg[T any](f nullable.Nullable[T]) *T {
	v, err := f.Get()
	if err != nil {
		return nil
	}
	return &v
}

func int8Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func textPtr(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func collectIDs[T any](items []T, id func(T) int64) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, id(it))
	}
	return ids
}
