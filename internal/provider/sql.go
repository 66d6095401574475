package provider

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/alexanderramin/prodboard/internal/db"
)

// SQLProvider implements DataProvider on top of a SQL database. Every
// resource, filter field and sort field is checked against the catalog
// before it reaches a query string.
type SQLProvider struct {
	conn    db.DBTX
	driver  db.Driver
	catalog map[string]Resource
}

// NewSQLProvider creates a provider over conn using the default catalog.
func NewSQLProvider(conn db.DBTX, driver db.Driver) *SQLProvider {
	return &SQLProvider{conn: conn, driver: driver, catalog: DefaultCatalog()}
}

// WithCatalog replaces the resource catalog.
func (p *SQLProvider) WithCatalog(catalog map[string]Resource) *SQLProvider {
	p.catalog = catalog
	return p
}

func (p *SQLProvider) resource(name string) (Resource, error) {
	r, ok := p.catalog[name]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return r, nil
}

func (p *SQLProvider) Fetch(ctx context.Context, resource string, q Query) (Page, error) {
	res, err := p.resource(resource)
	if err != nil {
		return Page{}, err
	}
	if err := q.validate(); err != nil {
		return Page{}, fmt.Errorf("fetching %s: %w", resource, err)
	}

	where, args, err := p.whereClause(res, q.Filters)
	if err != nil {
		return Page{}, err
	}
	orderBy, err := orderByClause(res, q.Sort)
	if err != nil {
		return Page{}, err
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM ` + res.ReadFrom + where
	if err := p.conn.QueryRowContext(ctx, db.Rebind(p.driver, countQuery), args...).Scan(&total); err != nil {
		return Page{}, backendError(resource, "fetch", err)
	}

	size := q.pageSize()
	listQuery := `SELECT ` + strings.Join(res.Columns, ", ") + ` FROM ` + res.ReadFrom + where + orderBy + ` LIMIT ? OFFSET ?`
	listArgs := append(append([]any{}, args...), size, q.Pagination.Index*size)
	rows, err := p.conn.QueryContext(ctx, db.Rebind(p.driver, listQuery), listArgs...)
	if err != nil {
		return Page{}, backendError(resource, "fetch", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows, res.Columns)
	if err != nil {
		return Page{}, backendError(resource, "fetch", err)
	}
	return Page{Records: records, Total: total}, nil
}

func (p *SQLProvider) Update(ctx context.Context, resource string, id int64, fields map[string]any) error {
	res, err := p.resource(resource)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return fmt.Errorf("updating %s %d: no fields", resource, id)
	}

	cols, err := writableColumns(res, fields)
	if err != nil {
		return err
	}
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = c + " = ?"
		args = append(args, p.arg(fields[c]))
	}
	args = append(args, id)

	query := `UPDATE ` + res.WriteTo + ` SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := p.conn.ExecContext(ctx, db.Rebind(p.driver, query), args...)
	if err != nil {
		return backendError(resource, "update", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return backendError(resource, "update", err)
	}
	if n == 0 {
		return &BackendError{
			Resource: resource,
			Op:       "update",
			Message:  fmt.Sprintf("%s %d not found", resource, id),
			Err:      ErrNotFound,
		}
	}
	return nil
}

func (p *SQLProvider) Create(ctx context.Context, resource string, fields map[string]any) error {
	res, err := p.resource(resource)
	if err != nil {
		return err
	}
	cols, err := writableColumns(res, fields)
	if err != nil {
		return err
	}

	placeholders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		placeholders[i] = "?"
		args[i] = p.arg(fields[c])
	}
	query := `INSERT INTO ` + res.WriteTo + ` (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(placeholders, ", ") + `)`
	if _, err := p.conn.ExecContext(ctx, db.Rebind(p.driver, query), args...); err != nil {
		return backendError(resource, "create", err)
	}
	return nil
}

func (p *SQLProvider) whereClause(res Resource, filters []Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	var conds []string
	var args []any
	for _, f := range filters {
		if !res.hasColumn(f.Field) {
			return "", nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, res.Name, f.Field)
		}
		switch f.Op {
		case OpEq:
			if f.Value == nil {
				conds = append(conds, f.Field+" IS NULL")
				continue
			}
			conds = append(conds, f.Field+" = ?")
			args = append(args, p.arg(f.Value))
		case OpGte:
			conds = append(conds, f.Field+" >= ?")
			args = append(args, p.arg(f.Value))
		case OpLte:
			conds = append(conds, f.Field+" <= ?")
			args = append(args, p.arg(f.Value))
		case OpIn:
			vals, err := sliceValues(f.Value)
			if err != nil {
				return "", nil, fmt.Errorf("filter %s: %w", f.Field, err)
			}
			if len(vals) == 0 {
				conds = append(conds, "1 = 0")
				continue
			}
			marks := make([]string, len(vals))
			for i, v := range vals {
				marks[i] = "?"
				args = append(args, p.arg(v))
			}
			conds = append(conds, f.Field+" IN ("+strings.Join(marks, ", ")+")")
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func orderByClause(res Resource, sorts []Sort) (string, error) {
	if len(sorts) == 0 {
		return "", nil
	}
	parts := make([]string, len(sorts))
	for i, s := range sorts {
		if !res.hasColumn(s.Field) {
			return "", fmt.Errorf("%w: %s.%s", ErrUnknownField, res.Name, s.Field)
		}
		parts[i] = s.Field + " " + strings.ToUpper(string(s.Dir))
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// writableColumns returns the field names sorted, rejecting any the resource
// does not allow writing.
func writableColumns(res Resource, fields map[string]any) ([]string, error) {
	cols := make([]string, 0, len(fields))
	for c := range fields {
		if !res.canWrite(c) {
			return nil, fmt.Errorf("%w: %s.%s is not writable", ErrUnknownField, res.Name, c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols, nil
}

// arg adapts a Go value to the driver. SQLite has no boolean type.
func (p *SQLProvider) arg(v any) any {
	if b, ok := v.(bool); ok && p.driver == db.DriverSQLite {
		if b {
			return 1
		}
		return 0
	}
	return v
}

func sliceValues(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("in operator needs a slice, got %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func scanRecords(rows *sql.Rows, columns []string) ([]Record, error) {
	var records []Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		rec := make(Record, len(columns))
		for i, c := range columns {
			if b, ok := values[i].([]byte); ok {
				rec[c] = string(b)
				continue
			}
			rec[c] = values[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
