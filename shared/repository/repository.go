// Package repository is the generic sqlx table gateway every domain repository embeds.
//
// Columns come from struct tags on T:
//
//	db:"name"      column (and named parameter) name
//	table:"other"  column belongs to a joined table; it is selected but never inserted
//	column:"src"   select other.src AS name
//
// A T with a GetJoinQuery method contributes its JOIN clause to every select.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/shared/constant"
	"atoll/shared/dto"
	"atoll/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type column struct {
	name  string
	table string
	alias string
}

// selectExpr renders the column for a SELECT list.
func (c column) selectExpr() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return fmt.Sprintf("%s.%s", c.table, c.name)
	}
}

type joiner interface {
	GetJoinQuery() string
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
	insertQuery   string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if j, ok := any(zero).(joiner); ok {
		join = j.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
		insertQuery:   buildInsert(tableName, insertColumns),
	}
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entitas+"."+op)
}

// fail records err on the scope and wraps it with the action and entity name.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, err)
}

func (repo *Repository[T]) exec(ctx context.Context, exec execer, op, action, query string, arg any) error {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

// query prepares a named statement and hands it to read. sql.ErrNoRows is passed through
// unwrapped so callers can treat it as "no match".
func (repo *Repository[T]) query(ctx context.Context, prep preparer, op, action, query string, read func(*sqlx.NamedStmt) error) error {
	ctx, scope := repo.span(ctx, op)
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := prep.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if err := read(stmt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, repo.db.Write, "Insert", "insert data", repo.insertQuery, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, sqltx, "InsertTx", "insert data", repo.insertQuery, model)
}

// InsertBulk writes every model in one multi-row INSERT. An empty slice is a no-op.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, repo.db.Write, "InsertBulk", "bulk insert data", repo.insertQuery, models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, sqltx, "InsertBulkTx", "bulk insert data", repo.insertQuery, models)
}

// Upsert inserts the model or, on a conflict over conflictColumns, overwrites every
// column except the key, the conflict columns and the creation metadata.
func (repo *Repository[T]) Upsert(ctx context.Context, model T, conflictColumns ...string) error {
	return repo.exec(ctx, repo.db.Write, "Upsert", "upsert data", repo.upsertQuery(conflictColumns), model)
}

func (repo *Repository[T]) UpsertTx(ctx context.Context, sqltx *sqlx.Tx, model T, conflictColumns ...string) error {
	return repo.exec(ctx, sqltx, "UpsertTx", "upsert data", repo.upsertQuery(conflictColumns), model)
}

func (repo *Repository[T]) exist(ctx context.Context, prep preparer, op string, filter dto.FilterGroup) (bool, error) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return false, errRequiredFilter
	}

	exist := false
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s)", repo.table, where)

	err := repo.query(ctx, prep, op, "check exist data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, "Exist", filter)
}

// ExistTx runs the existence check on the transaction so it sees rows written or locked by it.
func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, "ExistTx", filter)
}

func (repo *Repository[T]) get(ctx context.Context, prep preparer, op string, filter dto.FilterGroup, lock bool, columns ...string) (T, error) {
	var model T

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectClause(columns), repo.table, repo.join, where)
	if lock {
		query += " FOR UPDATE OF " + repo.table
	}

	err := repo.query(ctx, prep, op, "get data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// Get returns the zero value of T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, "Get", filter, false, columns...)
}

// GetForUpdateTx reads and row-locks the match until the transaction ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "GetForUpdateTx", filter, true, columns...)
}

func (repo *Repository[T]) getAll(ctx context.Context, prep preparer, op string, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	var models []T

	where, args := repo.BuildWhereClause(ctx, filter)

	query := strings.Join([]string{
		fmt.Sprintf("SELECT %s FROM %s %s %s", repo.selectClause(columns), repo.table, repo.join, where),
		repo.orderBy(params),
		paginate(params, args),
	}, " ")

	err := repo.query(ctx, prep, op, "get all data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, repo.db.Read, "GetAll", params, filter, columns...)
}

// GetAllTx lists on the transaction so rows it wrote are visible.
func (repo *Repository[T]) GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	return repo.getAll(ctx, sqltx, "GetAllTx", params, filter, columns...)
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	var count int

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	err := repo.query(ctx, repo.db.Read, "Count", "count data", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

func (repo *Repository[T]) delete(ctx context.Context, exec execer, op string, filter dto.FilterGroup) error {
	where, args := filter.GetWhereClause()
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, exec, op, "delete data", fmt.Sprintf("DELETE FROM %s WHERE %s", repo.table, where), args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	return repo.delete(ctx, repo.db.Write, "Delete", filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	return repo.delete(ctx, sqltx, "DeleteTx", filter)
}

func (repo *Repository[T]) update(ctx context.Context, exec execer, op string, mod map[string]any, filter dto.FilterGroup) error {
	where, args := filter.GetWhereClause()
	if where == "" {
		return errRequiredFilter
	}

	assignments := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, mod)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s", repo.table, strings.Join(assignments, ", "), where)

	return repo.exec(ctx, exec, op, "update data", query, args)
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, repo.db.Write, "Update", mod, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	return repo.update(ctx, sqltx, "UpdateTx", mod, filter)
}

func (repo *Repository[T]) BuildWhereClause(ctx context.Context, filter dto.FilterGroup) (string, map[string]any) {
	_, scope := repo.span(ctx, "BuildWhereClause")
	defer scope.End()

	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return "WHERE " + where, args
}

func (repo *Repository[T]) upsertQuery(conflictColumns []string) string {
	updates := []string{}

	for _, col := range repo.InsertColumns {
		if col == repo.primaryColumn || col == constant.FieldCreatedAt || col == constant.FieldCreatedBy || slices.Contains(conflictColumns, col) {
			continue
		}

		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	action := "DO NOTHING"
	if len(updates) > 0 {
		action = "DO UPDATE SET " + strings.Join(updates, ", ")
	}

	return fmt.Sprintf("%s ON CONFLICT (%s) %s", repo.insertQuery, strings.Join(conflictColumns, ", "), action)
}

// selectClause lists every mapped column, or only those named in only.
func (repo *Repository[T]) selectClause(only []string) string {
	exprs := []string{}

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		exprs = append(exprs, col.selectExpr())
	}

	return strings.Join(exprs, ", ")
}

// orderBy only lets through names of mapped columns; anything else is dropped.
func (repo *Repository[T]) orderBy(params dto.QueryParams) string {
	if params.SortBy == "" {
		return ""
	}

	dir := dto.SortDirAsc
	if params.SortDir == dto.SortDirDesc {
		dir = dto.SortDirDesc
	}

	for _, col := range repo.columns {
		switch {
		case col.alias == params.SortBy:
			return fmt.Sprintf("ORDER BY %s %s", col.alias, dir)
		case col.alias == "" && col.name == params.SortBy:
			return fmt.Sprintf("ORDER BY %s %s", col.selectExpr(), dir)
		}
	}

	return ""
}

func paginate(params dto.QueryParams, args map[string]any) string {
	if params.Limit <= 0 {
		return ""
	}

	args["limit"] = params.Limit

	if params.Page <= 0 {
		return "LIMIT :limit"
	}

	args["offset"] = (params.Page - 1) * params.Limit

	return "LIMIT :limit OFFSET :offset"
}

func buildInsert(table string, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)
		}

		name := field.Tag.Get("db")
		if name == "" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" || owner == table {
			owner = table
			insertColumns = append(insertColumns, name)
		}

		if source := field.Tag.Get("column"); source != "" {
			columns = append(columns, column{name: source, table: owner, alias: name})
		} else {
			columns = append(columns, column{name: name, table: owner})
		}
	}

	return columns, insertColumns
}
