package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/khushi71103/travelpin/config"
	"github.com/khushi71103/travelpin/internal/interfaces"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

const (
	// DefaultMaxOpenConns is the default maximum number of open connections.
	DefaultMaxOpenConns = 10
	// DefaultMaxIdleConns is the default maximum number of idle connections.
	DefaultMaxIdleConns = 5
	// DefaultConnMaxLifetime is the default maximum lifetime of a connection.
	DefaultConnMaxLifetime = 30 * time.Second
)

// PostgresDatabaseClient implements the DBClient interface for PostgreSQL.
// Queries are built dynamically from map documents; table and column names
// are checked against configured allow-lists before entering any statement.
type PostgresDatabaseClient struct {
	db              *sql.DB
	logger          interfaces.Logger
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	validTables     map[string]bool
	validColumns    map[string]bool
}

// NewPostgresDatabaseClient returns a DBClient backed by database/sql + pq.
func NewPostgresDatabaseClient(dbConfig *config.PostgresConfig, logger interfaces.Logger) interfaces.DBClient {
	maxOpen := dbConfig.Options.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpenConns
	}
	maxIdle := dbConfig.Options.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdleConns
	}
	lifetime := dbConfig.Options.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = DefaultConnMaxLifetime
	}

	return &PostgresDatabaseClient{
		logger:          logger,
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		ConnMaxLifetime: lifetime,
		validTables:     config.ListToMap(dbConfig.ValidTables),
		validColumns:    config.ListToMap(dbConfig.ValidFields),
	}
}

// Connect establishes a connection to a PostgreSQL database.
func (p *PostgresDatabaseClient) Connect(ctx context.Context, dsn string) error {
	var err error
	p.db, err = sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL database: %w", err)
	}

	p.db.SetMaxOpenConns(p.MaxOpenConns)
	p.db.SetMaxIdleConns(p.MaxIdleConns)
	p.db.SetConnMaxLifetime(p.ConnMaxLifetime)

	return p.Ping(ctx)
}

// Disconnect closes the PostgreSQL database connection.
func (p *PostgresDatabaseClient) Disconnect(ctx context.Context) error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// InsertOne inserts a single document into a PostgreSQL table. The document
// must be a map[string]interface{}; a uuid id is generated when the caller
// does not supply one.
func (p *PostgresDatabaseClient) InsertOne(ctx context.Context, tableName string, document interfaces.Document) (interface{}, error) {
	docMap, err := p.checkedDocument(tableName, document)
	if err != nil {
		return nil, err
	}

	if _, exists := docMap["id"]; !exists {
		docMap["id"] = uuid.New().String()
	}

	cols := sortedColumns(docMap)
	columns := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	values := make([]interface{}, 0, len(cols))

	for i, col := range cols {
		columns = append(columns, quoteIdent(col))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		values = append(values, docMap[col])
	}

	// Table and column names passed the allow-list check above.
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		quoteIdent(tableName),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	) // #nosec G201

	var insertedID string
	if err := p.db.QueryRowContext(ctx, query, values...).Scan(&insertedID); err != nil {
		return nil, err
	}
	return insertedID, nil
}

// FindOne retrieves a single row matching the filter and scans it into the
// result map. Returns sql.ErrNoRows unwrapped so repositories can map it to
// a not-found.
func (p *PostgresDatabaseClient) FindOne(ctx context.Context, tableName string, filter interfaces.Document, result interfaces.Document) error {
	filterMap, err := p.checkedDocument(tableName, filter)
	if err != nil {
		return err
	}
	if len(filterMap) == 0 {
		return fmt.Errorf("PostgreSQL FindOne requires a non-empty filter")
	}
	resultMap, ok := result.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("PostgreSQL FindOne expects result to be *map[string]interface{}")
	}

	whereString, whereValues := buildWhere(filterMap, 1)

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s LIMIT 1", quoteIdent(tableName), whereString) // #nosec G201

	rows, err := p.db.QueryContext(ctx, query, whereValues...)
	if err != nil {
		return err
	}
	defer p.closeRows(rows)

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}

	rowMap, err := scanRowToMap(rows)
	if err != nil {
		return err
	}
	*resultMap = rowMap

	return rows.Err()
}

// FindMany retrieves all rows matching the filter as a slice of maps.
func (p *PostgresDatabaseClient) FindMany(ctx context.Context, tableName string, filter interfaces.Document) ([]interfaces.Document, error) {
	filterMap, err := p.checkedDocument(tableName, filter)
	if err != nil {
		return nil, err
	}

	whereString := ""
	var whereValues []interface{}
	if len(filterMap) > 0 {
		var clause string
		clause, whereValues = buildWhere(filterMap, 1)
		whereString = " WHERE " + clause
	}

	query := fmt.Sprintf("SELECT * FROM %s%s", quoteIdent(tableName), whereString) // #nosec G201

	rows, err := p.db.QueryContext(ctx, query, whereValues...)
	if err != nil {
		return nil, err
	}
	defer p.closeRows(rows)

	var results []interfaces.Document
	for rows.Next() {
		rowMap, err := scanRowToMap(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, rowMap)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateOne updates rows matching the filter with the given values.
func (p *PostgresDatabaseClient) UpdateOne(ctx context.Context, tableName string, filter interfaces.Document, update interfaces.Document) (int64, error) {
	filterMap, err := p.checkedDocument(tableName, filter)
	if err != nil {
		return 0, err
	}
	updateMap, err := p.checkedDocument(tableName, update)
	if err != nil {
		return 0, err
	}

	setClauses := make([]string, 0, len(updateMap))
	values := make([]interface{}, 0, len(updateMap)+len(filterMap))
	paramCount := 1

	for _, col := range sortedColumns(updateMap) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", quoteIdent(col), paramCount))
		values = append(values, updateMap[col])
		paramCount++
	}

	whereString, whereValues := buildWhere(filterMap, paramCount)
	values = append(values, whereValues...)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		quoteIdent(tableName),
		strings.Join(setClauses, ", "),
		whereString,
	) // #nosec G201

	res, err := p.db.ExecContext(ctx, query, values...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteOne deletes rows matching the filter. PostgreSQL has no LIMIT on
// DELETE, so this deletes every match; repositories filter by unique keys.
func (p *PostgresDatabaseClient) DeleteOne(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	return p.DeleteMany(ctx, tableName, filter)
}

// DeleteMany deletes all rows matching the filter.
func (p *PostgresDatabaseClient) DeleteMany(ctx context.Context, tableName string, filter interfaces.Document) (int64, error) {
	filterMap, err := p.checkedDocument(tableName, filter)
	if err != nil {
		return 0, err
	}

	whereString := ""
	var whereValues []interface{}
	if len(filterMap) > 0 {
		var clause string
		clause, whereValues = buildWhere(filterMap, 1)
		whereString = " WHERE " + clause
	}

	query := fmt.Sprintf("DELETE FROM %s%s", quoteIdent(tableName), whereString) // #nosec G201

	res, err := p.db.ExecContext(ctx, query, whereValues...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EnsureSchema executes a CREATE TABLE statement for the given table.
func (p *PostgresDatabaseClient) EnsureSchema(ctx context.Context, tableName string, schema interfaces.Document) error {
	if p.db == nil {
		return fmt.Errorf("PostgresDatabaseClient is not connected to a database")
	}
	if !p.validTables[tableName] {
		return fmt.Errorf("PostgresDatabaseClient: invalid table name: %s", tableName)
	}

	createStmt, ok := schema.(string)
	if !ok {
		return fmt.Errorf("EnsureSchema expects schema to be a CREATE TABLE statement string")
	}
	_, err := p.db.ExecContext(ctx, createStmt)
	return err
}

// Ping checks the health of the PostgreSQL connection.
func (p *PostgresDatabaseClient) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// checkedDocument asserts the document is a map and that the table and every
// column name pass the allow-lists.
func (p *PostgresDatabaseClient) checkedDocument(tableName string, document interfaces.Document) (map[string]interface{}, error) {
	if !p.validTables[tableName] {
		return nil, fmt.Errorf("PostgresDatabaseClient: invalid table name: %s", tableName)
	}
	docMap, ok := document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("PostgresDatabaseClient: document must be a map[string]interface{}")
	}
	for col := range docMap {
		if !p.validColumns[col] {
			return nil, fmt.Errorf("PostgresDatabaseClient: invalid column name: %s", col)
		}
	}
	return docMap, nil
}

func (p *PostgresDatabaseClient) closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		p.logger.Warn("Failed to close rows", "error", err)
	}
}

// quoteIdent wraps an allow-listed identifier in double quotes so reserved
// words such as "desc" survive statement construction.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// sortedColumns returns the map's keys in a fixed order so generated
// statements are deterministic.
func sortedColumns(m map[string]interface{}) []string {
	cols := make([]string, 0, len(m))
	for col := range m {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// buildWhere renders `"col" = $n AND ...` starting at the given parameter
// index and returns the clause with its values in matching order.
func buildWhere(filterMap map[string]interface{}, start int) (string, []interface{}) {
	clauses := make([]string, 0, len(filterMap))
	values := make([]interface{}, 0, len(filterMap))
	for _, col := range sortedColumns(filterMap) {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", quoteIdent(col), start))
		values = append(values, filterMap[col])
		start++
	}
	return strings.Join(clauses, " AND "), values
}

// scanRowToMap scans the current row into a column-keyed map, converting
// byte slices to strings.
func scanRowToMap(rows *sql.Rows) (map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	columnPointers := make([]interface{}, len(columns))
	columnValues := make([]interface{}, len(columns))
	for i := range columns {
		columnPointers[i] = &columnValues[i]
	}

	if err := rows.Scan(columnPointers...); err != nil {
		return nil, err
	}

	rowMap := make(map[string]interface{}, len(columns))
	for i, colName := range columns {
		if b, ok := columnValues[i].([]byte); ok {
			rowMap[colName] = string(b)
		} else {
			rowMap[colName] = columnValues[i]
		}
	}
	return rowMap, nil
}
