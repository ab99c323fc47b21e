// ABOUTME: SQLite implementation of the credit Store using modernc.org/sqlite
// ABOUTME: Provides credit persistence with automatic schema creation

package credits

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path. The schema
// is automatically created if it doesn't exist. Parent directories are
// created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "credits-store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite credit store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS carbon_credits (
			id TEXT PRIMARY KEY,
			project_name TEXT NOT NULL,
			project_description TEXT,
			owner_id TEXT NOT NULL,
			acres REAL NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			geo_hash TEXT,
			forest_coverage REAL NOT NULL DEFAULT 0,
			confidence REAL NOT NULL DEFAULT 0,
			carbon_sequestration REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'pending',
			token_id TEXT,
			serial_number INTEGER,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_carbon_credits_owner
			ON carbon_credits(owner_id);

		CREATE INDEX IF NOT EXISTS idx_carbon_credits_status
			ON carbon_credits(status);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}
	return nil
}

// CreateCredit stores a new carbon credit.
func (s *SQLiteStore) CreateCredit(ctx context.Context, credit *CarbonCredit) error {
	query := `
		INSERT INTO carbon_credits (
			id, project_name, project_description, owner_id, acres,
			latitude, longitude, geo_hash, forest_coverage, confidence,
			carbon_sequestration, status, token_id, serial_number,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		credit.ID, credit.ProjectName, credit.ProjectDescription,
		credit.OwnerID, credit.Acres,
		credit.Location.Latitude, credit.Location.Longitude, credit.Location.GeoHash,
		credit.ForestCoverage, credit.Confidence, credit.CarbonSequestration,
		credit.Status, nullableString(credit.TokenID), credit.SerialNumber,
		credit.CreatedAt, credit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting credit: %w", err)
	}
	return nil
}

// GetCredit retrieves a credit by ID.
func (s *SQLiteStore) GetCredit(ctx context.Context, id string) (*CarbonCredit, error) {
	query := selectColumns + ` WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	credit, err := scanCredit(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying credit: %w", err)
	}
	return credit, nil
}

// ListCredits returns credits matching the filter, newest first.
func (s *SQLiteStore) ListCredits(ctx context.Context, filter Filter) ([]*CarbonCredit, error) {
	query := selectColumns + ` WHERE 1=1`
	var args []any

	if filter.OwnerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying credits: %w", err)
	}
	defer rows.Close()

	var credits []*CarbonCredit
	for rows.Next() {
		credit, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning credit: %w", err)
		}
		credits = append(credits, credit)
	}
	return credits, rows.Err()
}

// UpdateCredit replaces the mutable fields of an existing credit.
func (s *SQLiteStore) UpdateCredit(ctx context.Context, credit *CarbonCredit) error {
	query := `
		UPDATE carbon_credits SET
			project_name = ?, project_description = ?,
			forest_coverage = ?, confidence = ?, carbon_sequestration = ?,
			status = ?, token_id = ?, serial_number = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		credit.ProjectName, credit.ProjectDescription,
		credit.ForestCoverage, credit.Confidence, credit.CarbonSequestration,
		credit.Status, nullableString(credit.TokenID), credit.SerialNumber,
		credit.UpdatedAt, credit.ID,
	)
	if err != nil {
		return fmt.Errorf("updating credit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = `
	SELECT id, project_name, project_description, owner_id, acres,
		latitude, longitude, geo_hash, forest_coverage, confidence,
		carbon_sequestration, status, token_id, serial_number,
		created_at, updated_at
	FROM carbon_credits
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCredit(row scanner) (*CarbonCredit, error) {
	var credit CarbonCredit
	var description, geoHash, tokenID sql.NullString
	var serial sql.NullInt64
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&credit.ID, &credit.ProjectName, &description, &credit.OwnerID, &credit.Acres,
		&credit.Location.Latitude, &credit.Location.Longitude, &geoHash,
		&credit.ForestCoverage, &credit.Confidence, &credit.CarbonSequestration,
		&credit.Status, &tokenID, &serial, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	credit.ProjectDescription = description.String
	credit.Location.GeoHash = geoHash.String
	credit.TokenID = tokenID.String
	if serial.Valid {
		credit.SerialNumber = &serial.Int64
	}
	credit.CreatedAt = createdAt
	credit.UpdatedAt = updatedAt
	return &credit, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
