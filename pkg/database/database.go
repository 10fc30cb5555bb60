package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hobbydesk/paintctl/pkg/catalog"
)

// DB is the global database connection
var DB *sql.DB

// Models

type Run struct {
	ID          int64     `json:"id"`
	Source      string    `json:"source"` // path of the indexed combined file
	RecordCount int       `json:"record_count"`
	IndexedAt   time.Time `json:"indexed_at"`
}

type Paint struct {
	ID        int64     `json:"id"`
	RunID     int64     `json:"run_id"`
	PaintID   string    `json:"paint_id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Brand     string    `json:"brand,omitempty"`
	Range     string    `json:"range,omitempty"`
	Hex       string    `json:"hex,omitempty"`
	Data      string    `json:"data"` // full record JSON
	CreatedAt time.Time `json:"created_at"`
}

// BrandCount pairs a brand with its paint count within one run.
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// Initialize opens or creates the database
func Initialize(dbPath string) error {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create db directory: %w", err)
	}

	var err error
	DB, err = sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Create tables
	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

func createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		indexed_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS paints (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		paint_id TEXT,
		name TEXT,
		brand TEXT,
		range_name TEXT,
		hex TEXT,
		data TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_paints_run ON paints(run_id);
	CREATE INDEX IF NOT EXISTS idx_paints_brand ON paints(brand);
	CREATE INDEX IF NOT EXISTS idx_paints_paint_id ON paints(paint_id);
	`

	_, err := DB.Exec(schema)
	return err
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// Run operations

func CreateRun(source string, recordCount int) (*Run, error) {
	result, err := DB.Exec(
		`INSERT INTO runs (source, record_count) VALUES (?, ?)`,
		source, recordCount,
	)
	if err != nil {
		return nil, err
	}

	id, _ := result.LastInsertId()
	return &Run{
		ID:          id,
		Source:      source,
		RecordCount: recordCount,
		IndexedAt:   time.Now(),
	}, nil
}

func GetRun(runID int64) (*Run, error) {
	run := &Run{}
	err := DB.QueryRow(
		`SELECT id, source, record_count, indexed_at FROM runs WHERE id = ?`,
		runID,
	).Scan(&run.ID, &run.Source, &run.RecordCount, &run.IndexedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func GetRecentRuns(limit int) ([]Run, error) {
	rows, err := DB.Query(
		`SELECT id, source, record_count, indexed_at FROM runs ORDER BY indexed_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Source, &run.RecordCount, &run.IndexedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func GetLatestRun() (*Run, error) {
	runs, err := GetRecentRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, sql.ErrNoRows
	}
	return &runs[0], nil
}

// Paint operations

// AddPaints inserts all records of one run in a single transaction.
func AddPaints(runID int64, records []catalog.Record) error {
	tx, err := DB.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO paints (run_id, paint_id, name, brand, range_name, hex, data) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range records {
		paintID, _ := rec.Identifier()
		data, err := json.Marshal(rec)
		if err != nil {
			tx.Rollback()
			return err
		}
		_, err = stmt.Exec(runID, paintID, rec.Field("name"), brandOf(rec), rec.Field("range"), rec.Field("hex"), string(data))
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// brandOf reads the brand field, falling back to the id prefix used by
// the scrapers ("citadel-99189950001" -> "citadel").
func brandOf(rec catalog.Record) string {
	if b := rec.Field("brand"); b != "" {
		return b
	}
	if id, ok := rec.Identifier(); ok {
		if i := strings.Index(id, "-"); i > 0 {
			return id[:i]
		}
	}
	return ""
}

func GetPaints(runID int64) ([]Paint, error) {
	return queryPaints(
		`SELECT id, run_id, paint_id, name, brand, range_name, hex, data, created_at
		 FROM paints WHERE run_id = ? ORDER BY id`,
		runID,
	)
}

func GetPaintsByBrand(runID int64, brand string) ([]Paint, error) {
	return queryPaints(
		`SELECT id, run_id, paint_id, name, brand, range_name, hex, data, created_at
		 FROM paints WHERE run_id = ? AND brand = ? ORDER BY id`,
		runID, brand,
	)
}

func queryPaints(query string, args ...interface{}) ([]Paint, error) {
	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paints []Paint
	for rows.Next() {
		var p Paint
		if err := rows.Scan(&p.ID, &p.RunID, &p.PaintID, &p.Name, &p.Brand, &p.Range, &p.Hex, &p.Data, &p.CreatedAt); err != nil {
			return nil, err
		}
		paints = append(paints, p)
	}
	return paints, rows.Err()
}

func CountPaints(runID int64) (int, error) {
	var count int
	err := DB.QueryRow(`SELECT COUNT(*) FROM paints WHERE run_id = ?`, runID).Scan(&count)
	return count, err
}

func GetBrandCounts(runID int64) ([]BrandCount, error) {
	rows, err := DB.Query(
		`SELECT brand, COUNT(*) FROM paints WHERE run_id = ? GROUP BY brand ORDER BY brand`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []BrandCount
	for rows.Next() {
		var bc BrandCount
		if err := rows.Scan(&bc.Brand, &bc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, bc)
	}
	return counts, rows.Err()
}

func DeleteRun(runID int64) error {
	if _, err := DB.Exec(`DELETE FROM paints WHERE run_id = ?`, runID); err != nil {
		return err
	}
	_, err := DB.Exec(`DELETE FROM runs WHERE id = ?`, runID)
	return err
}

// GetDefaultDBPath returns the default database path
func GetDefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paintctl", "catalog.db")
}
