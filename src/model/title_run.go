package model

import (
	"database/sql"
	"fmt"
	"time"
)

// TitleRun is one persisted ownership computation: enough to audit what was
// asked, when, and what came back, without re-running the chain.
type TitleRun struct {
	ID          string    `json:"id"`
	TractKey    string    `json:"tract_key"`
	EventsCount int       `json:"events_count"`
	OwnersCount int       `json:"owners_count"`
	FlagsCount  int       `json:"flags_count"`
	ReportJSON  string    `json:"report_json"`
	CreatedAt   time.Time `json:"created_at"`
}

// InsertTitleRun stores a completed run.
func InsertTitleRun(db *sql.DB, run *TitleRun) error {
	_, err := db.Exec(
		`INSERT INTO title_runs (id, tract_key, events_count, owners_count, flags_count, report_json) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.TractKey, run.EventsCount, run.OwnersCount, run.FlagsCount, run.ReportJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting title run %s: %w", run.ID, err)
	}
	return nil
}

// ListTitleRunsByTract returns the most recent runs for a tract key, newest
// first. An empty tractKey lists runs across all tracts.
func ListTitleRunsByTract(db *sql.DB, tractKey string, limit int) ([]TitleRun, error) {
	query := `SELECT id, tract_key, events_count, owners_count, flags_count, report_json, created_at
		FROM title_runs WHERE (? = '' OR tract_key = ?) ORDER BY created_at DESC LIMIT ?`
	rows, err := db.Query(query, tractKey, tractKey, limit)
	if err != nil {
		return nil, fmt.Errorf("querying title runs for tract %q: %w", tractKey, err)
	}
	defer rows.Close()

	var runs []TitleRun
	for rows.Next() {
		var run TitleRun
		if err := rows.Scan(&run.ID, &run.TractKey, &run.EventsCount, &run.OwnersCount, &run.FlagsCount, &run.ReportJSON, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning title run row: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating title run rows: %w", err)
	}
	return runs, nil
}
