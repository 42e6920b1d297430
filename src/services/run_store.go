package services

import (
	"database/sql"

	"github.com/username/titlechain/src/model"
)

type sqliteRunStore struct {
	db *sql.DB
}

// NewSQLiteRunStore persists runs in the application database.
func NewSQLiteRunStore(db *sql.DB) RunStore {
	return &sqliteRunStore{db: db}
}

func (s *sqliteRunStore) SaveRun(run *model.TitleRun) error {
	return model.InsertTitleRun(s.db, run)
}

func (s *sqliteRunStore) ListRuns(tractKey string, limit int) ([]model.TitleRun, error) {
	return model.ListTitleRunsByTract(s.db, tractKey, limit)
}
