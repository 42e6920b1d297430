package services

import (
	"errors"

	"github.com/username/titlechain/src/model"
	"github.com/username/titlechain/src/models"
)

var (
	// ErrInvalidRequest marks client-side validation failures: missing
	// events, missing tract key, or a malformed as_of date.
	ErrInvalidRequest = errors.New("invalid title request")

	// ErrComputationFailed marks an unexpected internal failure during the
	// chain replay. Details are logged, never returned to the caller.
	ErrComputationFailed = errors.New("title computation failed")
)

// TitleService runs ownership-chain computations and exposes run history.
type TitleService interface {
	ComputeTitle(req *models.TitleRequest) (*models.TitleReport, error)
	ListRuns(tractKey string, limit int) ([]model.TitleRun, error)
}

// RunStore persists completed runs for audit/history.
type RunStore interface {
	SaveRun(run *model.TitleRun) error
	ListRuns(tractKey string, limit int) ([]model.TitleRun, error)
}
