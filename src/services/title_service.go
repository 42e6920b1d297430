package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/titlechain/src/config"
	"github.com/username/titlechain/src/engine"
	"github.com/username/titlechain/src/logger"
	"github.com/username/titlechain/src/model"
	"github.com/username/titlechain/src/models"
	"github.com/username/titlechain/src/utils"
)

const (
	ckTitleReport = "res_title_report_%s"

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type titleServiceImpl struct {
	engine      *engine.Engine
	reportCache *cache.Cache
	runStore    RunStore
}

func NewTitleService(eng *engine.Engine, reportCache *cache.Cache, runStore RunStore) TitleService {
	return &titleServiceImpl{
		engine:      eng,
		reportCache: reportCache,
		runStore:    runStore,
	}
}

func (s *titleServiceImpl) ComputeTitle(req *models.TitleRequest) (report *models.TitleReport, err error) {
	overallStartTime := time.Now()

	if req == nil || len(req.Events) == 0 {
		return nil, fmt.Errorf("%w: events must be non-empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.TractKey) == "" {
		return nil, fmt.Errorf("%w: tract_key must be non-empty", ErrInvalidRequest)
	}
	asOf, dateErr := utils.ResolveAsOfDate(req.AsOf)
	if dateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, dateErr)
	}

	totalAcres := req.TotalAcres
	if totalAcres <= 0 {
		totalAcres = defaultTotalAcres()
	}
	status := models.StatusAppearsOpen
	if req.HBP {
		status = models.StatusAppearsLeased
	}

	logger.L.Info("ComputeTitle START", "tractKey", req.TractKey, "eventsCount", len(req.Events), "asOf", asOf, "hbp", req.HBP)

	cacheKey, keyErr := reportCacheKey(req, totalAcres, status)
	if keyErr == nil {
		if cached, found := s.reportCache.Get(cacheKey); found {
			logger.L.Debug("Cache hit for title report", "tractKey", req.TractKey)
			return cached.(*models.TitleReport), nil
		}
	} else {
		logger.L.Warn("Proceeding without report cache, key generation failed", "error", keyErr)
	}

	// A malformed record should surface as a generic internal failure,
	// never as a partial report or a leaked panic.
	defer func() {
		if r := recover(); r != nil {
			logger.L.Error("Panic during title computation", "tractKey", req.TractKey, "panic", r)
			report = nil
			err = ErrComputationFailed
		}
	}()

	report = s.engine.ComputeOwnership(req.Events, req.TractKey, totalAcres, status)

	if keyErr == nil {
		s.reportCache.Set(cacheKey, report, DefaultCacheExpiration)
	}
	s.persistRun(req.TractKey, report)

	logger.L.Info("ComputeTitle END", "tractKey", req.TractKey,
		"owners", len(report.Owners), "flags", len(report.Flags), "duration", time.Since(overallStartTime))
	return report, nil
}

func (s *titleServiceImpl) ListRuns(tractKey string, limit int) ([]model.TitleRun, error) {
	if limit <= 0 {
		limit = runHistoryPageLimit()
	}
	return s.runStore.ListRuns(tractKey, limit)
}

// persistRun records the completed run for audit. History is observability,
// not the computation result, so a storage failure is logged and the report
// still returned.
func (s *titleServiceImpl) persistRun(tractKey string, report *models.TitleReport) {
	if s.runStore == nil {
		return
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		logger.L.Error("Failed to marshal report for run history", "tractKey", tractKey, "error", err)
		return
	}
	run := &model.TitleRun{
		ID:          uuid.NewString(),
		TractKey:    tractKey,
		EventsCount: report.EventsCount,
		OwnersCount: len(report.Owners),
		FlagsCount:  len(report.Flags),
		ReportJSON:  string(reportJSON),
	}
	if err := s.runStore.SaveRun(run); err != nil {
		logger.L.Error("Failed to persist title run", "tractKey", tractKey, "runID", run.ID, "error", err)
	}
}

// reportCacheKey hashes everything that influences the report: the events,
// the tract key, the resolved acreage and the status label.
func reportCacheKey(req *models.TitleRequest, totalAcres float64, status string) (string, error) {
	hash, err := utils.GenerateETag(struct {
		Events     []models.InstrumentRecord `json:"events"`
		TractKey   string                    `json:"tract_key"`
		TotalAcres float64                   `json:"total_acres"`
		Status     string                    `json:"status"`
	}{req.Events, req.TractKey, totalAcres, status})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(ckTitleReport, hash), nil
}

func defaultTotalAcres() float64 {
	if config.Cfg != nil {
		return config.Cfg.DefaultTotalAcres
	}
	return 160
}

func runHistoryPageLimit() int {
	if config.Cfg != nil {
		return config.Cfg.RunHistoryPageLimit
	}
	return 50
}
