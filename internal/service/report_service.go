package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"fleet-report-service/internal/model"
	"fleet-report-service/internal/report"
	"fleet-report-service/internal/source"
)

// FleetSource supplies the raw dataset the engine runs over. The
// postgres repository is the production implementation; tests use a
// fake.
type FleetSource interface {
	FleetSnapshot(ctx context.Context, category string) ([]model.VehicleRecord, error)
	ReplaceFleet(ctx context.Context, records []model.VehicleRecord) error
}

type ReportService struct {
	fleet    FleetSource
	pipeline *report.Pipeline
	log      zerolog.Logger
	now      func() time.Time
}

func NewReportService(fleet FleetSource, pipeline *report.Pipeline, log zerolog.Logger) *ReportService {
	return &ReportService{
		fleet:    fleet,
		pipeline: pipeline,
		log:      log,
		now:      time.Now,
	}
}

// GenerateReport checks the query preconditions, loads a snapshot and
// runs the pipeline over it. The snapshot is private to this call, so
// the engine needs no locking against concurrent ingests.
func (s *ReportService) GenerateReport(ctx context.Context, query model.ReportQuery) (*model.Report, error) {
	if err := checkRequired(query); err != nil {
		return nil, err
	}

	snapshot, err := s.fleet.FleetSnapshot(ctx, query.VehicleCategory)
	if err != nil {
		return nil, fmt.Errorf("load fleet snapshot: %w", err)
	}

	result, err := s.pipeline.Run(snapshot, query, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("kind", string(query.Kind)).
		Str("category", query.VehicleCategory).
		Int("vehicles", len(snapshot)).
		Msg("report generated")
	return result, nil
}

// IngestFleet normalizes a raw provider payload and replaces the
// stored snapshot. A malformed payload blocks the whole ingest; there
// are no partial snapshots.
func (s *ReportService) IngestFleet(ctx context.Context, payload []byte) (int, error) {
	records, err := source.ParseDataset(payload)
	if err != nil {
		return 0, err
	}

	if err := s.fleet.ReplaceFleet(ctx, records); err != nil {
		return 0, fmt.Errorf("replace fleet snapshot: %w", err)
	}

	s.log.Info().Int("vehicles", len(records)).Msg("fleet snapshot replaced")
	return len(records), nil
}

// checkRequired enforces the caller-side preconditions that are not
// part of window validation: every query names its dates and vehicle
// category, and the activity reports need a day class.
func checkRequired(query model.ReportQuery) error {
	switch {
	case query.StartDate.IsZero():
		return fmt.Errorf("%w: start_date", report.ErrMissingRequiredField)
	case query.EndDate.IsZero():
		return fmt.Errorf("%w: end_date", report.ErrMissingRequiredField)
	case query.VehicleCategory == "":
		return fmt.Errorf("%w: vehicle_type", report.ErrMissingRequiredField)
	}

	if query.Kind == model.ReportUsage || query.Kind == model.ReportIdle {
		if query.DayClass != model.DayClassLaboral && query.DayClass != model.DayClassNoLaboral {
			return fmt.Errorf("%w: day_class", report.ErrMissingRequiredField)
		}
	}

	return nil
}
