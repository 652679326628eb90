package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/asnhub/asndash/internal/common"
	"github.com/asnhub/asndash/internal/config"
	"github.com/asnhub/asndash/internal/employees"
	"github.com/asnhub/asndash/internal/logging"
	"github.com/asnhub/asndash/internal/units"
	"github.com/google/uuid"
)

// Export is the outcome of a report export: the artifact was uploaded to
// object storage and URL is a presigned link valid until ExpiresAt.
type Export struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	employees employees.Repository
	units     units.Repository
	storage   Storage
	urlTTL    time.Duration
	log       logging.Logger
	now       func() time.Time
}

func NewService(er employees.Repository, ur units.Repository, st Storage, cfg *config.Config, log logging.Logger) *Service {
	return &Service{
		employees: er,
		units:     ur,
		storage:   st,
		urlTTL:    cfg.ReportURLTTL,
		log:       log,
		now:       time.Now,
	}
}

func contentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

func (s *Service) unitNames(ctx context.Context) (map[string]string, error) {
	list, err := s.units.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(list))
	for _, u := range list {
		names[u.ID] = u.Name
	}
	return names, nil
}

func (s *Service) deliver(ctx context.Context, body []byte, format string) (*Export, error) {
	key := storageKey(s.now(), uuid.New().String(), format)

	if err := s.storage.Put(ctx, key, body, contentType(format)); err != nil {
		s.log.Error(ctx, "report upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("uploading report: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, key, s.urlTTL)
	if err != nil {
		s.log.Error(ctx, "report presign failed", "key", key, "error", err)
		return nil, fmt.Errorf("presigning report url: %w", err)
	}

	s.log.Info(ctx, "report exported", "key", key, "format", format)
	return &Export{
		Key:       key,
		URL:       url,
		Format:    format,
		ExpiresAt: s.now().Add(s.urlTTL),
	}, nil
}

// ExportRoster generates the employee roster in the given format (csv or
// xlsx), honouring the filter, uploads it and returns a presigned link.
func (s *Service) ExportRoster(ctx context.Context, f employees.Filter, format string) (*Export, error) {
	if format != FormatCSV && format != FormatXLSX {
		return nil, fmt.Errorf("%w: unsupported format %q", common.ErrorInvalidInput, format)
	}

	list, err := s.employees.List(ctx, f)
	if err != nil {
		return nil, err
	}
	names, err := s.unitNames(ctx)
	if err != nil {
		return nil, err
	}

	var body []byte
	switch format {
	case FormatXLSX:
		body, err = BuildRosterXLSX(list, names)
	default:
		body, err = BuildRosterCSV(list, names)
	}
	if err != nil {
		return nil, fmt.Errorf("building roster: %w", err)
	}

	return s.deliver(ctx, body, format)
}

// ExportUnitSummary generates a per-unit headcount CSV, uploads it and
// returns a presigned link.
func (s *Service) ExportUnitSummary(ctx context.Context) (*Export, error) {
	names, err := s.unitNames(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(names))
	for id := range names {
		n, err := s.employees.CountByUnit(ctx, id)
		if err != nil {
			return nil, err
		}
		counts[id] = n
	}

	body, err := BuildUnitSummaryCSV(counts, names)
	if err != nil {
		return nil, fmt.Errorf("building unit summary: %w", err)
	}

	return s.deliver(ctx, body, FormatCSV)
}
