package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/Yasser-Essafi/SRM/internal/model"
	"github.com/Yasser-Essafi/SRM/internal/repository"
)

// StatusService runs the full lookup: resolve the contract, fetch the
// owning zone, classify. It is what the HTTP handler and the agent tools
// call.
type StatusService struct {
	store    repository.RecordStore
	resolver *Resolver
	log      zerolog.Logger
}

func NewStatusService(store repository.RecordStore, log zerolog.Logger) *StatusService {
	return &StatusService{
		store:    store,
		resolver: NewResolver(store, log),
		log:      log,
	}
}

func (s *StatusService) Resolve(ctx context.Context, svc model.Service, rawContract string) (*model.ResolvedContractRecord, error) {
	return s.resolver.Resolve(ctx, svc, rawContract)
}

// Status resolves and classifies in one call. A missing zone row degrades
// the report; a failing zone lookup degrades it too but is flagged with a
// distinct warning so the caller can tell "no such zone" from "store down".
func (s *StatusService) Status(ctx context.Context, svc model.Service, rawContract string) (*model.StatusReport, error) {
	record, err := s.resolver.Resolve(ctx, svc, rawContract)
	if err != nil {
		return nil, err
	}

	var zone *model.Zone
	zoneUnavailable := false
	zone, err = s.store.FindZoneByID(ctx, record.Customer.ZoneID)
	if err != nil {
		if !errors.Is(err, repository.ErrRowNotFound) {
			zoneUnavailable = true
			s.log.Warn().Err(err).
				Int("zone_id", record.Customer.ZoneID).
				Msg("zone lookup failed, classifying without zone data")
		}
		zone = nil
	}

	report := Classify(*record, zone)
	if zoneUnavailable {
		report.Warnings = []string{model.WarningZoneUnavailable}
	}
	return &report, nil
}
