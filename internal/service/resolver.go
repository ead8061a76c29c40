package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Yasser-Essafi/SRM/internal/model"
	"github.com/Yasser-Essafi/SRM/internal/repository"
)

// contractShape accepts the canonical "<10 digits> / <7 digits>" form and
// the partial leading segment. Prefix correctness is the table's concern,
// not the shape check's: a well-shaped number with the wrong prefix simply
// fails the lookup.
var contractShape = regexp.MustCompile(`^\d{10}( / \d{7})?$`)

// Resolver maps raw contract input to the joined customer+contract record.
type Resolver struct {
	store repository.RecordStore
	log   zerolog.Logger
}

func NewResolver(store repository.RecordStore, log zerolog.Logger) *Resolver {
	return &Resolver{store: store, log: log}
}

// Resolve normalizes the input, matches it against the service's contract
// table (exact first, then partial on the segment before " / ") and joins
// the owning customer. Pure read, no side effects.
func (r *Resolver) Resolve(ctx context.Context, svc model.Service, rawContract string) (*model.ResolvedContractRecord, error) {
	if !svc.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidService, svc)
	}

	normalized := normalizeContractInput(rawContract)
	if !contractShape.MatchString(normalized) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContractFormat, rawContract)
	}

	contract, err := r.store.FindContractByNumber(ctx, svc, normalized)
	if err != nil && !errors.Is(err, repository.ErrRowNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if contract == nil && !strings.Contains(normalized, " / ") {
		candidates, err := r.store.ListContractsByPrefix(ctx, svc, normalized)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if len(candidates) > 0 {
			if len(candidates) > 1 {
				// Candidates arrive ordered by contract number; the first
				// one is the documented deterministic pick.
				r.log.Debug().
					Str("service", string(svc)).
					Str("partial", normalized).
					Int("candidates", len(candidates)).
					Msg("ambiguous partial contract, taking first by contract number")
			}
			contract = &candidates[0]
		}
	}

	if contract == nil {
		return nil, &ContractNotFoundError{Service: svc, RawInput: rawContract}
	}

	customer, err := r.store.FindCustomerByID(ctx, contract.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrRowNotFound) {
			return nil, fmt.Errorf("%w: contract %s has no owning customer %d",
				ErrStoreUnavailable, contract.ContractNumber, contract.UserID)
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &model.ResolvedContractRecord{
		Service:  svc,
		Customer: *customer,
		Contract: *contract,
	}, nil
}

// normalizeContractInput trims and collapses every whitespace run to a
// single space, so "3701455886  /  1014871" still hits the canonical key.
func normalizeContractInput(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
