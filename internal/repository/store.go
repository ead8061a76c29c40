package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Yasser-Essafi/SRM/internal/model"
)

// ErrRowNotFound is returned by every store when a lookup matches nothing.
// Any other error means the backing store itself failed and the call may be
// retried by the caller.
var ErrRowNotFound = errors.New("row not found")

// UnpaidContractRow feeds the delinquency report; it is the flattened join
// of an unpaid contract with its owning customer.
type UnpaidContractRow struct {
	Service            model.Service
	ContractNumber     string
	CustomerName       string
	Phone              string
	ZoneID             int
	OutstandingBalance float64
	LastPaymentDate    time.Time
	CutStatus          model.CutStatus
}

// RecordStore is the read-only lookup surface the resolver, classifier and
// report builder run against. Implementations must be safe for concurrent
// use; all data is immutable after load.
type RecordStore interface {
	// FindContractByNumber matches the canonical contract number exactly.
	FindContractByNumber(ctx context.Context, svc model.Service, number string) (*model.ServiceContract, error)
	// ListContractsByPrefix returns every contract whose segment before
	// " / " equals the given partial number, ordered by contract number.
	ListContractsByPrefix(ctx context.Context, svc model.Service, partial string) ([]model.ServiceContract, error)
	FindCustomerByID(ctx context.Context, userID int) (*model.Customer, error)
	FindZoneByID(ctx context.Context, zoneID int) (*model.Zone, error)
	ListZones(ctx context.Context) ([]model.Zone, error)
	ListUnpaidContracts(ctx context.Context) ([]UnpaidContractRow, error)
}
