package model

import "time"

// Cause is the single explanation a status report settles on. The three
// non-empty causes are disjoint: an unpaid balance always wins over zone
// maintenance, and a cut with neither explanation is a local fault.
type Cause string

const (
	CauseNone        Cause = "NONE"
	CauseUnpaid      Cause = "UNPAID"
	CauseMaintenance Cause = "MAINTENANCE"
	CauseLocalFault  Cause = "LOCAL_FAULT"
)

const (
	WarningZoneNotFound    = "ZONE_NOT_FOUND"
	WarningZoneUnavailable = "ZONE_LOOKUP_UNAVAILABLE"
)

// StatusReport is the classifier's output for one resolved contract.
type StatusReport struct {
	Service            Service
	ContractNumber     string
	CustomerName       string
	IsPaid             bool
	OutstandingBalance float64
	LastPaymentDate    time.Time
	CutStatus          CutStatus
	CutReason          *string

	Cause Cause

	ZoneName              string
	ZoneMaintenanceActive bool
	OutageReason          *string
	EstimatedRestoration  *time.Time

	// Warnings carries non-fatal degradations such as ZONE_NOT_FOUND.
	Warnings []string
}

// DelinquencyReport is the admin export: unpaid contracts and outage state
// grouped by zone.
type DelinquencyReport struct {
	GeneratedAt time.Time
	Zones       []ZoneSection
}

type ZoneSection struct {
	Zone      Zone
	Contracts []DelinquentContract
}

type DelinquentContract struct {
	Service            Service
	ContractNumber     string
	CustomerName       string
	Phone              string
	OutstandingBalance float64
	LastPaymentDate    time.Time
	CutStatus          CutStatus
}
