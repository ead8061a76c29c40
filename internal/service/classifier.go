package service

import (
	"github.com/Yasser-Essafi/SRM/internal/model"
)

// Classify derives the status report for a resolved contract. zone may be
// nil when the zone row is missing; classification then degrades to the
// contract-level fields with a ZONE_NOT_FOUND warning instead of failing.
//
// The cause is a disjoint pick with fixed precedence: an unpaid balance
// always explains the state, zone maintenance scoped to the contract's
// service comes next, and a cut with neither explanation is a local fault.
func Classify(record model.ResolvedContractRecord, zone *model.Zone) model.StatusReport {
	report := model.StatusReport{
		Service:            record.Service,
		ContractNumber:     record.Contract.ContractNumber,
		CustomerName:       record.Customer.Name,
		IsPaid:             record.Contract.IsPaid,
		OutstandingBalance: record.Contract.OutstandingBalance,
		LastPaymentDate:    record.Contract.LastPaymentDate,
		CutStatus:          record.Contract.CutStatus,
		CutReason:          record.Contract.CutReason,
		Cause:              model.CauseNone,
	}

	if zone == nil {
		report.Warnings = append(report.Warnings, model.WarningZoneNotFound)
	} else {
		report.ZoneName = zone.ZoneName
		if zone.MaintenanceStatus == model.MaintenanceActive && zone.Affects(record.Service) {
			report.ZoneMaintenanceActive = true
			report.OutageReason = zone.OutageReason
			report.EstimatedRestoration = zone.EstimatedRestoration
		}
	}

	switch {
	case !record.Contract.IsPaid:
		report.Cause = model.CauseUnpaid
	case report.ZoneMaintenanceActive:
		report.Cause = model.CauseMaintenance
	case record.Contract.CutStatus == model.CutStatusCutOff:
		report.Cause = model.CauseLocalFault
	}

	return report
}
