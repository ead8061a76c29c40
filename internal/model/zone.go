package model

import "time"

type MaintenanceStatus string

const (
	MaintenanceActive MaintenanceStatus = "ACTIVE"
	MaintenanceNone   MaintenanceStatus = "NONE"
)

type Zone struct {
	ZoneID               int
	ZoneName             string
	MaintenanceStatus    MaintenanceStatus
	OutageReason         *string
	EstimatedRestoration *time.Time
	AffectedServices     []Service
	StatusUpdated        time.Time
}

// Affects reports whether a maintenance declared on this zone covers the
// given service. A zone with no affected services covers nothing.
func (z Zone) Affects(svc Service) bool {
	for _, s := range z.AffectedServices {
		if s == svc {
			return true
		}
	}
	return false
}
