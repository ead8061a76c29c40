package model

import "time"

type CutStatus string

const (
	CutStatusOK     CutStatus = "OK"
	CutStatusCutOff CutStatus = "CUT_OFF"
)

// ServiceContract is one row of the water_contracts or electricity_contracts
// table. ContractNumber is the canonical "<prefix><10 digits> / <7 digits>"
// form and is the primary key of its table.
type ServiceContract struct {
	ContractNumber     string
	UserID             int
	IsPaid             bool
	OutstandingBalance float64 // MAD
	LastPaymentDate    time.Time
	CutStatus          CutStatus
	CutReason          *string
}

// ResolvedContractRecord is the in-memory join of a contract with its owning
// customer, tagged with the service the resolution ran against. It is never
// persisted.
type ResolvedContractRecord struct {
	Service  Service
	Customer Customer
	Contract ServiceContract
}
