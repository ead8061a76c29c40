package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/Yasser-Essafi/SRM/internal/model"
)

// MemoryStore is the table-backed RecordStore. It is immutable after
// construction and therefore safe for concurrent reads without locking.
type MemoryStore struct {
	contracts map[model.Service][]model.ServiceContract // sorted by contract number
	byNumber  map[model.Service]map[string]model.ServiceContract
	customers map[int]model.Customer
	zones     map[int]model.Zone
	zoneOrder []int
}

func NewMemoryStore(data Dataset) *MemoryStore {
	s := &MemoryStore{
		contracts: make(map[model.Service][]model.ServiceContract, 2),
		byNumber:  make(map[model.Service]map[string]model.ServiceContract, 2),
		customers: make(map[int]model.Customer, len(data.Customers)),
		zones:     make(map[int]model.Zone, len(data.Zones)),
	}

	load := func(svc model.Service, contracts []model.ServiceContract) {
		sorted := make([]model.ServiceContract, len(contracts))
		copy(sorted, contracts)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].ContractNumber < sorted[j].ContractNumber
		})
		s.contracts[svc] = sorted

		index := make(map[string]model.ServiceContract, len(sorted))
		for _, c := range sorted {
			index[c.ContractNumber] = c
		}
		s.byNumber[svc] = index
	}
	load(model.ServiceWater, data.WaterContracts)
	load(model.ServiceElectricity, data.ElectricityContracts)

	for _, customer := range data.Customers {
		s.customers[customer.UserID] = customer
	}
	for _, zone := range data.Zones {
		s.zones[zone.ZoneID] = zone
		s.zoneOrder = append(s.zoneOrder, zone.ZoneID)
	}
	sort.Ints(s.zoneOrder)

	return s
}

func (s *MemoryStore) FindContractByNumber(_ context.Context, svc model.Service, number string) (*model.ServiceContract, error) {
	contract, ok := s.byNumber[svc][number]
	if !ok {
		return nil, ErrRowNotFound
	}
	return &contract, nil
}

func (s *MemoryStore) ListContractsByPrefix(_ context.Context, svc model.Service, partial string) ([]model.ServiceContract, error) {
	var matches []model.ServiceContract
	for _, contract := range s.contracts[svc] {
		head, _, _ := strings.Cut(contract.ContractNumber, " / ")
		if head == partial {
			matches = append(matches, contract)
		}
	}
	return matches, nil
}

func (s *MemoryStore) FindCustomerByID(_ context.Context, userID int) (*model.Customer, error) {
	customer, ok := s.customers[userID]
	if !ok {
		return nil, ErrRowNotFound
	}
	return &customer, nil
}

func (s *MemoryStore) FindZoneByID(_ context.Context, zoneID int) (*model.Zone, error) {
	zone, ok := s.zones[zoneID]
	if !ok {
		return nil, ErrRowNotFound
	}
	return &zone, nil
}

func (s *MemoryStore) ListZones(_ context.Context) ([]model.Zone, error) {
	zones := make([]model.Zone, 0, len(s.zoneOrder))
	for _, id := range s.zoneOrder {
		zones = append(zones, s.zones[id])
	}
	return zones, nil
}

func (s *MemoryStore) ListUnpaidContracts(_ context.Context) ([]UnpaidContractRow, error) {
	var rows []UnpaidContractRow
	collect := func(svc model.Service) {
		for _, contract := range s.contracts[svc] {
			if contract.IsPaid {
				continue
			}
			customer := s.customers[contract.UserID]
			rows = append(rows, UnpaidContractRow{
				Service:            svc,
				ContractNumber:     contract.ContractNumber,
				CustomerName:       customer.Name,
				Phone:              customer.Phone,
				ZoneID:             customer.ZoneID,
				OutstandingBalance: contract.OutstandingBalance,
				LastPaymentDate:    contract.LastPaymentDate,
				CutStatus:          contract.CutStatus,
			})
		}
	}
	collect(model.ServiceWater)
	collect(model.ServiceElectricity)

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ZoneID != rows[j].ZoneID {
			return rows[i].ZoneID < rows[j].ZoneID
		}
		return rows[i].ContractNumber < rows[j].ContractNumber
	})
	return rows, nil
}
