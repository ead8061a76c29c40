package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Yasser-Essafi/SRM/internal/model"
)

// SQLStore is the postgres-backed RecordStore.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func contractTable(svc model.Service) string {
	if svc == model.ServiceElectricity {
		return "electricity_contracts"
	}
	return "water_contracts"
}

type contractRow struct {
	ContractNumber     string
	UserID             int
	IsPaid             bool
	OutstandingBalance float64
	LastPaymentDate    time.Time
	CutStatus          string
	CutReason          *string
}

func (r contractRow) toModel() model.ServiceContract {
	return model.ServiceContract{
		ContractNumber:     r.ContractNumber,
		UserID:             r.UserID,
		IsPaid:             r.IsPaid,
		OutstandingBalance: r.OutstandingBalance,
		LastPaymentDate:    r.LastPaymentDate,
		CutStatus:          model.CutStatus(r.CutStatus),
		CutReason:          r.CutReason,
	}
}

func (s *SQLStore) FindContractByNumber(ctx context.Context, svc model.Service, number string) (*model.ServiceContract, error) {
	var row contractRow
	err := s.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			contract_number,
			user_id,
			is_paid,
			outstanding_balance,
			last_payment_date,
			cut_status,
			cut_reason
		FROM %s
		WHERE contract_number = ?
		LIMIT 1
	`, contractTable(svc)), number).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("find contract: %w", err)
	}
	if row.ContractNumber == "" {
		return nil, ErrRowNotFound
	}
	contract := row.toModel()
	return &contract, nil
}

func (s *SQLStore) ListContractsByPrefix(ctx context.Context, svc model.Service, partial string) ([]model.ServiceContract, error) {
	var rows []contractRow
	err := s.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT
			contract_number,
			user_id,
			is_paid,
			outstanding_balance,
			last_payment_date,
			cut_status,
			cut_reason
		FROM %s
		WHERE split_part(contract_number, ' / ', 1) = ?
		ORDER BY contract_number ASC
	`, contractTable(svc)), partial).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list contracts by prefix: %w", err)
	}

	contracts := make([]model.ServiceContract, 0, len(rows))
	for _, row := range rows {
		contracts = append(contracts, row.toModel())
	}
	return contracts, nil
}

func (s *SQLStore) FindCustomerByID(ctx context.Context, userID int) (*model.Customer, error) {
	var customer model.Customer
	err := s.db.WithContext(ctx).Raw(`
		SELECT user_id, name, address, phone, zone_id
		FROM users
		WHERE user_id = ?
		LIMIT 1
	`, userID).Scan(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRowNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer.UserID == 0 {
		return nil, ErrRowNotFound
	}
	return &customer, nil
}

type zoneRow struct {
	ZoneID               int
	ZoneName             string
	MaintenanceStatus    string
	OutageReason         *string
	EstimatedRestoration *time.Time
	AffectedServices     *string
	StatusUpdated        time.Time
}

func (r zoneRow) toModel() model.Zone {
	return model.Zone{
		ZoneID:               r.ZoneID,
		ZoneName:             r.ZoneName,
		MaintenanceStatus:    model.MaintenanceStatus(r.MaintenanceStatus),
		OutageReason:         r.OutageReason,
		EstimatedRestoration: r.EstimatedRestoration,
		AffectedServices:     parseAffectedServices(r.AffectedServices),
		StatusUpdated:        r.StatusUpdated,
	}
}

// parseAffectedServices decodes the comma-separated affected_services column.
func parseAffectedServices(raw *string) []model.Service {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	parts := strings.Split(*raw, ",")
	services := make([]model.Service, 0, len(parts))
	for _, part := range parts {
		svc := model.Service(strings.ToUpper(strings.TrimSpace(part)))
		if svc.Valid() {
			services = append(services, svc)
		}
	}
	return services
}

func (s *SQLStore) FindZoneByID(ctx context.Context, zoneID int) (*model.Zone, error) {
	var row zoneRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			zone_id,
			zone_name,
			maintenance_status,
			outage_reason,
			estimated_restoration,
			affected_services,
			status_updated
		FROM zones
		WHERE zone_id = ?
		LIMIT 1
	`, zoneID).Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("find zone: %w", err)
	}
	if row.ZoneID == 0 {
		return nil, ErrRowNotFound
	}
	zone := row.toModel()
	return &zone, nil
}

func (s *SQLStore) ListZones(ctx context.Context) ([]model.Zone, error) {
	var rows []zoneRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			zone_id,
			zone_name,
			maintenance_status,
			outage_reason,
			estimated_restoration,
			affected_services,
			status_updated
		FROM zones
		ORDER BY zone_id ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	zones := make([]model.Zone, 0, len(rows))
	for _, row := range rows {
		zones = append(zones, row.toModel())
	}
	return zones, nil
}

func (s *SQLStore) ListUnpaidContracts(ctx context.Context) ([]UnpaidContractRow, error) {
	var rows []struct {
		Service            string
		ContractNumber     string
		CustomerName       string
		Phone              string
		ZoneID             int
		OutstandingBalance float64
		LastPaymentDate    time.Time
		CutStatus          string
	}
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			'WATER' AS service,
			w.contract_number,
			u.name AS customer_name,
			u.phone,
			u.zone_id,
			w.outstanding_balance,
			w.last_payment_date,
			w.cut_status
		FROM water_contracts w
		JOIN users u ON u.user_id = w.user_id
		WHERE NOT w.is_paid
		UNION ALL
		SELECT
			'ELECTRICITY' AS service,
			e.contract_number,
			u.name AS customer_name,
			u.phone,
			u.zone_id,
			e.outstanding_balance,
			e.last_payment_date,
			e.cut_status
		FROM electricity_contracts e
		JOIN users u ON u.user_id = e.user_id
		WHERE NOT e.is_paid
		ORDER BY zone_id ASC, contract_number ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list unpaid contracts: %w", err)
	}

	result := make([]UnpaidContractRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, UnpaidContractRow{
			Service:            model.Service(row.Service),
			ContractNumber:     row.ContractNumber,
			CustomerName:       row.CustomerName,
			Phone:              row.Phone,
			ZoneID:             row.ZoneID,
			OutstandingBalance: row.OutstandingBalance,
			LastPaymentDate:    row.LastPaymentDate,
			CutStatus:          model.CutStatus(row.CutStatus),
		})
	}
	return result, nil
}
