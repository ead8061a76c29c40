package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Yasser-Essafi/SRM/internal/model"
	"github.com/Yasser-Essafi/SRM/internal/repository"
)

// Seed loads the dataset into an empty database. A non-empty users table
// means the data is already there and the seed is skipped.
func Seed(database *gorm.DB, data repository.Dataset, log zerolog.Logger) error {
	var count int64
	if err := database.Raw(`SELECT COUNT(*) FROM users`).Scan(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Debug().Msg("seed skipped, users table not empty")
		return nil
	}

	for _, warning := range data.Validate() {
		log.Warn().Str("warning", warning).Msg("data integrity")
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, zone := range data.Zones {
			if err := tx.Exec(`
				INSERT INTO zones
					(zone_id, zone_name, maintenance_status, outage_reason, estimated_restoration, affected_services, status_updated)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, zone.ZoneID, zone.ZoneName, string(zone.MaintenanceStatus), zone.OutageReason,
				zone.EstimatedRestoration, encodeAffectedServices(zone.AffectedServices), zone.StatusUpdated).Error; err != nil {
				return fmt.Errorf("seed zone %d: %w", zone.ZoneID, err)
			}
		}

		for _, customer := range data.Customers {
			if err := tx.Exec(`
				INSERT INTO users (user_id, name, address, phone, zone_id)
				VALUES (?, ?, ?, ?, ?)
			`, customer.UserID, customer.Name, customer.Address, customer.Phone, customer.ZoneID).Error; err != nil {
				return fmt.Errorf("seed user %d: %w", customer.UserID, err)
			}
		}

		insertContracts := func(table string, contracts []model.ServiceContract) error {
			for _, contract := range contracts {
				if err := tx.Exec(fmt.Sprintf(`
					INSERT INTO %s
						(contract_number, user_id, is_paid, outstanding_balance, last_payment_date, cut_status, cut_reason)
					VALUES (?, ?, ?, ?, ?, ?, ?)
				`, table), contract.ContractNumber, contract.UserID, contract.IsPaid,
					contract.OutstandingBalance, contract.LastPaymentDate, string(contract.CutStatus), contract.CutReason).Error; err != nil {
					return fmt.Errorf("seed contract %s: %w", contract.ContractNumber, err)
				}
			}
			return nil
		}
		if err := insertContracts("water_contracts", data.WaterContracts); err != nil {
			return err
		}
		return insertContracts("electricity_contracts", data.ElectricityContracts)
	})
}

func encodeAffectedServices(services []model.Service) *string {
	if len(services) == 0 {
		return nil
	}
	encoded := ""
	for i, svc := range services {
		if i > 0 {
			encoded += ","
		}
		encoded += string(svc)
	}
	return &encoded
}
