package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id INT PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		address VARCHAR(200),
		phone VARCHAR(20),
		zone_id INT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS zones (
		zone_id INT PRIMARY KEY,
		zone_name VARCHAR(100) NOT NULL,
		maintenance_status VARCHAR(20) NOT NULL DEFAULT 'NONE',
		outage_reason VARCHAR(200),
		estimated_restoration TIMESTAMPTZ,
		affected_services VARCHAR(50),
		status_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS water_contracts (
		contract_number VARCHAR(50) PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(user_id),
		is_paid BOOLEAN NOT NULL DEFAULT TRUE,
		outstanding_balance NUMERIC(10,2) NOT NULL DEFAULT 0,
		last_payment_date DATE,
		cut_status VARCHAR(20) NOT NULL DEFAULT 'OK',
		cut_reason VARCHAR(200)
	);`,
	`CREATE TABLE IF NOT EXISTS electricity_contracts (
		contract_number VARCHAR(50) PRIMARY KEY,
		user_id INT NOT NULL REFERENCES users(user_id),
		is_paid BOOLEAN NOT NULL DEFAULT TRUE,
		outstanding_balance NUMERIC(10,2) NOT NULL DEFAULT 0,
		last_payment_date DATE,
		cut_status VARCHAR(20) NOT NULL DEFAULT 'OK',
		cut_reason VARCHAR(200)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_users_zone_id ON users (zone_id);`,
	`CREATE INDEX IF NOT EXISTS idx_water_contracts_user_id ON water_contracts (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_electricity_contracts_user_id ON electricity_contracts (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_water_contracts_head ON water_contracts (split_part(contract_number, ' / ', 1));`,
	`CREATE INDEX IF NOT EXISTS idx_electricity_contracts_head ON electricity_contracts (split_part(contract_number, ' / ', 1));`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
