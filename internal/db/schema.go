package db

import "database/sql"

// Bootstrap DDL, applied at startup. The idx_table_date index backs the
// overlap re-check inside the booking insert transaction; the bookings
// reference column is unique so a confirmation code never collides.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS restaurants (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(100) NOT NULL DEFAULT '',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS tables (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		restaurant_id BIGINT NOT NULL,
		name VARCHAR(100) NOT NULL,
		capacity INT NOT NULL,
		section VARCHAR(100) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_restaurant_table (restaurant_id, name),
		KEY idx_restaurant (restaurant_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		reference VARCHAR(36) NOT NULL,
		restaurant_id BIGINT NOT NULL,
		table_id BIGINT NOT NULL,
		booking_date VARCHAR(10) NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		end_time VARCHAR(5) NOT NULL,
		party_size INT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'confirmed',
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		customer_phone VARCHAR(100) NULL,
		special_requests TEXT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_reference (reference),
		KEY idx_table_date (table_id, booking_date, status),
		KEY idx_restaurant_date (restaurant_id, booking_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'staff',
		status VARCHAR(50) NOT NULL DEFAULT 'active',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
}

// EnsureSchema creates missing tables and applies additive column
// migrations. Safe to run on every startup.
func EnsureSchema(conn *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := conn.Exec(ddl); err != nil {
			return err
		}
	}

	// section arrived after the first schema; older installs lack the column.
	if HasTable(conn, "tables") && !HasColumn(conn, "tables", "section") {
		if _, err := conn.Exec(`ALTER TABLE tables ADD COLUMN section VARCHAR(100) NOT NULL DEFAULT ''`); err != nil {
			return err
		}
	}
	return nil
}
