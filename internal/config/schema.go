package config

import (
	"database/sql"

	intdb "travelapi/internal/db"
)

// EnsureSchema creates missing tables. Statements are idempotent so startup
// is safe against an already-provisioned database.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			username VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(100) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'TRAVELER',
			status VARCHAR(50) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_email (email),
			UNIQUE KEY uniq_username (username)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS travels (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			destination VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(12,2) NOT NULL DEFAULT 0,
			start_date DATE NULL,
			end_date DATE NULL,
			capacity INT NOT NULL DEFAULT 0,
			status VARCHAR(50) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS bookings (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			travel_id BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			KEY idx_user (user_id),
			KEY idx_travel (travel_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS booking_participants (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			age_group VARCHAR(50) NOT NULL DEFAULT '',
			gender VARCHAR(20) NOT NULL DEFAULT '',
			position INT NOT NULL DEFAULT 0,
			KEY idx_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS payments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			bank_id BIGINT NOT NULL,
			bank_name VARCHAR(255) NOT NULL DEFAULT '',
			transaction_number VARCHAR(255) NOT NULL,
			payment_date VARCHAR(50) NOT NULL,
			receipt MEDIUMTEXT,
			coupon_code VARCHAR(100) NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'PENDING',
			rejection_message TEXT,
			original_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			discount_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			final_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			submitted_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			reviewed_at TIMESTAMP NULL,
			reviewed_by VARCHAR(255) NULL,
			UNIQUE KEY uniq_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS coupons (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			code VARCHAR(100) NOT NULL,
			description VARCHAR(255) NOT NULL DEFAULT '',
			discount_type VARCHAR(20) NOT NULL DEFAULT 'PERCENT',
			discount_value DECIMAL(12,2) NOT NULL DEFAULT 0,
			min_amount DECIMAL(12,2) NOT NULL DEFAULT 0,
			max_uses INT NOT NULL DEFAULT 0,
			used_count INT NOT NULL DEFAULT 0,
			valid_from DATE NULL,
			valid_until DATE NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_code (code)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS banks (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			logo_url VARCHAR(500) NOT NULL DEFAULT '',
			account_name VARCHAR(255) NOT NULL,
			account_number VARCHAR(100) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'ACTIVE',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS tickets (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			booking_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			badge_number VARCHAR(100) NOT NULL,
			qr_token VARCHAR(100) NOT NULL,
			checked_in_at TIMESTAMP NULL,
			checked_in_by VARCHAR(255) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uniq_badge (badge_number),
			UNIQUE KEY uniq_token (qr_token),
			KEY idx_booking (booking_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,

		`CREATE TABLE IF NOT EXISTS witnesses (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(100) NOT NULL DEFAULT '',
			address VARCHAR(500) NOT NULL DEFAULT '',
			travel_id BIGINT NULL,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// payments tables provisioned before coupon support lack the column;
	// CREATE TABLE IF NOT EXISTS does not add it
	if !intdb.HasColumn(db, "payments", "coupon_code") {
		if _, err := db.Exec(`ALTER TABLE payments ADD COLUMN coupon_code VARCHAR(100) NULL AFTER receipt`); err != nil {
			return err
		}
	}
	return nil
}
