package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate creates all tables if they do not exist yet. Statements run in
// dependency order so foreign keys always resolve. The DDL is idempotent:
// running it against an already-migrated database is a no-op.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(30) NOT NULL DEFAULT '',
			user_type VARCHAR(10) NOT NULL DEFAULT 'both',
			school_name VARCHAR(255) NOT NULL DEFAULT '',
			suburb VARCHAR(100) NOT NULL DEFAULT '',
			town VARCHAR(100) NOT NULL DEFAULT '',
			province VARCHAR(100) NOT NULL DEFAULT '',
			street_address VARCHAR(255) NOT NULL DEFAULT '',
			id_number VARCHAR(30) NOT NULL DEFAULT '',
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			seller_verified TINYINT(1) NOT NULL DEFAULT 0,
			verification_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			id_document_url VARCHAR(500) NOT NULL DEFAULT '',
			proof_of_address_url VARCHAR(500) NOT NULL DEFAULT '',
			bank_name VARCHAR(100) NOT NULL DEFAULT '',
			bank_account_number VARCHAR(50) NOT NULL DEFAULT '',
			bank_account_type VARCHAR(50) NOT NULL DEFAULT '',
			bank_branch_code VARCHAR(20) NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_users_user_type (user_type),
			INDEX idx_users_verification (verification_status)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_refresh_hash (token_hash),
			CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL UNIQUE,
			icon VARCHAR(100) NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS subcategories (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			category_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_subcat_category FOREIGN KEY (category_id) REFERENCES categories(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS sports (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL UNIQUE,
			icon VARCHAR(100) NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS item_types (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			category_id BIGINT UNSIGNED NOT NULL,
			subcategory_id BIGINT UNSIGNED NULL,
			sport_id BIGINT UNSIGNED NULL,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(100) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_item_types_category (category_id),
			CONSTRAINT fk_type_category FOREIGN KEY (category_id) REFERENCES categories(id),
			CONSTRAINT fk_type_subcategory FOREIGN KEY (subcategory_id) REFERENCES subcategories(id),
			CONSTRAINT fk_type_sport FOREIGN KEY (sport_id) REFERENCES sports(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

		`CREATE TABLE IF NOT EXISTS items (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			item_type_id BIGINT UNSIGNED NULL,
			item_name VARCHAR(255) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			subcategory VARCHAR(100) NOT NULL DEFAULT '',
			sport VARCHAR(100) NOT NULL DEFAULT '',
			school_name VARCHAR(255) NOT NULL DEFAULT '',
			club_name VARCHAR(255) NOT NULL DEFAULT '',
			team VARCHAR(100) NOT NULL DEFAULT '',
			size VARCHAR(50) NOT NULL DEFAULT '',
			gender VARCHAR(10) NOT NULL DEFAULT 'unisex',
			condition_grade INT NULL,
			price DECIMAL(10,2) NOT NULL,
			front_photo TEXT,
			back_photo TEXT,
			description TEXT,
			quantity INT NOT NULL DEFAULT 1,
			status VARCHAR(20) NOT NULL DEFAULT 'available',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_items_user (user_id),
			INDEX idx_items_type (item_type_id),
			CONSTRAINT fk_items_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			CONSTRAINT fk_items_type FOREIGN KEY (item_type_id) REFERENCES item_types(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
