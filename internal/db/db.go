package db

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

func InitDB(dbURL string, logger zerolog.Logger) (*sql.DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("DB_URL is required for the mysql store")
	}

	db, err := sql.Open("mysql", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database not responding: %w", err)
	}

	logger.Info().Msg("Connected to database")
	return db, nil
}

// migrations are idempotent. pizza_orders keeps its own row_id because the
// order id is derived from the row count and may repeat.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		email VARCHAR(255) PRIMARY KEY,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS pizza_orders (
		row_id INT AUTO_INCREMENT PRIMARY KEY,
		id INT NOT NULL,
		type VARCHAR(100) NOT NULL,
		crust VARCHAR(100) NOT NULL,
		size VARCHAR(100) NOT NULL,
		quantity INT NOT NULL,
		price_per DOUBLE NOT NULL,
		order_date VARCHAR(10) NOT NULL,
		INDEX idx_order_id (id)
	);`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id INT AUTO_INCREMENT PRIMARY KEY,
		entity_type VARCHAR(50),
		entity_id INT,
		action VARCHAR(50),
		details TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
}

func RunMigrations(db *sql.DB, logger zerolog.Logger) error {
	for _, q := range migrations {
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	logger.Info().Int("statements", len(migrations)).Msg("Migrations complete")
	return nil
}
