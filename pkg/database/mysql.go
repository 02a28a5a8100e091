package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/rentkit/outreach-console/environments"
	"github.com/rentkit/outreach-console/pkg/logger"
)

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)

	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Connected to MySQL database")
	return db, nil
}

// RunMigrations creates the active tables plus the forward-declared schema
// for the planned drip-campaign subsystem (steps, enrollments, executions,
// rentals). The latter group has no read/write logic in this service yet.
func RunMigrations(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sms_messages (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			context_category VARCHAR(100) NOT NULL,
			content_name VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			message_type VARCHAR(30) NOT NULL DEFAULT 'broadcast',
			created_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			sent_date DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_sms_messages_type (message_type),
			INDEX idx_sms_messages_sent_date (sent_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS email_messages (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			context_category VARCHAR(100) NOT NULL,
			content_name VARCHAR(255) NOT NULL,
			subject VARCHAR(255),
			content TEXT NOT NULL,
			message_type VARCHAR(30) NOT NULL DEFAULT 'email_broadcast',
			sent_date DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_email_messages_type (message_type),
			INDEX idx_email_messages_sent_date (sent_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS categories (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(255),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_categories_name (name)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS sales_funnels (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description VARCHAR(255),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS funnel_content_assignments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			message_id BIGINT NOT NULL,
			channel VARCHAR(8) NOT NULL DEFAULT 'sms',
			funnel_id BIGINT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_assignments_message (channel, message_id),
			INDEX idx_assignments_funnel (funnel_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS funnel_steps (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			funnel_id BIGINT NOT NULL,
			step_order INT NOT NULL,
			message_id BIGINT NOT NULL,
			channel VARCHAR(8) NOT NULL DEFAULT 'sms',
			delay_hours INT NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_funnel_steps_funnel (funnel_id, step_order)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS customers (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			email VARCHAR(255) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS customer_funnel_enrollments (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			funnel_id BIGINT NOT NULL,
			enrolled_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			completed_at DATETIME,
			INDEX idx_enrollments_customer (customer_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS funnel_step_executions (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			enrollment_id BIGINT NOT NULL,
			step_id BIGINT NOT NULL,
			scheduled_for DATETIME NOT NULL,
			executed_at DATETIME,
			status VARCHAR(20) NOT NULL DEFAULT 'scheduled',
			INDEX idx_executions_scheduled (status, scheduled_for)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS equipment (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			sku VARCHAR(100) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS rentals (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			start_date DATETIME NOT NULL,
			end_date DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,

		`CREATE TABLE IF NOT EXISTS rental_items (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			rental_id BIGINT NOT NULL,
			equipment_id BIGINT NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			INDEX idx_rental_items_rental (rental_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Infof("Database migrations completed")

	return nil
}

func SeedTestData(db *sqlx.DB) error {
	var count int

	err := db.Get(&count, "SELECT COUNT(*) FROM sms_messages")
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Infof("Database already has %d sms messages, skipping seed", count)
		return nil
	}

	categories := []struct {
		name        string
		description string
	}{
		{"Welcome", "First-contact content for new customers"},
		{"Rental Reminders", "Pickup and return reminders"},
		{"Offers", "Seasonal promotions"},
	}

	for _, cat := range categories {
		_, err := db.Exec(
			"INSERT INTO categories (name, description) VALUES (?, ?)",
			cat.name, cat.description,
		)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}

	smsMessages := []struct {
		category    string
		name        string
		content     string
		messageType string
	}{
		{"Welcome", "Welcome Text", "Thanks for renting with us! Reply HELP for assistance.", "broadcast"},
		{"Rental Reminders", "Return Tomorrow", "Friendly reminder: your rental is due back tomorrow.", "broadcast"},
		{"Welcome", "Day 1 Tips", "Quick tips for getting the most out of your equipment.", "funnel_content"},
		{"Offers", "Spring Sale", "20% off weekend rentals this month. Book now!", "broadcast"},
		{"Rental Reminders", "Mid-Rental Check-in", "How is the equipment working out? Need anything?", "funnel_content"},
	}

	for _, msg := range smsMessages {
		_, err := db.Exec(
			"INSERT INTO sms_messages (context_category, content_name, content, message_type) VALUES (?, ?, ?, ?)",
			msg.category, msg.name, msg.content, msg.messageType,
		)
		if err != nil {
			return fmt.Errorf("failed to seed sms messages: %w", err)
		}
	}

	emailMessages := []struct {
		category    string
		name        string
		subject     string
		content     string
		messageType string
	}{
		{"Welcome", "Welcome Email", "Welcome to the family", "Thanks for choosing us for your equipment needs.", "email_broadcast"},
		{"Offers", "Spring Newsletter", "Spring deals inside", "Our seasonal lineup is ready for you.", "email_broadcast"},
		{"Welcome", "Getting Started Guide", "Your first rental, step by step", "Everything you need to know before pickup day.", "email_funnel_content"},
	}

	for _, msg := range emailMessages {
		_, err := db.Exec(
			"INSERT INTO email_messages (context_category, content_name, subject, content, message_type) VALUES (?, ?, ?, ?, ?)",
			msg.category, msg.name, msg.subject, msg.content, msg.messageType,
		)
		if err != nil {
			return fmt.Errorf("failed to seed email messages: %w", err)
		}
	}

	funnels := []string{"New Customer Onboarding", "Return Follow-up"}
	for _, name := range funnels {
		if _, err := db.Exec("INSERT INTO sales_funnels (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("failed to seed funnels: %w", err)
		}
	}

	// Seed runs only against an empty database, so auto-increment ids are
	// deterministic here.
	assignments := []struct {
		messageID int64
		channel   string
		funnelID  int64
	}{
		{3, "sms", 1},
		{5, "sms", 2},
		{3, "email", 1},
	}

	for _, a := range assignments {
		_, err := db.Exec(
			"INSERT INTO funnel_content_assignments (message_id, channel, funnel_id) VALUES (?, ?, ?)",
			a.messageID, a.channel, a.funnelID,
		)
		if err != nil {
			return fmt.Errorf("failed to seed funnel assignments: %w", err)
		}
	}

	logger.Infof("Seeded %d categories, %d sms messages, %d email messages, %d funnels",
		len(categories), len(smsMessages), len(emailMessages), len(funnels))
	return nil
}
