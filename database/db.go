package database

import (
	"fmt"
	"os"

	"quickzone-backend/logger"
	"quickzone-backend/models/agency"
	"quickzone-backend/models/log"
	"quickzone-backend/models/mission"
	"quickzone-backend/models/parcel"
	"quickzone-backend/models/payment"
	"quickzone-backend/models/shipper"
	"quickzone-backend/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency stages
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.User{},
		&agency.Agency{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&shipper.Shipper{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Parcels and missions
	stage3Models := []interface{}{
		&parcel.Parcel{},
		&mission.PickupMission{},
		&mission.PickupDemand{},
	}

	for _, model := range stage3Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 4: Remaining models
	remainingModels := []interface{}{
		&parcel.TrackingHistoryRecord{},
		&payment.Payment{},
		// Logging
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// User indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_uuid ON users(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create user uuid index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)").Error; err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}

	// Parcel indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_tracking_number ON parcels(tracking_number)").Error; err != nil {
		return fmt.Errorf("failed to create parcel tracking_number index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_status ON parcels(status)").Error; err != nil {
		return fmt.Errorf("failed to create parcel status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_shipper_id ON parcels(shipper_id)").Error; err != nil {
		return fmt.Errorf("failed to create parcel shipper_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_created_at ON parcels(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create parcel created_at index: %w", err)
	}

	// Tracking history indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcel_tracking_history_parcel_id ON parcel_tracking_history(parcel_id)").Error; err != nil {
		return fmt.Errorf("failed to create tracking history parcel_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcel_tracking_history_status ON parcel_tracking_history(status)").Error; err != nil {
		return fmt.Errorf("failed to create tracking history status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcel_tracking_history_created_at ON parcel_tracking_history(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create tracking history created_at index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_parcel_tracking_history_mission_id ON parcel_tracking_history(mission_id)").Error; err != nil {
		return fmt.Errorf("failed to create tracking history mission_id index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_tracking_history_mission",
			sql: `ALTER TABLE parcel_tracking_history ADD CONSTRAINT fk_tracking_history_mission
				  FOREIGN KEY (mission_id) REFERENCES pickup_missions(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			name: "fk_tracking_history_updated_by",
			sql: `ALTER TABLE parcel_tracking_history ADD CONSTRAINT fk_tracking_history_updated_by
				  FOREIGN KEY (updated_by) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
	}

	for _, constraint := range constraints {
		// Check if constraint already exists
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
