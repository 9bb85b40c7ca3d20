package database

import (
	"fmt"

	"parcel-tracking/logger"
	"parcel-tracking/models/log"
	"parcel-tracking/models/notification"
	"parcel-tracking/models/organization"
	"parcel-tracking/models/parcel"
	"parcel-tracking/models/user"

	"gorm.io/gorm"
)

// migrationStages lists every model in dependency order. Each stage only
// references tables created by an earlier one.
func migrationStages() [][]interface{} {
	return [][]interface{}{
		// Stage 1: identities
		{&user.User{}},
		// Stage 2: tenants
		{&organization.Organization{}, &organization.Department{}},
		// Stage 3: parcels
		{&parcel.Parcel{}},
		// Stage 4: parcel children
		{
			&parcel.StatusHistory{},
			&parcel.DeliveryHistory{},
			&parcel.DeliveryReview{},
			&parcel.TrackingLocation{},
			&parcel.DeliveryRoute{},
			&notification.Notification{},
		},
		// Stage 5: request logs
		{&log.Log{}},
	}
}

// Models returns every registered model in migration order.
func Models() []interface{} {
	var out []interface{}
	for _, stage := range migrationStages() {
		out = append(out, stage...)
	}
	return out
}

// AutoMigrate creates or updates every table in stages.
func AutoMigrate(db *gorm.DB) error {
	for i, stage := range migrationStages() {
		for _, model := range stage {
			if err := db.AutoMigrate(model); err != nil {
				return fmt.Errorf("stage %d: failed to migrate %T: %w", i+1, model, err)
			}
		}
	}
	return nil
}

// RunMigrations migrates the schema, then makes sure the foreign key
// policies and secondary indexes are in place.
func RunMigrations(db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		logger.Error("Failed to auto migrate models", err)
		return err
	}
	logger.Success("All models migrated successfully")

	if err := createForeignKeyConstraints(db); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")

	return nil
}

type foreignKeyPolicy struct {
	name       string
	table      string
	column     string
	refTable   string
	onDeletion string
}

// foreignKeyPolicies mirrors the constraint tags on the models. Names follow
// gorm's fk_<table>_<field> convention so AutoMigrate and this list never
// create the same constraint twice.
var foreignKeyPolicies = []foreignKeyPolicy{
	{"fk_organizations_admin", "organizations", "admin_id", "users", "SET NULL"},
	{"fk_departments_organization", "departments", "organization_id", "organizations", "CASCADE"},
	{"fk_parcels_organization", "parcels", "organization_id", "organizations", "CASCADE"},
	{"fk_parcels_department", "parcels", "department_id", "departments", "SET NULL"},
	{"fk_parcels_status_history", "parcel_status_histories", "parcel_id", "parcels", "CASCADE"},
	{"fk_parcel_status_histories_changed_by", "parcel_status_histories", "changed_by_id", "users", "SET NULL"},
	{"fk_parcels_delivery_histories", "parcel_delivery_histories", "parcel_id", "parcels", "CASCADE"},
	{"fk_parcel_delivery_histories_user", "parcel_delivery_histories", "user_id", "users", "CASCADE"},
	{"fk_parcels_review", "delivery_reviews", "parcel_id", "parcels", "CASCADE"},
	{"fk_delivery_reviews_reviewer", "delivery_reviews", "reviewer_id", "users", "CASCADE"},
	{"fk_parcels_tracking_locations", "tracking_locations", "parcel_id", "parcels", "CASCADE"},
	{"fk_parcels_delivery_routes", "delivery_routes", "parcel_id", "parcels", "CASCADE"},
	{"fk_notifications_user", "notifications", "user_id", "users", "CASCADE"},
	{"fk_notifications_parcel", "notifications", "parcel_id", "parcels", "CASCADE"},
}

func (p foreignKeyPolicy) sql() string {
	return fmt.Sprintf(`ALTER TABLE %s ADD CONSTRAINT %s 
		  FOREIGN KEY (%s) REFERENCES %s(id) 
		  ON UPDATE CASCADE ON DELETE %s`, p.table, p.name, p.column, p.refTable, p.onDeletion)
}

// createForeignKeyConstraints adds any policy missing from an existing
// PostgreSQL schema. SQLite cannot alter constraints after the fact and gets
// them from the model tags at table creation.
func createForeignKeyConstraints(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	for _, constraint := range foreignKeyPolicies {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints 
				WHERE constraint_name = $1
			)
		`

		err := db.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if exists {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
			continue
		}
		if err := db.Exec(constraint.sql()).Error; err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", constraint.name, err)
		}
		logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
	}

	return nil
}

// createIndexes creates the indexes the model tags cannot express.
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_parcels_org_status", "CREATE INDEX IF NOT EXISTS idx_parcels_org_status ON parcels(organization_id, status)"},
		{"idx_parcels_parcel_type", "CREATE INDEX IF NOT EXISTS idx_parcels_parcel_type ON parcels(parcel_type)"},
		{"idx_parcel_status_histories_parcel_created", "CREATE INDEX IF NOT EXISTS idx_parcel_status_histories_parcel_created ON parcel_status_histories(parcel_id, created_at)"},
		{"idx_delivery_reviews_rating", "CREATE INDEX IF NOT EXISTS idx_delivery_reviews_rating ON delivery_reviews(rating)"},
		{"idx_delivery_routes_parcel_sequence", "CREATE INDEX IF NOT EXISTS idx_delivery_routes_parcel_sequence ON delivery_routes(parcel_id, route_sequence)"},
		{"idx_logs_method", "CREATE INDEX IF NOT EXISTS idx_logs_method ON logs(method)"},
		{"idx_logs_status_code", "CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create %s index: %w", idx.name, err)
		}
	}
	return nil
}

// CheckSchema reports which registered tables and foreign key policies are
// missing from the connected database.
func CheckSchema(db *gorm.DB) (missingTables, missingConstraints []string) {
	m := db.Migrator()
	for _, model := range Models() {
		if !m.HasTable(model) {
			stmt := &gorm.Statement{DB: db}
			if err := stmt.Parse(model); err == nil {
				missingTables = append(missingTables, stmt.Schema.Table)
			} else {
				missingTables = append(missingTables, fmt.Sprintf("%T", model))
			}
		}
	}
	for _, p := range foreignKeyPolicies {
		if m.HasTable(p.table) && !m.HasConstraint(p.table, p.name) {
			missingConstraints = append(missingConstraints, p.name)
		}
	}
	return missingTables, missingConstraints
}
