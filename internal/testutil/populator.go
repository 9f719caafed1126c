package testutil

import (
	"fmt"
	"time"

	"assettrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded user.
const DefaultPassword = "password123"

// PopulateUsers seeds three active users (technician, manager, admin) and one
// inactive technician, keyed user1 to user4.
func PopulateUsers(db *gorm.DB) (map[string]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := []*models.User{
		{FirstName: "John", LastName: "Doe", Phone: "12345678", Email: "Johndoe@mail.dk", Role: models.RoleTechnician, Active: true},
		{FirstName: "Jane", LastName: "Doe", Phone: "23456789", Email: "Janedoe@mail.dk", Role: models.RoleManager, Active: true},
		{FirstName: "Jeff", LastName: "Doe", Phone: "34567890", Email: "Jeffdoe@mail.dk", Role: models.RoleAdmin, Active: true},
		{FirstName: "Clark", LastName: "Kent", Phone: "00000000", Email: "Clarkkent@mail.dk", Role: models.RoleTechnician, Active: false},
	}

	result := make(map[string]*models.User, len(users))
	err = db.Transaction(func(tx *gorm.DB) error {
		for i, u := range users {
			u.PasswordHash = string(hash)
			if err := tx.Create(u).Error; err != nil {
				return err
			}
			result[fmt.Sprintf("user%d", i+1)] = u
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PopulateAssets seeds machines A to C as active and machine D as inactive,
// keyed asset1 to asset4.
func PopulateAssets(db *gorm.DB) (map[string]*models.Asset, error) {
	assets := []*models.Asset{
		{Name: "Machine A", Description: "Primary production machine", Active: true},
		{Name: "Machine B", Description: "Secondary production machine", Active: true},
		{Name: "Machine C", Description: "Backup machine", Active: true},
		{Name: "Machine D", Description: "Decommissioned machine", Active: false},
	}

	result := make(map[string]*models.Asset, len(assets))
	err := db.Transaction(func(tx *gorm.DB) error {
		for i, a := range assets {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
			result[fmt.Sprintf("asset%d", i+1)] = a
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// PopulateMaintenanceLogs seeds six logs across the given users and assets,
// keyed log1 to log6. log6 belongs to the inactive asset4.
func PopulateMaintenanceLogs(db *gorm.DB, users map[string]*models.User, assets map[string]*models.Asset) (map[string]*models.MaintenanceLog, error) {
	type seed struct {
		date    datatypes.Date
		status  models.LogStatus
		task    models.TaskType
		comment string
		asset   string
		user    string
	}
	seeds := []seed{
		{models.Date(2024, time.January, 15), models.LogStatusDone, models.TaskMaintenance, "Regular maintenance completed", "asset1", "user1"},
		{models.Date(2024, time.February, 10), models.LogStatusDone, models.TaskProduction, "Production run successful", "asset1", "user1"},
		{models.Date(2024, time.March, 5), models.LogStatusFailed, models.TaskError, "Error occurred during operation", "asset2", "user2"},
		{models.Date(2024, time.April, 20), models.LogStatusDone, models.TaskMaintenance, "Preventive maintenance", "asset2", "user1"},
		{models.Date(2024, time.May, 15), models.LogStatusDone, models.TaskProduction, "Production completed", "asset3", "user2"},
		{models.Date(2024, time.June, 1), models.LogStatusFailed, models.TaskError, "Machine malfunction", "asset4", "user1"},
	}

	result := make(map[string]*models.MaintenanceLog, len(seeds))
	err := db.Transaction(func(tx *gorm.DB) error {
		for i, s := range seeds {
			asset, ok := assets[s.asset]
			if !ok {
				return fmt.Errorf("missing seed %s", s.asset)
			}
			user, ok := users[s.user]
			if !ok {
				return fmt.Errorf("missing seed %s", s.user)
			}

			log := &models.MaintenanceLog{
				PerformedDate:     s.date,
				Status:            s.status,
				TaskType:          s.task,
				Comment:           s.comment,
				AssetID:           asset.ID,
				PerformedByUserID: user.ID,
			}
			if err := tx.Create(log).Error; err != nil {
				return err
			}
			result[fmt.Sprintf("log%d", i+1)] = log
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Populate resets db and seeds users, assets and logs.
func Populate(db *gorm.DB) (map[string]*models.User, map[string]*models.Asset, map[string]*models.MaintenanceLog, error) {
	if err := Reset(db); err != nil {
		return nil, nil, nil, err
	}
	users, err := PopulateUsers(db)
	if err != nil {
		return nil, nil, nil, err
	}
	assets, err := PopulateAssets(db)
	if err != nil {
		return nil, nil, nil, err
	}
	logs, err := PopulateMaintenanceLogs(db, users, assets)
	if err != nil {
		return nil, nil, nil, err
	}
	return users, assets, logs, nil
}
