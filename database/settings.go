package database

import (
	"errors"
	"strings"

	"gatekeeper/models"

	"gorm.io/gorm"
)

// GetSetting returns a persisted key/value setting.
// ok is false when the key does not exist.
func GetSetting(db *gorm.DB, key string) (value string, ok bool, err error) {
	if db == nil {
		return "", false, errors.New("database not initialized")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errors.New("empty setting key")
	}

	var s models.AppSetting
	if err := db.First(&s, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return s.Value, true, nil
}

// SetSetting persists a key/value setting (upsert on key).
func SetSetting(db *gorm.DB, key, value string) error {
	if db == nil {
		return errors.New("database not initialized")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty setting key")
	}

	value = strings.TrimSpace(value)
	return db.Save(&models.AppSetting{Key: key, Value: value}).Error
}

// AllSettings returns every persisted setting.
func AllSettings(db *gorm.DB) ([]models.AppSetting, error) {
	if db == nil {
		return nil, errors.New("database not initialized")
	}

	var settings []models.AppSetting
	if err := db.Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
