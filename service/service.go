package service

import (
	"gorm.io/gorm"
)

// Services is the global service container
type Services struct {
	Post     *PostService
	Settings *SettingsService
}

// GlobalServices is the global service instance
var GlobalServices *Services

// InitServices initializes all services. The settings service is constructed
// by the caller because the notifier needs it before the container exists.
func InitServices(db *gorm.DB, settings *SettingsService, notifier Notifier, callback CallbackSender) {
	GlobalServices = &Services{
		Post:     NewPostService(db, notifier, callback),
		Settings: settings,
	}
}
