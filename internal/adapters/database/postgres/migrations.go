package postgres

import "github.com/Wassim-dev-wq/Qypym-back-sub001/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Match{},
	&entity.Notification{},
	&entity.NotificationPreference{},
	&entity.PushToken{},
}
