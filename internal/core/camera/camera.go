package camera

import (
	"github.com/ixugo/goddd/pkg/orm"
)

// Camera binds one logical camera to the Frigate instance that owns it.
type Camera struct {
	ID          string   `gorm:"primaryKey;size:64" json:"id"`
	Name        string   `gorm:"size:128" json:"name"`
	Instance    string   `gorm:"index;size:64" json:"instance"`     // frigate instance id
	FrigateName string   `gorm:"index;size:128" json:"frigate_name"` // backend-native camera name
	Labels      []string `gorm:"serializer:json" json:"labels"`      // default label filters
	Zones       []string `gorm:"serializer:json" json:"zones"`       // default zone filters
	Enabled     bool     `json:"enabled"`
	CreatedAt   orm.Time `json:"created_at"`
	UpdatedAt   orm.Time `json:"updated_at"`
}

func (Camera) TableName() string {
	return "cameras"
}
