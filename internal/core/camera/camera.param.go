package camera

import (
	"github.com/ixugo/goddd/pkg/web"
)

type FindCamerasInput struct {
	web.PagerFilter
	Instance string `form:"instance"` // frigate instance id
	Name     string `form:"name"`     // fuzzy match on display name
}

type AddCameraInput struct {
	Name        string   `json:"name" binding:"required"`
	Instance    string   `json:"instance" binding:"required"`
	FrigateName string   `json:"frigate_name" binding:"required"`
	Labels      []string `json:"labels"`
	Zones       []string `json:"zones"`
	Enabled     *bool    `json:"enabled"`
}

type EditCameraInput struct {
	Name        string   `json:"name"`
	Instance    string   `json:"instance"`
	FrigateName string   `json:"frigate_name"`
	Labels      []string `json:"labels"`
	Zones       []string `json:"zones"`
	Enabled     *bool    `json:"enabled"`
}
