//go:build wireinject

package app

import (
	"net/http"

	"github.com/google/wire"
	"github.com/gowvp/hawk/internal/conf"
	"github.com/gowvp/hawk/internal/data"
	"github.com/gowvp/hawk/internal/web/api"
)

func wireApp(bc *conf.Bootstrap) (http.Handler, func(), error) {
	panic(wire.Build(data.ProviderSet, api.ProviderSet))
}
