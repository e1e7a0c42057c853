package handler

import (
	"plumchat/internal/app/server"
	"plumchat/internal/configs"
)

type AppDeps struct {
	Room   *server.Room
	Config *configs.AppConfig
}
