package web

import (
	"github.com/fourthandlong/playoffpool/internal/config"
	"go.uber.org/zap"
)

type webService struct {
	server *server
	config *config.Config
	log    *zap.Logger
}
