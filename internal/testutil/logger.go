package testutil

import (
	"go.uber.org/zap"

	"github.com/dtroode/escolas-server/internal/logger"
)

func MakeNoopLogger() *logger.Logger {
	return logger.FromZap(zap.NewNop())
}
