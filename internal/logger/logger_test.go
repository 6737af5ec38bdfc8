package logger_test

import (
	"testing"

	"github.com/tmms/tailor-master-service/internal/logger"
)

func TestLevelsAfterInit(t *testing.T) {
	logger.Init()
	// repeated Init must stay safe, packages call it independently in tests
	logger.Init()

	logger.Info("info line", "k", "v")
	logger.Warn("warn line", "err", "boom")
	logger.Error("error line", "err", "boom")
}
