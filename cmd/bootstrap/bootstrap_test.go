package bootstrap

import (
	"testing"

	"pharmacy-backend/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	log := setupLogger(config.AppConfig{LogLevel: "debug"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = setupLogger(config.AppConfig{LogLevel: "chatty"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestCloseWithoutConnections(t *testing.T) {
	app := &App{Log: logrus.New()}
	assert.NotPanics(t, app.Close)
}
