package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})

	shutdown := Setup(context.Background(), "event-ops", &config.Config{}, log)

	assert.NoError(t, shutdown(context.Background()))
}
