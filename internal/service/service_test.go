package service

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shenikar/event_ops_system/internal/config"
	"github.com/shenikar/event_ops_system/internal/models"
	"github.com/shenikar/event_ops_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestStore создает мок хранилища и логгер без вывода
func newTestStore(t *testing.T) (*mocks.MockDocumentStore, *logrus.Logger) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockDocumentStore(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return store, logger
}

func testConfig() *config.Config {
	return &config.Config{
		CapacityPerStaff:      8,
		IssueSLAHours:         24,
		TaskDefaultSLAMinutes: 60,
		ShiftTypes:            []string{"red", "orange", "green"},
	}
}

// doc упаковывает значение в документ хранилища
func doc(t *testing.T, id string, v any) models.Document {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return models.Document{ID: id, Data: data}
}
