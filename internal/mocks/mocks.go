package mocks

import (
	"github.com/stretchr/testify/mock"

	"message-hub/internal/models"
)

type HistoryProviderMock struct {
	mock.Mock
}

func (m *HistoryProviderMock) History(limit int) []models.Event {
	args := m.Called(limit)
	var events []models.Event
	if val := args.Get(0); val != nil {
		events = val.([]models.Event)
	}
	return events
}

type FileSubmitterMock struct {
	mock.Mock
}

func (m *FileSubmitterMock) SubmitFile(username string, info models.FileInfo) (models.Event, error) {
	args := m.Called(username, info)
	var event models.Event
	if val := args.Get(0); val != nil {
		event = val.(models.Event)
	}
	return event, args.Error(1)
}
