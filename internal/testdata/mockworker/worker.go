package mockworker

import (
	"crm-analytics-service/internal/model"

	"github.com/stretchr/testify/mock"
)

type Worker struct {
	mock.Mock
}

func (m *Worker) Enqueue(entry model.ActivityLog) {
	m.Called(entry)
}

func (m *Worker) Shutdown() {
	m.Called()
}
