package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm-analytics-service/internal/model"
	"crm-analytics-service/internal/testdata/mockclickhousebatch"
	"crm-analytics-service/internal/testdata/mockclickhouseconnection"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ReportRepositoryTestSuite struct {
	suite.Suite

	mockConn  *mockclickhouseconnection.Connection
	mockBatch *mockclickhousebatch.Batch
	repo      ReportRepository
}

func TestReportRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReportRepositoryTestSuite))
}

func (s *ReportRepositoryTestSuite) SetupTest() {
	s.mockConn = new(mockclickhouseconnection.Connection)
	s.mockBatch = new(mockclickhousebatch.Batch)
	s.repo = NewReportRepository(s.mockConn)
}

func (s *ReportRepositoryTestSuite) TestCreateActivityBatch_EmptyIsNoOp() {
	err := s.repo.CreateActivityBatch(context.Background(), nil)

	s.NoError(err)
	s.mockConn.AssertNotCalled(s.T(), "PrepareBatch", mock.Anything, mock.Anything)
}

func (s *ReportRepositoryTestSuite) TestCreateActivityBatch_Success() {
	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	entries := []model.ActivityLog{
		{
			ID:             "e1",
			BDR:            "Ana",
			ActivityType:   model.ActivityStatusChange,
			Timestamp:      ts,
			PipelineItemID: "p1",
			PreviousStatus: "Call Booked",
			NewStatus:      "Sold",
			Notes:          "closed on the call",
		},
	}

	s.mockConn.On("PrepareBatch", mock.Anything, insertActivityQuery).Return(s.mockBatch, nil)
	// Optional fields ride as NULL when absent; lead_id is empty here.
	s.mockBatch.On("Append",
		"e1", "Ana", model.ActivityStatusChange, ts,
		"p1", nil, "Call Booked", "Sold",
		"closed on the call", "",
	).Return(nil)
	s.mockBatch.On("Send").Return(nil)

	err := s.repo.CreateActivityBatch(context.Background(), entries)

	s.NoError(err)
	s.mockConn.AssertExpectations(s.T())
	s.mockBatch.AssertExpectations(s.T())
}

func (s *ReportRepositoryTestSuite) TestCreateActivityBatch_PrepareError() {
	s.mockConn.On("PrepareBatch", mock.Anything, insertActivityQuery).
		Return(nil, errors.New("connection reset"))

	err := s.repo.CreateActivityBatch(context.Background(), []model.ActivityLog{{ID: "e1"}})

	s.Error(err)
	s.Contains(err.Error(), "prepare batch")
}

func (s *ReportRepositoryTestSuite) TestCreateActivityBatch_AppendError() {
	s.mockConn.On("PrepareBatch", mock.Anything, insertActivityQuery).Return(s.mockBatch, nil)
	s.mockBatch.On("Append",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything,
	).Return(errors.New("bad column"))

	err := s.repo.CreateActivityBatch(context.Background(), []model.ActivityLog{{ID: "e1"}})

	s.Error(err)
	s.Contains(err.Error(), "append batch")
	s.mockBatch.AssertNotCalled(s.T(), "Send")
}

func (s *ReportRepositoryTestSuite) TestCreateActivityBatch_SendError() {
	s.mockConn.On("PrepareBatch", mock.Anything, insertActivityQuery).Return(s.mockBatch, nil)
	s.mockBatch.On("Append",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything,
	).Return(nil)
	s.mockBatch.On("Send").Return(errors.New("timeout"))

	err := s.repo.CreateActivityBatch(context.Background(), []model.ActivityLog{{ID: "e1"}})

	s.Error(err)
	s.Contains(err.Error(), "send batch")
}

func (s *ReportRepositoryTestSuite) TestFetchPipelineItems() {
	parent := "list-1"
	s.mockConn.On("Select", mock.Anything, mock.Anything, selectPipelineItemsQuery, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*[]pipelineItemRow)
			*dest = []pipelineItemRow{
				{ID: "p1", BDR: "Ana", Status: "Call Booked", Probability: 10},
				{ID: "c1", BDR: "Ana", Status: "Contacted", ParentID: &parent},
			}
		}).Return(nil)

	items, err := s.repo.FetchPipelineItems(context.Background())

	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("p1", items[0].ID)
	s.Equal(10, items[0].Probability)
	s.Equal("", items[0].ParentID, "NULL parent maps to empty string")
	s.Equal("list-1", items[1].ParentID)
}

func (s *ReportRepositoryTestSuite) TestFetchPipelineItems_Error() {
	s.mockConn.On("Select", mock.Anything, mock.Anything, selectPipelineItemsQuery, mock.Anything).
		Return(errors.New("table missing"))

	_, err := s.repo.FetchPipelineItems(context.Background())

	s.Error(err)
	s.Contains(err.Error(), "fetch pipeline items")
}

func (s *ReportRepositoryTestSuite) TestFetchActivityLogs() {
	from := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 23, 23, 59, 59, 0, time.UTC)
	itemID := "p1"

	s.mockConn.On("Select", mock.Anything, mock.Anything, selectActivityLogsQuery, []interface{}{from, to}).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*[]activityLogRow)
			*dest = []activityLogRow{
				{ID: "l1", BDR: "Ana", ActivityType: model.ActivityCallCompleted, Timestamp: from.Add(time.Hour), PipelineItemID: &itemID},
			}
		}).Return(nil)

	logs, err := s.repo.FetchActivityLogs(context.Background(), from, to)

	s.Require().NoError(err)
	s.Require().Len(logs, 1)
	s.Equal("p1", logs[0].PipelineItemID)
	s.Equal("", logs[0].PreviousStatus)
}

func (s *ReportRepositoryTestSuite) TestFetchFinanceEntries() {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)

	s.mockConn.On("Select", mock.Anything, mock.Anything, selectFinanceEntriesQuery, []interface{}{from, to}).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*[]financeEntryRow)
			*dest = []financeEntryRow{
				{ID: "f1", BDR: "Ana", InvoiceDate: from.AddDate(0, 1, 0), GBPAmount: 1200, Status: "paid"},
			}
		}).Return(nil)

	entries, err := s.repo.FetchFinanceEntries(context.Background(), from, to)

	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(1200.0, entries[0].GBPAmount)
}

func (s *ReportRepositoryTestSuite) TestFetchKPITargets() {
	s.mockConn.On("Select", mock.Anything, mock.Anything, selectKPITargetsQuery, mock.Anything).
		Run(func(args mock.Arguments) {
			dest := args.Get(1).(*[]kpiTargetRow)
			*dest = []kpiTargetRow{
				{Name: model.TargetWeeklyCalls, Value: 15},
			}
		}).Return(nil)

	targets, err := s.repo.FetchKPITargets(context.Background())

	s.Require().NoError(err)
	s.Require().Len(targets, 1)
	s.Equal(15.0, targets[0].Value)
}

func TestNullIfEmpty(t *testing.T) {
	s := require.New(t)
	s.Nil(nullIfEmpty(""))
	s.Equal("p1", nullIfEmpty("p1"))
}
