//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"firledger/internal/audit"
	auditpg "firledger/internal/audit/postgres"
	"firledger/pkg/testutil/containers"
)

type SinkSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	sink     *auditpg.Sink
}

func TestSinkSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SinkSuite))
}

func (s *SinkSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.sink = auditpg.New(s.postgres.DB)
	s.Require().NoError(s.sink.EnsureSchema(context.Background()))
}

func (s *SinkSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_events"))
}

func (s *SinkSuite) TestAppendAndListByRecord() {
	ctx := context.Background()
	t0 := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	s.Require().NoError(s.sink.Append(ctx, audit.Event{Timestamp: t0, RecordID: "c1", Kind: "FIR", Action: audit.ActionCaseCreated}))
	s.Require().NoError(s.sink.Append(ctx, audit.Event{Timestamp: t0.Add(time.Minute), RecordID: "c1", Kind: "FIR", Action: audit.ActionCaseUpdated, Status: "processing"}))
	s.Require().NoError(s.sink.Append(ctx, audit.Event{Timestamp: t0, RecordID: "other", Kind: "FIR", Action: audit.ActionCaseCreated}))

	events, err := s.sink.ListByRecord(ctx, "c1")
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(audit.ActionCaseCreated, events[0].Action)
	s.Equal("processing", events[1].Status)
	s.Equal(t0.Add(time.Minute), events[1].Timestamp)
}

func (s *SinkSuite) TestListUnknownRecordIsEmpty() {
	events, err := s.sink.ListByRecord(context.Background(), "nope")
	s.Require().NoError(err)
	s.Empty(events)
}
