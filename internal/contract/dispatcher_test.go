package contract_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	bgservice "firledger/internal/backgroundcheck/service"
	casemodels "firledger/internal/cases/models"
	caseservice "firledger/internal/cases/service"
	"firledger/internal/contract"
	"firledger/internal/contract/mocks"
	"firledger/internal/identity"
	"firledger/internal/ledger/memory"
	"firledger/internal/query"
	"firledger/internal/workflow"
	"firledger/pkg/domain"
	dErrors "firledger/pkg/domain-errors"
	"firledger/pkg/hexcodec"
	"firledger/pkg/outcome"
	"firledger/pkg/requestcontext"
)

const (
	officer = "police.karnataka.bengaluru@ksp.gov.in"
	citizen = "citizen.karnataka.bengaluru@mail.in"
	hr      = "hr@acme.in"
)

var filedAt = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

func newDispatcher() *contract.Dispatcher {
	store := memory.New()
	engine := query.New(store)
	return contract.New(caseservice.New(store, engine), bgservice.New(store, engine))
}

func invoke(t *testing.T, d *contract.Dispatcher, ctx context.Context, fn string, args ...string) contract.Response {
	t.Helper()
	resp, err := d.Invoke(ctx, fn, args...)
	require.NoError(t, err)
	return resp
}

func createdID(t *testing.T, resp contract.Response) string {
	t.Helper()
	var created contract.Created
	require.NoError(t, json.Unmarshal(resp.Payload, &created))
	require.NotEmpty(t, created.ID)
	return created.ID.String()
}

func fileCase(t *testing.T, d *contract.Dispatcher, ctx context.Context, reporter string, suspects ...string) string {
	t.Helper()
	return createdID(t, invoke(t, d, ctx, "createFIRRequest",
		reporter,
		hexcodec.EncodeText("Asha"),
		"9800000000",
		"theft",
		"asha@mail.in",
		hexcodec.EncodeText("bicycle stolen"),
		"karnataka",
		"bengaluru",
		"2024-01-30",
		hexcodec.EncodeList(suspects),
	))
}

func TestCaseLifecycleThroughOperations(t *testing.T) {
	d := newDispatcher()
	ctx := requestcontext.WithTime(context.Background(), filedAt)
	id := fileCase(t, d, ctx, "1111", "2222")

	var view contract.CaseView
	resp := invoke(t, d, ctx, "getFIRDetailsByUser", id, "1111")
	require.False(t, resp.Rejected())
	require.NoError(t, json.Unmarshal(resp.Payload, &view))
	assert.Equal(t, "Asha", view.Name)
	assert.Equal(t, "bicycle stolen", view.Description)
	assert.Equal(t, []string{"2222"}, view.Suspects)
	assert.Equal(t, workflow.StatusPending, view.Status)
	assert.Equal(t, "pending", view.CaseCloseDate)
	assert.Equal(t, "", view.PoliceStatement)

	resp = invoke(t, d, ctx, "getFIRDetailsByUser", id, "9999")
	assert.Equal(t, outcome.ReasonUnauthorized, resp.String())

	updatedAt := filedAt.Add(24 * time.Hour)
	resp = invoke(t, d, requestcontext.WithTime(context.Background(), updatedAt), "updateFIRByPolice",
		officer, id,
		hexcodec.EncodeList([]string{"2222", "3333"}),
		"approved",
		hexcodec.EncodeText("witness interviewed"),
		hexcodec.EncodeList(nil),
	)
	require.False(t, resp.Rejected(), resp.String())
	require.NoError(t, json.Unmarshal(resp.Payload, &view))
	assert.Equal(t, workflow.StatusProcessing, view.Status)
	assert.Equal(t, "\n2024-02-02T09:00:00Z\nwitness interviewed", view.PoliceStatement)

	resp = invoke(t, d, ctx, "updateFIRStatusByPolice", officer, id, "pending")
	assert.Equal(t, workflow.ReasonInProgress, resp.String())

	closedAt := filedAt.Add(72 * time.Hour)
	resp = invoke(t, d, requestcontext.WithTime(context.Background(), closedAt), "updateFIRStatusByPolice", officer, id, "closed")
	require.False(t, resp.Rejected(), resp.String())
	require.NoError(t, json.Unmarshal(resp.Payload, &view))
	assert.Equal(t, "2024-02-04T09:00:00Z", view.CaseCloseDate)

	resp = invoke(t, d, ctx, "updateFIRStatusByPolice", officer, id, "processing")
	assert.Equal(t, workflow.ReasonAlreadyClosed, resp.String())

	var counts map[string]int
	resp = invoke(t, d, ctx, "getFIROfUserByPolice", "3333", officer)
	require.NoError(t, json.Unmarshal(resp.Payload, &counts))
	assert.Equal(t, map[string]int{"suspectCount": 0, "culpritCount": 0, "activeCases": 0, "closedCases": 0}, counts)
}

func TestCitizenListings(t *testing.T) {
	d := newDispatcher()
	ctx := requestcontext.WithTime(context.Background(), filedAt)
	id := fileCase(t, d, ctx, "1111", "2222")
	_ = fileCase(t, d, ctx, "4444")

	var items []query.Item[contract.CaseView]
	resp := invoke(t, d, ctx, "getAllFIRRegisteredByUser", "1111")
	require.NoError(t, json.Unmarshal(resp.Payload, &items))
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].Key)
	assert.Equal(t, "pending", items[0].Record.CaseCloseDate)

	resp = invoke(t, d, ctx, "getAllFIRRegisteredAgainstUser", "2222")
	require.NoError(t, json.Unmarshal(resp.Payload, &items))
	require.Len(t, items, 1)

	resp = invoke(t, d, ctx, "getAllFIRRegisteredAgainstUser", "7777")
	assert.Equal(t, "[]", resp.String())
}

func TestPoliceListingAndLookup(t *testing.T) {
	d := newDispatcher()
	ctx := requestcontext.WithTime(context.Background(), filedAt)
	id := fileCase(t, d, ctx, "1111")

	resp := invoke(t, d, ctx, "getAllFIRByPolice", citizen, "FIR")
	assert.Equal(t, outcome.ReasonUnauthorized, resp.String())

	var raw []query.Item[map[string]any]
	resp = invoke(t, d, ctx, "getAllFIRByPolice", officer, "FIR")
	require.NoError(t, json.Unmarshal(resp.Payload, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, id, raw[0].Key)
	assert.Equal(t, "FIR", raw[0].Record["kind"])

	assert.Equal(t, "pending", raw[0].Record["caseCloseDate"])
	assert.IsType(t, "", raw[0].Record["policeStatement"])
	assert.NotContains(t, raw[0].Record, "closedAt")

	resp = invoke(t, d, ctx, "getFIRDetailsByPolice", id, "police.karnataka.mysuru@ksp.gov.in")
	assert.False(t, resp.Rejected(), "single lookups accept a state match")

	resp = invoke(t, d, ctx, "getFIRDetailsByPolice", id, "police.kerala.kochi@kp.gov.in")
	assert.Equal(t, outcome.ReasonUnauthorized, resp.String())
}

func TestJurisdictionListingMatchesDetailView(t *testing.T) {
	d := newDispatcher()
	ctx := requestcontext.WithTime(context.Background(), filedAt)
	id := fileCase(t, d, ctx, "1111")

	resp := invoke(t, d, ctx, "updateFIRByPolice",
		officer, id,
		hexcodec.EncodeList(nil),
		"approved",
		hexcodec.EncodeText("done"),
		hexcodec.EncodeList(nil),
	)
	require.False(t, resp.Rejected(), resp.String())
	resp = invoke(t, d, ctx, "updateFIRStatusByPolice", officer, id, "closed")
	require.False(t, resp.Rejected(), resp.String())

	var detail contract.CaseView
	resp = invoke(t, d, ctx, "getFIRDetailsByPolice", id, officer)
	require.NoError(t, json.Unmarshal(resp.Payload, &detail))

	var listed []query.Item[contract.CaseView]
	resp = invoke(t, d, ctx, "getAllFIRByPolice", officer, "FIR")
	require.NoError(t, json.Unmarshal(resp.Payload, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, detail, listed[0].Record)
	assert.Equal(t, "\n2024-02-01T09:00:00Z\ndone", listed[0].Record.PoliceStatement)
	assert.Equal(t, "2024-02-01T09:00:00Z", listed[0].Record.CaseCloseDate)

	_ = createdID(t, invoke(t, d, ctx, "createBackgroundCheckRequest",
		hexcodec.EncodeText("PAN"), "ABCDE1234F", hexcodec.EncodeText("Acme HR"), hr,
		"karnataka", "bengaluru",
		hexcodec.EncodeText("employment"), hexcodec.EncodeText("verification"),
		hexcodec.EncodeText("Asha"), "1111",
	))
	var requests []query.Item[contract.RequestView]
	resp = invoke(t, d, ctx, "getAllFIRByPolice", officer, "backgroundCheck")
	require.NoError(t, json.Unmarshal(resp.Payload, &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, workflow.StatusPending, requests[0].Record.Status)
	assert.Equal(t, "", requests[0].Record.StatusUpdatedAt)
}

func TestBackgroundCheckThroughOperations(t *testing.T) {
	d := newDispatcher()
	ctx := requestcontext.WithTime(context.Background(), filedAt)
	_ = fileCase(t, d, ctx, "7777")

	args := []string{
		hexcodec.EncodeText("PAN"), "ABCDE1234F", hexcodec.EncodeText("Acme HR"), hr,
		"karnataka", "bengaluru",
		hexcodec.EncodeText("employment"), hexcodec.EncodeText("verification"),
		hexcodec.EncodeText("Ravi"), "7777",
	}
	check := createdID(t, invoke(t, d, ctx, "createBackgroundCheckRequest", args...))
	grant := createdID(t, invoke(t, d, ctx, "createViewFIRsRequest", args...))

	var requests []query.Item[contract.RequestView]
	resp := invoke(t, d, ctx, "getAllbackgroundCheckRequests", hr)
	require.NoError(t, json.Unmarshal(resp.Payload, &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, check, requests[0].Key)
	assert.Equal(t, "", requests[0].Record.StatusUpdatedAt)

	resp = invoke(t, d, ctx, "getBackgroundCheckRequestDetails", "someone@else.in", check)
	assert.Equal(t, outcome.ReasonUnauthorized, resp.String())

	resp = invoke(t, d, ctx, "getAllFIRsOfUserByPolice", grant, hr)
	assert.Equal(t, bgservice.ReasonGrantPending, resp.String())

	resp = invoke(t, d, ctx, "updateBackgroundCheckRequestByPolice", "police.kerala.kochi@kp.gov.in", grant, "approved", "")
	assert.Equal(t, outcome.ReasonUnauthorized, resp.String())

	resp = invoke(t, d, ctx, "updateBackgroundCheckRequestByPolice", officer, grant, "approved", hexcodec.EncodeText("ok"))
	require.False(t, resp.Rejected(), resp.String())
	var view contract.RequestView
	require.NoError(t, json.Unmarshal(resp.Payload, &view))
	assert.Equal(t, "2024-02-01T09:00:00Z", view.StatusUpdatedAt)
	assert.Equal(t, "ok", view.OfficerComments)

	resp = invoke(t, d, ctx, "updateBackgroundCheckRequestByPolice", officer, grant, "declined", "")
	assert.Equal(t, workflow.ReasonAlreadyUpdated, resp.String())

	var cases []query.Item[contract.CaseView]
	resp = invoke(t, d, ctx, "getAllFIRsOfUserByPolice", grant, hr)
	require.NoError(t, json.Unmarshal(resp.Payload, &cases))
	require.Len(t, cases, 1)
	assert.Equal(t, "7777", cases[0].Record.ReporterID)

	resp = invoke(t, d, ctx, "getAllFIRsOfUserByPolice", check, hr)
	assert.Equal(t, bgservice.ReasonNotAGrant, resp.String())
}

func TestInvokeValidatesArguments(t *testing.T) {
	d := newDispatcher()

	_, err := d.Invoke(context.Background(), "dropTables")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))

	_, err = d.Invoke(context.Background(), "getAllFIRRegisteredByUser")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	assert.Contains(t, err.Error(), "expects 1 arguments, got 0")

	_, err = d.Invoke(context.Background(), "getFIRDetailsByUser", "missing", "1111")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = d.Invoke(context.Background(), "createFIRRequest",
		"1111", hexcodec.EncodeText("Asha"), "9800000000", "theft", "asha@mail.in",
		hexcodec.EncodeText("bicycle stolen"), "karnataka", "bengaluru", "2024-01-30",
		hexcodec.EncodeText(`["2222"] trailing junk`),
	)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	resp := invoke(t, d, context.Background(), "getAllFIRRegisteredByUser", "1111")
	assert.Equal(t, "[]", resp.String())
}

func TestOperationsAreSorted(t *testing.T) {
	ops := newDispatcher().Operations()
	require.Len(t, ops, 15)
	for i := 1; i < len(ops); i++ {
		assert.Less(t, ops[i-1].Name, ops[i].Name)
	}
	assert.Equal(t, "createBackgroundCheckRequest", ops[0].Name)
	assert.Len(t, ops[0].Params, 10)
}

func TestDispatcherDelegatesToServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	cases := mocks.NewMockCaseService(ctrl)
	requests := mocks.NewMockRequestService(ctrl)
	d := contract.New(cases, requests)
	ctx := context.Background()

	t.Run("identity strings are parsed", func(t *testing.T) {
		cases.EXPECT().
			UpdateCaseStatus(ctx, identity.Parse(officer), domain.RecordID("c-1"), workflow.StatusDeclined).
			Return(outcome.Reject[casemodels.Case](workflow.ReasonAlreadyDeclined), nil)

		resp, err := d.Invoke(ctx, "updateFIRStatusByPolice", officer, "c-1", "declined")
		require.NoError(t, err)
		assert.Equal(t, workflow.ReasonAlreadyDeclined, resp.Rejection)
		assert.Nil(t, resp.Payload)
	})

	t.Run("service errors pass through", func(t *testing.T) {
		boom := dErrors.Wrap(errors.New("disk"), dErrors.CodeInternal, "ledger failure")
		requests.EXPECT().RequestsFor(ctx, hr).Return(nil, boom)

		_, err := d.Invoke(ctx, "getAllbackgroundCheckRequests", hr)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("argument order", func(t *testing.T) {
		requests.EXPECT().
			CandidateCasesViaGrant(ctx, domain.RecordID("g-1"), hr).
			Return(outcome.Reject[[]query.Item[casemodels.Case]](bgservice.ReasonGrantDeclined), nil)

		resp, err := d.Invoke(ctx, "getAllFIRsOfUserByPolice", "g-1", hr)
		require.NoError(t, err)
		assert.Equal(t, bgservice.ReasonGrantDeclined, resp.String())
	})
}
