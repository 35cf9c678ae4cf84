package requests

import (
	"github.com/cucumber/godog"

	"firledger/pkg/hexcodec"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Invoke(fn string, args ...string) error
	Remember(alias string) error
	ID(alias string) string
}

// RegisterSteps registers background-check and view-grant step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &requestSteps{tc: tc}

	ctx.Step(`^"([^"]*)" requests background check "([^"]*)" on candidate "([^"]*)" in "([^"]*)", "([^"]*)"$`, steps.requestCheck)
	ctx.Step(`^"([^"]*)" requests view grant "([^"]*)" on candidate "([^"]*)" in "([^"]*)", "([^"]*)"$`, steps.requestGrant)
	ctx.Step(`^"([^"]*)" views request "([^"]*)"$`, steps.viewRequest)
	ctx.Step(`^"([^"]*)" lists their background checks$`, steps.listRequests)
	ctx.Step(`^officer "([^"]*)" marks request "([^"]*)" as "([^"]*)" with comments "([^"]*)"$`, steps.review)
	ctx.Step(`^"([^"]*)" lists the candidate cases of "([^"]*)"$`, steps.candidateCases)
}

type requestSteps struct {
	tc TestContext
}

func (s *requestSteps) args(email, candidate, state, city string) []string {
	return []string{
		hexcodec.EncodeText("PAN"),
		"ABCDE1234F",
		hexcodec.EncodeText("Requester " + email),
		email,
		state,
		city,
		hexcodec.EncodeText("employment"),
		hexcodec.EncodeText("pre-joining verification"),
		hexcodec.EncodeText("Candidate " + candidate),
		candidate,
	}
}

func (s *requestSteps) requestCheck(email, alias, candidate, state, city string) error {
	if err := s.tc.Invoke("createBackgroundCheckRequest", s.args(email, candidate, state, city)...); err != nil {
		return err
	}
	return s.tc.Remember(alias)
}

func (s *requestSteps) requestGrant(email, alias, candidate, state, city string) error {
	if err := s.tc.Invoke("createViewFIRsRequest", s.args(email, candidate, state, city)...); err != nil {
		return err
	}
	return s.tc.Remember(alias)
}

func (s *requestSteps) viewRequest(email, alias string) error {
	return s.tc.Invoke("getBackgroundCheckRequestDetails", email, s.tc.ID(alias))
}

func (s *requestSteps) listRequests(email string) error {
	return s.tc.Invoke("getAllbackgroundCheckRequests", email)
}

func (s *requestSteps) review(officer, alias, status, comments string) error {
	return s.tc.Invoke("updateBackgroundCheckRequestByPolice", officer, s.tc.ID(alias), status, hexcodec.EncodeText(comments))
}

func (s *requestSteps) candidateCases(email, alias string) error {
	return s.tc.Invoke("getAllFIRsOfUserByPolice", s.tc.ID(alias), email)
}
