package cases

import (
	"strings"

	"github.com/cucumber/godog"

	"firledger/pkg/hexcodec"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Invoke(fn string, args ...string) error
	Remember(alias string) error
	ID(alias string) string
}

// RegisterSteps registers case-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &caseSteps{tc: tc}

	ctx.Step(`^citizen "([^"]*)" files case "([^"]*)" in "([^"]*)", "([^"]*)" naming suspects "([^"]*)"$`, steps.fileCase)
	ctx.Step(`^citizen "([^"]*)" views case "([^"]*)"$`, steps.citizenViewsCase)
	ctx.Step(`^citizen "([^"]*)" lists the cases filed against them$`, steps.listCasesAgainst)
	ctx.Step(`^officer "([^"]*)" views case "([^"]*)"$`, steps.officerViewsCase)
	ctx.Step(`^officer "([^"]*)" lists "([^"]*)" records$`, steps.officerListsRecords)
	ctx.Step(`^officer "([^"]*)" sets case "([^"]*)" to "([^"]*)"$`, steps.setCaseStatus)
	ctx.Step(`^officer "([^"]*)" updates case "([^"]*)" to "([^"]*)" naming culprits "([^"]*)" with statement "([^"]*)"$`, steps.updateCase)
	ctx.Step(`^officer "([^"]*)" counts the cases naming "([^"]*)"$`, steps.countCases)
}

type caseSteps struct {
	tc TestContext
}

func (s *caseSteps) fileCase(reporter, alias, state, city, suspects string) error {
	err := s.tc.Invoke("createFIRRequest",
		reporter,
		hexcodec.EncodeText("Reporter "+reporter),
		"9800000000",
		"theft",
		reporter+"@mail.in",
		hexcodec.EncodeText("reported by "+reporter),
		state,
		city,
		"2024-02-28",
		hexcodec.EncodeList(splitList(suspects)),
	)
	if err != nil {
		return err
	}
	return s.tc.Remember(alias)
}

func (s *caseSteps) citizenViewsCase(person, alias string) error {
	return s.tc.Invoke("getFIRDetailsByUser", s.tc.ID(alias), person)
}

func (s *caseSteps) listCasesAgainst(person string) error {
	return s.tc.Invoke("getAllFIRRegisteredAgainstUser", person)
}

func (s *caseSteps) officerViewsCase(officer, alias string) error {
	return s.tc.Invoke("getFIRDetailsByPolice", s.tc.ID(alias), officer)
}

func (s *caseSteps) officerListsRecords(officer, kind string) error {
	return s.tc.Invoke("getAllFIRByPolice", officer, kind)
}

func (s *caseSteps) setCaseStatus(officer, alias, status string) error {
	return s.tc.Invoke("updateFIRStatusByPolice", officer, s.tc.ID(alias), status)
}

func (s *caseSteps) updateCase(officer, alias, status, culprits, statement string) error {
	named := hexcodec.EncodeList(splitList(culprits))
	return s.tc.Invoke("updateFIRByPolice",
		officer,
		s.tc.ID(alias),
		named,
		status,
		hexcodec.EncodeText(statement),
		named,
	)
}

func (s *caseSteps) countCases(officer, person string) error {
	return s.tc.Invoke("getFIROfUserByPolice", person, officer)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
