package common

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"firledger/internal/contract"
	dErrors "firledger/pkg/domain-errors"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	Response() contract.Response
	Err() error
	AdvanceClock(d time.Duration)
}

// RegisterSteps registers outcome assertions shared by every feature
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^(\d+) days? pass(?:es)?$`, steps.daysPass)

	ctx.Step(`^the operation should succeed$`, steps.shouldSucceed)
	ctx.Step(`^the operation should be rejected with "([^"]*)"$`, steps.shouldBeRejectedWith)
	ctx.Step(`^the operation should fail with code "([^"]*)"$`, steps.shouldFailWithCode)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response should list (\d+) records?$`, steps.shouldListN)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) daysPass(days int) error {
	s.tc.AdvanceClock(time.Duration(days) * 24 * time.Hour)
	return nil
}

func (s *commonSteps) shouldSucceed() error {
	if err := s.tc.Err(); err != nil {
		return fmt.Errorf("expected success, got error: %w", err)
	}
	if resp := s.tc.Response(); resp.Rejected() {
		return fmt.Errorf("expected success, got rejection %q", resp.Rejection)
	}
	return nil
}

func (s *commonSteps) shouldBeRejectedWith(reason string) error {
	if err := s.tc.Err(); err != nil {
		return fmt.Errorf("expected rejection, got error: %w", err)
	}
	if got := s.tc.Response().Rejection; got != reason {
		return fmt.Errorf("expected rejection %q, got %q", reason, s.tc.Response().String())
	}
	return nil
}

func (s *commonSteps) shouldFailWithCode(code string) error {
	err := s.tc.Err()
	if err == nil {
		return fmt.Errorf("expected error %s, got %q", code, s.tc.Response().String())
	}
	if !dErrors.HasCode(err, dErrors.Code(code)) {
		return fmt.Errorf("expected error %s, got %s: %v", code, dErrors.CodeOf(err), err)
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(field, want string) error {
	if err := s.shouldSucceed(); err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(s.tc.Response().Payload, &doc); err != nil {
		return fmt.Errorf("response is not an object: %w", err)
	}
	value, ok := doc[field]
	if !ok {
		return fmt.Errorf("response has no field %q", field)
	}
	// Feature files spell newlines as \n.
	want = strings.ReplaceAll(want, `\n`, "\n")
	if got := render(value); got != want {
		return fmt.Errorf("field %q: expected %q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) shouldListN(n int) error {
	if err := s.shouldSucceed(); err != nil {
		return err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(s.tc.Response().Payload, &items); err != nil {
		return fmt.Errorf("response is not a list: %w", err)
	}
	if len(items) != n {
		return fmt.Errorf("expected %d records, got %d", n, len(items))
	}
	return nil
}

func render(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}
