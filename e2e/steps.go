package e2e

import (
	"github.com/cucumber/godog"

	"firledger/e2e/steps/cases"
	"firledger/e2e/steps/common"
	"firledger/e2e/steps/requests"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	cases.RegisterSteps(ctx, tc)
	requests.RegisterSteps(ctx, tc)
}
