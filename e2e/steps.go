package e2e

import (
	"github.com/cucumber/godog"

	"formtrail/e2e/steps/common"
	"formtrail/e2e/steps/submission"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register submission-specific steps
	submission.RegisterSteps(ctx, tc)
}
