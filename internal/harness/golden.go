package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RenderTrace formats a result as the plain-text trace stored in golden
// files.
func RenderTrace(result *Result) string {
	var b strings.Builder
	b.WriteString("scenario: " + result.Scenario.Name + "\n")
	for _, step := range result.Steps {
		b.WriteString(step.Label + "\n")
		if len(step.Events) == 0 {
			b.WriteString("  (no output)\n")
			continue
		}
		for _, event := range step.Events {
			b.WriteString("  " + event + "\n")
		}
	}
	return b.String()
}

// RunGolden replays a scenario file and compares its rendered trace
// against testdata/golden/<name>.golden.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
func RunGolden(t *testing.T, scenarioPath string) {
	t.Helper()

	scenario, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	for _, failure := range result.Failures {
		t.Errorf("expectation failed: %s", failure)
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, scenario.Name, []byte(RenderTrace(result)))
}
