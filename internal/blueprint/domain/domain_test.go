package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProjectType(t *testing.T) {
	cases := map[string]ProjectType{
		"website":  ProjectWebsite,
		" Mobile ": ProjectMobile,
		"DESKTOP":  ProjectDesktop,
		"hardware": ProjectHardware,
		"ai":       ProjectAI,
		"robot":    ProjectWebsite,
		"":         ProjectWebsite,
		"web site": ProjectWebsite,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseProjectType(in), "input %q", in)
	}
}

func TestParseSeverityAndPriority(t *testing.T) {
	assert.Equal(t, SeverityHigh, ParseSeverity("HIGH"))
	assert.Equal(t, SeverityLow, ParseSeverity(" low"))
	assert.Equal(t, SeverityMedium, ParseSeverity("critical"))
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityMedium, ParsePriority("urgent"))
	assert.Equal(t, PriorityMedium, ParsePriority(""))
}

func TestProjectTypeInfo(t *testing.T) {
	assert.Equal(t, "Hardware/IoT", ProjectHardware.Info().Name)
	assert.Equal(t, "Website", ProjectType("robot").Info().Name)
	assert.Equal(t, "Mobile", ProjectMobile.Label())
	assert.Len(t, ProjectTypes(), 5)
}

func TestNormalize_FillsEmptyCollections(t *testing.T) {
	b := &Blueprint{
		ProjectType: "robot",
		Risks:       []Risk{{Type: "Technical Risks", Severity: "extreme"}},
		Workflow:    &Workflow{Phases: []WorkflowPhase{{ID: "p1", Tasks: []WorkflowTask{{Name: "x", Priority: "?"}}}}},
	}
	b.Normalize()

	assert.Equal(t, ProjectWebsite, b.ProjectType)
	assert.NotNil(t, b.Overview.Features)
	assert.NotNil(t, b.TargetUsers.Personas)
	assert.NotNil(t, b.TechStack)
	assert.NotNil(t, b.Resources)
	assert.Equal(t, SeverityMedium, b.Risks[0].Severity)
	assert.Equal(t, PriorityMedium, b.Workflow.Phases[0].Tasks[0].Priority)
	assert.NotNil(t, b.Workflow.Phases[0].Tools)
}

func TestWorkflowPhases_Absent(t *testing.T) {
	var b Blueprint
	phases := b.WorkflowPhases()
	require.NotNil(t, phases)
	assert.Empty(t, phases)

	var nilBlueprint *Blueprint
	assert.Empty(t, nilBlueprint.WorkflowPhases())
}

func TestError_Classification(t *testing.T) {
	cause := errors.New("upstream returned 429")
	err := fmt.Errorf("analyze: %w", NewError(KindRateLimited, cause))

	assert.Equal(t, KindRateLimited, KindOf(err))
	assert.True(t, IsKind(err, KindRateLimited))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Rate limit exceeded. Please try again in a moment.", UserMessage(err))
	assert.NotContains(t, UserMessage(err), "429")

	assert.Equal(t, KindServiceUnavailable, KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestError_CustomMessage(t *testing.T) {
	err := Errorf(KindInvalidInput, "Idea is required", nil)
	assert.Equal(t, "Idea is required", UserMessage(err))
	assert.Contains(t, err.Error(), "InvalidInput")
}

func TestHTTPStatusAndRetryable(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindInvalidInput))
	assert.Equal(t, http.StatusPaymentRequired, HTTPStatus(KindQuotaExhausted))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(KindRateLimited))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindMalformedResponse))

	assert.True(t, Retryable(KindRateLimited))
	assert.False(t, Retryable(KindQuotaExhausted))
	assert.False(t, Retryable(KindMisconfiguredClient))
	assert.NotEqual(t, DefaultMessage(KindRateLimited), DefaultMessage(KindQuotaExhausted))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("MalformedResponse")
	assert.True(t, ok)
	assert.Equal(t, KindMalformedResponse, k)

	_, ok = ParseKind("Nope")
	assert.False(t, ok)
}
