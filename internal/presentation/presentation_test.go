package presentation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

func blueprint() *domain.Blueprint {
	bp := &domain.Blueprint{
		Title:       "Trail Finder",
		ProjectType: domain.ProjectWebsite,
		Overview: domain.Overview{
			Problem:  "Hikers cannot find quiet trails.",
			Solution: "A crowd-sourced trail map.",
			Features: []string{"Map", "Reviews"},
		},
		TechStack: []domain.TechItem{{Name: "Go", Category: "Backend", Reason: "Fast | simple"}},
		Phases:    []domain.Phase{{Name: "MVP", Duration: "6 weeks", Tasks: []string{"Map view"}}},
		Risks: []domain.Risk{
			{Type: "Security Risks", Severity: domain.SeverityHigh, Description: "Location leaks", Mitigation: "Fuzz coordinates"},
			{Type: "", Severity: domain.SeverityLow, Description: "Untyped risk"},
			{Type: "Security Risks", Severity: domain.SeverityMedium, Description: "Spam reviews"},
		},
		Resources: []domain.Resource{
			{Title: "Leaflet", URL: "https://leafletjs.com", Type: "documentation"},
			{Title: "Tiles guide", Type: ""},
		},
	}
	bp.Normalize()
	return bp
}

func TestParseSection(t *testing.T) {
	cases := map[string]Section{
		"overview":            SectionOverview,
		"Tech Stack":          SectionTechStack,
		"tech-stack":          SectionTechStack,
		"Risks & Constraints": SectionRisks,
		"workflow":            SectionWorkflow,
		"phases":              SectionWorkflow,
		"Learning Resources":  SectionResources,
		"nonsense":            SectionOverview,
		"":                    SectionOverview,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseSection(in), "input %q", in)
	}
	assert.Equal(t, "Project Overview", Section("bogus").Title())
	assert.Len(t, Sections(), 7)
}

func TestNavigator(t *testing.T) {
	n := NewNavigator()
	assert.Equal(t, SectionOverview, n.Active())

	assert.Equal(t, SectionRisks, n.Select(SectionRisks))
	assert.Equal(t, SectionResources, n.Next())
	assert.Equal(t, SectionOverview, n.Next())
	assert.Equal(t, SectionResources, n.Prev())

	assert.Equal(t, SectionOverview, n.Select("unknown"))
	assert.Equal(t, SectionOverview, (&Navigator{}).Active())
}

func TestGroupRisks_FirstAppearanceOrder(t *testing.T) {
	groups := GroupRisks(blueprint().Risks)
	if assert.Len(t, groups, 2) {
		assert.Equal(t, "Security Risks", groups[0].Category)
		assert.Len(t, groups[0].Risks, 2)
		assert.Equal(t, "Other", groups[1].Category)
	}
	assert.Empty(t, GroupRisks(nil))
}

func TestGroupResources(t *testing.T) {
	groups := GroupResources(blueprint().Resources)
	if assert.Len(t, groups, 2) {
		assert.Equal(t, "documentation", groups[0].Category)
		assert.Equal(t, "Other", groups[1].Category)
	}
}

func TestRender_Sections(t *testing.T) {
	bp := blueprint()

	out := Render(bp, SectionOverview)
	assert.True(t, strings.HasPrefix(out, "## Project Overview\n"))
	assert.Contains(t, out, "**Problem:** Hikers cannot find quiet trails.")
	assert.Contains(t, out, "- Reviews")

	assert.Contains(t, Render(bp, SectionTechStack), `| Go | Backend | Fast \| simple |`)

	risks := Render(bp, SectionRisks)
	assert.Less(t, strings.Index(risks, "### Security Risks"), strings.Index(risks, "### Other"))
	assert.Contains(t, risks, "**[HIGH]** Location leaks")
	assert.Contains(t, risks, "Mitigation: Fuzz coordinates")

	res := Render(bp, SectionResources)
	assert.Contains(t, res, "[Leaflet](https://leafletjs.com)")
	assert.Contains(t, res, "- Tiles guide")

	// Unknown sections render the overview.
	assert.Equal(t, out, Render(bp, Section("bogus")))
}

func TestRender_WorkflowAbsent(t *testing.T) {
	out := Render(blueprint(), SectionWorkflow)
	assert.Contains(t, out, "**MVP** (6 weeks)")
	assert.Contains(t, out, NoWorkflowMessage)
}

func TestRender_WorkflowPresent(t *testing.T) {
	bp := blueprint()
	hours := 2.5
	bp.Workflow = &domain.Workflow{Phases: []domain.WorkflowPhase{{
		ID:           "build",
		Name:         "Build",
		Duration:     "3 weeks",
		Description:  "Ship the map.",
		Tools:        []string{"Go", "Leaflet"},
		Dependencies: []string{"design"},
		Tasks:        []domain.WorkflowTask{{Name: "Tiles", Priority: domain.PriorityHigh, EstimatedHours: &hours}},
	}}}

	out := Render(bp, SectionWorkflow)
	assert.NotContains(t, out, NoWorkflowMessage)
	assert.Contains(t, out, "#### 1. Build (3 weeks)")
	assert.Contains(t, out, "**Tools:** Go, Leaflet")
	assert.Contains(t, out, "- [high] Tiles (2.5h)")
	assert.Contains(t, out, "**Depends on:** design")
}

func TestRenderAll(t *testing.T) {
	out := RenderAll(blueprint())
	assert.True(t, strings.HasPrefix(out, "# Trail Finder\n"))
	assert.Contains(t, out, "**Project Type:** Website")

	last := -1
	for _, s := range Sections() {
		i := strings.Index(out, "## "+s.Title())
		assert.Greater(t, i, last, s)
		last = i
	}
}

func TestSectionContext(t *testing.T) {
	bp := blueprint()
	assert.Contains(t, SectionContext(bp, SectionOverview), "Problem: Hikers cannot find quiet trails.")
	assert.Contains(t, SectionContext(bp, SectionRisks), "Security Risks [high]: Location leaks")
	assert.Equal(t, "Go (Backend): Fast | simple", SectionContext(bp, SectionTechStack))
	assert.Equal(t, "", SectionContext(&domain.Blueprint{}, SectionUsers))
}

func TestDefaultPacing(t *testing.T) {
	assert.Less(t, DefaultPacing.ScanStep, DefaultPacing.DetectionSettle)
}
