package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

// RequiredFields must be present (and not null) in every AI blueprint.
var RequiredFields = []string{"overview", "targetUsers", "techStack", "architecture", "phases", "risks"}

type wireBlueprint struct {
	ProjectType  text             `json:"projectType"`
	Title        text             `json:"title"`
	Overview     wireOverview     `json:"overview"`
	TargetUsers  wireTargetUsers  `json:"targetUsers"`
	TechStack    []wireTechItem   `json:"techStack"`
	Architecture wireArchitecture `json:"architecture"`
	Phases       []wirePhase      `json:"phases"`
	Risks        []wireRisk       `json:"risks"`
	Resources    []wireResource   `json:"resources"`
	Workflow     *wireWorkflow    `json:"workflow"`
}

type wireOverview struct {
	Problem     text     `json:"problem"`
	Solution    text     `json:"solution"`
	Features    textList `json:"features"`
	Assumptions textList `json:"assumptions"`
}

type wireTargetUsers struct {
	Primary   textList `json:"primary"`
	Secondary textList `json:"secondary"`
	Personas  textList `json:"personas"`
}

type wireTechItem struct {
	Name     text `json:"name"`
	Category text `json:"category"`
	Reason   text `json:"reason"`
}

type wireArchitecture struct {
	Components    textList `json:"components"`
	Relationships textList `json:"relationships"`
}

type wirePhase struct {
	Name     text     `json:"name"`
	Duration text     `json:"duration"`
	Tasks    textList `json:"tasks"`
}

type wireRisk struct {
	Type        text `json:"type"`
	Severity    text `json:"severity"`
	Description text `json:"description"`
	Mitigation  text `json:"mitigation"`
}

type wireResource struct {
	Title text `json:"title"`
	URL   text `json:"url"`
	Type  text `json:"type"`
}

type wireWorkflow struct {
	Phases []wireWorkflowPhase `json:"phases"`
}

type wireWorkflowPhase struct {
	ID           text               `json:"id"`
	Name         text               `json:"name"`
	Duration     text               `json:"duration"`
	Description  text               `json:"description"`
	Tools        textList           `json:"tools"`
	Activities   textList           `json:"activities"`
	Deliverables textList           `json:"deliverables"`
	Tasks        []wireWorkflowTask `json:"tasks"`
	Milestones   textList           `json:"milestones"`
	Dependencies textList           `json:"dependencies"`
	TeamSize     text               `json:"teamSize"`
	KeyDecisions textList           `json:"keyDecisions"`
}

type wireWorkflowTask struct {
	Name           text  `json:"name"`
	Description    text  `json:"description"`
	Priority       text  `json:"priority"`
	EstimatedHours hours `json:"estimatedHours"`
}

func (w *wireTechItem) UnmarshalJSON(b []byte) error {
	type plain wireTechItem
	return decodeLenient(b, (*plain)(w), func(t text) { *w = wireTechItem{Name: t} })
}

func (w *wirePhase) UnmarshalJSON(b []byte) error {
	type plain wirePhase
	return decodeLenient(b, (*plain)(w), func(t text) { *w = wirePhase{Name: t} })
}

func (w *wireRisk) UnmarshalJSON(b []byte) error {
	type plain wireRisk
	return decodeLenient(b, (*plain)(w), func(t text) { *w = wireRisk{Description: t} })
}

func (w *wireResource) UnmarshalJSON(b []byte) error {
	type plain wireResource
	return decodeLenient(b, (*plain)(w), func(t text) {
		*w = wireResource{Title: t}
		if strings.HasPrefix(string(t), "http") {
			w.URL = t
		}
	})
}

func (w *wireWorkflowPhase) UnmarshalJSON(b []byte) error {
	type plain wireWorkflowPhase
	return decodeLenient(b, (*plain)(w), func(t text) { *w = wireWorkflowPhase{Name: t} })
}

func (w *wireWorkflowTask) UnmarshalJSON(b []byte) error {
	type plain wireWorkflowTask
	return decodeLenient(b, (*plain)(w), func(t text) { *w = wireWorkflowTask{Name: t} })
}

// Parse runs the response handling protocol over the raw model output: strip
// fencing, parse JSON, validate the structure and route untrusted enum values
// through safe defaults. idea is used to derive a title when none is given.
// The returned candidate has no ID.
func Parse(raw string, idea string) (*domain.Blueprint, error) {
	cleaned := StripFences(raw)
	if cleaned == "" {
		return nil, domain.NewError(domain.KindMalformedResponse, fmt.Errorf("empty model output"))
	}
	return ParseJSON([]byte(cleaned), idea)
}

// ParseJSON validates an already unfenced JSON document.
func ParseJSON(data []byte, idea string) (*domain.Blueprint, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, domain.NewError(domain.KindMalformedResponse, fmt.Errorf("model output is not a JSON object"))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, domain.NewError(domain.KindMalformedResponse, fmt.Errorf("decode blueprint: %w", err))
	}

	var missing []string
	for _, key := range RequiredFields {
		v, ok := fields[key]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, domain.NewError(domain.KindIncompleteBlueprint,
			fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	var w wireBlueprint
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, domain.NewError(domain.KindMalformedResponse, fmt.Errorf("decode blueprint: %w", err))
	}

	b := w.toDomain()
	if b.Title == "" {
		b.Title = DeriveTitle(idea)
	}
	b.Normalize()
	return b, nil
}

func (w *wireBlueprint) toDomain() *domain.Blueprint {
	b := &domain.Blueprint{
		Title:       string(w.Title),
		ProjectType: domain.ParseProjectType(string(w.ProjectType)),
		Overview: domain.Overview{
			Problem:     string(w.Overview.Problem),
			Solution:    string(w.Overview.Solution),
			Features:    w.Overview.Features,
			Assumptions: w.Overview.Assumptions,
		},
		TargetUsers: domain.TargetUsers{
			Primary:   w.TargetUsers.Primary,
			Secondary: w.TargetUsers.Secondary,
			Personas:  w.TargetUsers.Personas,
		},
		Architecture: domain.Architecture{
			Components:    w.Architecture.Components,
			Relationships: w.Architecture.Relationships,
		},
		TechStack: make([]domain.TechItem, 0, len(w.TechStack)),
		Phases:    make([]domain.Phase, 0, len(w.Phases)),
		Risks:     make([]domain.Risk, 0, len(w.Risks)),
		Resources: make([]domain.Resource, 0, len(w.Resources)),
	}

	for _, t := range w.TechStack {
		if t.Name == "" {
			continue
		}
		b.TechStack = append(b.TechStack, domain.TechItem{Name: string(t.Name), Category: string(t.Category), Reason: string(t.Reason)})
	}
	for _, p := range w.Phases {
		if p.Name == "" && len(p.Tasks) == 0 {
			continue
		}
		b.Phases = append(b.Phases, domain.Phase{Name: string(p.Name), Duration: string(p.Duration), Tasks: p.Tasks})
	}
	for _, r := range w.Risks {
		if r.Type == "" && r.Description == "" && r.Mitigation == "" {
			continue
		}
		b.Risks = append(b.Risks, domain.Risk{
			Type:        string(r.Type),
			Severity:    domain.ParseSeverity(string(r.Severity)),
			Description: string(r.Description),
			Mitigation:  string(r.Mitigation),
		})
	}
	for _, r := range w.Resources {
		if r.Title == "" && r.URL == "" {
			continue
		}
		b.Resources = append(b.Resources, domain.Resource{Title: string(r.Title), URL: string(r.URL), Type: string(r.Type)})
	}

	if w.Workflow != nil {
		b.Workflow = &domain.Workflow{Phases: workflowPhases(w.Workflow.Phases)}
	}
	return b
}

// workflowPhases makes phase ids unique and keeps only dependencies that point
// at another phase of the same workflow.
func workflowPhases(in []wireWorkflowPhase) []domain.WorkflowPhase {
	out := make([]domain.WorkflowPhase, 0, len(in))
	seen := make(map[string]bool, len(in))

	for i, p := range in {
		id := strings.TrimSpace(string(p.ID))
		if id == "" || seen[id] {
			id = uniqueID(fmt.Sprintf("phase-%d", i+1), seen)
		}
		seen[id] = true

		phase := domain.WorkflowPhase{
			ID:           id,
			Name:         string(p.Name),
			Duration:     string(p.Duration),
			Description:  string(p.Description),
			Tools:        p.Tools,
			Activities:   p.Activities,
			Deliverables: p.Deliverables,
			Milestones:   p.Milestones,
			Dependencies: p.Dependencies,
			TeamSize:     string(p.TeamSize),
			KeyDecisions: p.KeyDecisions,
			Tasks:        make([]domain.WorkflowTask, 0, len(p.Tasks)),
		}
		for _, t := range p.Tasks {
			if t.Name == "" && t.Description == "" {
				continue
			}
			phase.Tasks = append(phase.Tasks, domain.WorkflowTask{
				Name:           string(t.Name),
				Description:    string(t.Description),
				Priority:       domain.ParsePriority(string(t.Priority)),
				EstimatedHours: t.EstimatedHours.value,
			})
		}
		out = append(out, phase)
	}

	for i := range out {
		if len(out[i].Dependencies) == 0 {
			out[i].Dependencies = nil
			continue
		}
		deps := make([]string, 0, len(out[i].Dependencies))
		kept := map[string]bool{}
		for _, d := range out[i].Dependencies {
			if d == out[i].ID || !seen[d] || kept[d] {
				continue
			}
			kept[d] = true
			deps = append(deps, d)
		}
		if len(deps) == 0 {
			deps = nil
		}
		out[i].Dependencies = deps
	}
	return out
}

func uniqueID(base string, seen map[string]bool) string {
	id := base
	for n := 2; seen[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}
