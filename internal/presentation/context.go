package presentation

import (
	"fmt"
	"strings"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

// SectionContext is the plain-text digest of one section sent along with a
// section question.
func SectionContext(bp *domain.Blueprint, section Section) string {
	var b strings.Builder
	switch ParseSection(string(section)) {
	case SectionOverview:
		fmt.Fprintf(&b, "Problem: %s\nSolution: %s\n", bp.Overview.Problem, bp.Overview.Solution)
		list(&b, "Features", bp.Overview.Features)
		list(&b, "Assumptions", bp.Overview.Assumptions)
	case SectionUsers:
		list(&b, "Primary users", bp.TargetUsers.Primary)
		list(&b, "Secondary users", bp.TargetUsers.Secondary)
		list(&b, "Personas", bp.TargetUsers.Personas)
	case SectionTechStack:
		for _, t := range bp.TechStack {
			fmt.Fprintf(&b, "%s (%s): %s\n", t.Name, t.Category, t.Reason)
		}
	case SectionArchitecture:
		list(&b, "Components", bp.Architecture.Components)
		list(&b, "Relationships", bp.Architecture.Relationships)
	case SectionWorkflow:
		for _, p := range bp.Phases {
			fmt.Fprintf(&b, "Phase %s (%s): %s\n", p.Name, p.Duration, strings.Join(p.Tasks, "; "))
		}
		for _, p := range bp.WorkflowPhases() {
			tasks := make([]string, 0, len(p.Tasks))
			for _, t := range p.Tasks {
				tasks = append(tasks, fmt.Sprintf("%s [%s]", t.Name, t.Priority))
			}
			fmt.Fprintf(&b, "Workflow %s (%s): %s Tools: %s. Tasks: %s\n",
				p.Name, p.Duration, p.Description, strings.Join(p.Tools, ", "), strings.Join(tasks, "; "))
		}
	case SectionRisks:
		for _, r := range bp.Risks {
			fmt.Fprintf(&b, "%s [%s]: %s Mitigation: %s\n", r.Type, r.Severity, r.Description, r.Mitigation)
		}
	case SectionResources:
		for _, r := range bp.Resources {
			fmt.Fprintf(&b, "%s (%s): %s\n", r.Title, r.Type, r.URL)
		}
	}
	return strings.TrimSpace(b.String())
}

func list(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(items, "; "))
}
