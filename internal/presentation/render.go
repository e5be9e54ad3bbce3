package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aura-blueprint/aura/internal/blueprint/domain"
)

// NoWorkflowMessage is shown when a blueprint carries no detailed workflow.
const NoWorkflowMessage = "No detailed workflow phases were generated."

// Render returns the Markdown for one section of bp. It never mutates bp.
func Render(bp *domain.Blueprint, section Section) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", section.Title())

	switch ParseSection(string(section)) {
	case SectionOverview:
		renderOverview(&b, bp)
	case SectionUsers:
		renderUsers(&b, bp)
	case SectionTechStack:
		renderTechStack(&b, bp)
	case SectionArchitecture:
		renderArchitecture(&b, bp)
	case SectionWorkflow:
		renderWorkflow(&b, bp)
	case SectionRisks:
		renderRisks(&b, bp)
	case SectionResources:
		renderResources(&b, bp)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderAll renders a title header followed by every section in order.
func RenderAll(bp *domain.Blueprint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", bp.Title)
	fmt.Fprintf(&b, "**Project Type:** %s\n\n", bp.ProjectType.Info().Name)
	for _, s := range sections {
		b.WriteString(Render(bp, s))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderOverview(b *strings.Builder, bp *domain.Blueprint) {
	paragraph(b, "Problem", bp.Overview.Problem)
	paragraph(b, "Solution", bp.Overview.Solution)
	bullets(b, "Key Features", bp.Overview.Features)
	bullets(b, "Assumptions", bp.Overview.Assumptions)
}

func renderUsers(b *strings.Builder, bp *domain.Blueprint) {
	bullets(b, "Primary Users", bp.TargetUsers.Primary)
	bullets(b, "Secondary Users", bp.TargetUsers.Secondary)
	bullets(b, "Personas", bp.TargetUsers.Personas)
}

func renderTechStack(b *strings.Builder, bp *domain.Blueprint) {
	if len(bp.TechStack) == 0 {
		b.WriteString("_No technologies listed._\n")
		return
	}
	b.WriteString("| Technology | Category | Reason |\n|---|---|---|\n")
	for _, t := range bp.TechStack {
		fmt.Fprintf(b, "| %s | %s | %s |\n", cell(t.Name), cell(t.Category), cell(t.Reason))
	}
	b.WriteString("\n")
}

func renderArchitecture(b *strings.Builder, bp *domain.Blueprint) {
	bullets(b, "Components", bp.Architecture.Components)
	bullets(b, "Relationships", bp.Architecture.Relationships)
}

func renderWorkflow(b *strings.Builder, bp *domain.Blueprint) {
	if len(bp.Phases) > 0 {
		b.WriteString("### Development Phases\n\n")
		for i, p := range bp.Phases {
			fmt.Fprintf(b, "%d. **%s**", i+1, p.Name)
			if p.Duration != "" {
				fmt.Fprintf(b, " (%s)", p.Duration)
			}
			b.WriteString("\n")
			for _, t := range p.Tasks {
				fmt.Fprintf(b, "   - %s\n", t)
			}
		}
		b.WriteString("\n")
	}

	phases := bp.WorkflowPhases()
	if len(phases) == 0 {
		b.WriteString("_" + NoWorkflowMessage + "_\n")
		return
	}

	b.WriteString("### Workflow Phases\n\n")
	for i, p := range phases {
		fmt.Fprintf(b, "#### %d. %s", i+1, p.Name)
		if p.Duration != "" {
			fmt.Fprintf(b, " (%s)", p.Duration)
		}
		b.WriteString("\n\n")
		if p.Description != "" {
			b.WriteString(p.Description + "\n\n")
		}
		inline(b, "Tools", p.Tools)
		if p.TeamSize != "" {
			fmt.Fprintf(b, "**Team:** %s\n\n", p.TeamSize)
		}
		inline(b, "Depends on", p.Dependencies)
		if len(p.Tasks) > 0 {
			b.WriteString("**Tasks**\n\n")
			for _, t := range p.Tasks {
				fmt.Fprintf(b, "- [%s] %s", t.Priority, t.Name)
				if t.EstimatedHours != nil {
					fmt.Fprintf(b, " (%sh)", strconv.FormatFloat(*t.EstimatedHours, 'f', -1, 64))
				}
				if t.Description != "" {
					fmt.Fprintf(b, ": %s", t.Description)
				}
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
		bullets(b, "Activities", p.Activities)
		bullets(b, "Deliverables", p.Deliverables)
		bullets(b, "Milestones", p.Milestones)
		bullets(b, "Key Decisions", p.KeyDecisions)
	}
}

func renderRisks(b *strings.Builder, bp *domain.Blueprint) {
	if len(bp.Risks) == 0 {
		b.WriteString("_No risks identified._\n")
		return
	}
	for _, g := range GroupRisks(bp.Risks) {
		fmt.Fprintf(b, "### %s\n\n", g.Category)
		for _, r := range g.Risks {
			fmt.Fprintf(b, "- **[%s]** %s\n", strings.ToUpper(string(r.Severity)), r.Description)
			if r.Mitigation != "" {
				fmt.Fprintf(b, "  - Mitigation: %s\n", r.Mitigation)
			}
		}
		b.WriteString("\n")
	}
}

func renderResources(b *strings.Builder, bp *domain.Blueprint) {
	if len(bp.Resources) == 0 {
		b.WriteString("_No resources listed._\n")
		return
	}
	for _, g := range GroupResources(bp.Resources) {
		fmt.Fprintf(b, "### %s\n\n", g.Category)
		for _, r := range g.Resources {
			switch {
			case r.URL == "":
				fmt.Fprintf(b, "- %s\n", r.Title)
			case r.Title == "":
				fmt.Fprintf(b, "- <%s>\n", r.URL)
			default:
				fmt.Fprintf(b, "- [%s](%s)\n", r.Title, r.URL)
			}
		}
		b.WriteString("\n")
	}
}

func paragraph(b *strings.Builder, label, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "**%s:** %s\n\n", label, text)
}

func bullets(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", label)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func inline(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s:** %s\n\n", label, strings.Join(items, ", "))
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}
