package presentation

import "strings"

// Section identifies one renderable slice of a blueprint.
type Section string

const (
	SectionOverview     Section = "overview"
	SectionUsers        Section = "users"
	SectionTechStack    Section = "techstack"
	SectionArchitecture Section = "architecture"
	SectionWorkflow     Section = "workflow"
	SectionRisks        Section = "risks"
	SectionResources    Section = "resources"
)

var sections = []Section{
	SectionOverview,
	SectionUsers,
	SectionTechStack,
	SectionArchitecture,
	SectionWorkflow,
	SectionRisks,
	SectionResources,
}

var sectionTitles = map[Section]string{
	SectionOverview:     "Project Overview",
	SectionUsers:        "Target Users",
	SectionTechStack:    "Tech Stack",
	SectionArchitecture: "Architecture",
	SectionWorkflow:     "Development Workflow",
	SectionRisks:        "Risks & Constraints",
	SectionResources:    "Learning Resources",
}

// Sections returns every section in display order.
func Sections() []Section {
	return append([]Section(nil), sections...)
}

func (s Section) Title() string {
	if t, ok := sectionTitles[s]; ok {
		return t
	}
	return sectionTitles[SectionOverview]
}

// ParseSection resolves a section id or title; anything unknown is overview.
func ParseSection(s string) Section {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	for _, sec := range sections {
		if string(sec) == key {
			return sec
		}
		title := strings.ToLower(strings.ReplaceAll(sec.Title(), " ", ""))
		if title == key {
			return sec
		}
	}
	switch key {
	case "tech", "stack":
		return SectionTechStack
	case "phases":
		return SectionWorkflow
	}
	return SectionOverview
}

// Navigator tracks the one section currently presented.
type Navigator struct {
	active Section
}

func NewNavigator() *Navigator {
	return &Navigator{active: SectionOverview}
}

func (n *Navigator) Active() Section {
	if n.active == "" {
		return SectionOverview
	}
	return n.active
}

// Select makes s active; unknown sections fall back to overview.
func (n *Navigator) Select(s Section) Section {
	n.active = ParseSection(string(s))
	return n.active
}

func (n *Navigator) Next() Section {
	return n.step(1)
}

func (n *Navigator) Prev() Section {
	return n.step(-1)
}

func (n *Navigator) step(d int) Section {
	cur := n.Active()
	for i, s := range sections {
		if s == cur {
			n.active = sections[(i+d+len(sections))%len(sections)]
			return n.active
		}
	}
	n.active = SectionOverview
	return n.active
}
