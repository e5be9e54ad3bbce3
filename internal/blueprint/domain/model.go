package domain

// Blueprint is the structured project plan generated from a free-text idea.
type Blueprint struct {
	ID           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Title        string       `json:"title" yaml:"title"`
	ProjectType  ProjectType  `json:"projectType" yaml:"projectType"`
	Overview     Overview     `json:"overview" yaml:"overview"`
	TargetUsers  TargetUsers  `json:"targetUsers" yaml:"targetUsers"`
	TechStack    []TechItem   `json:"techStack" yaml:"techStack"`
	Architecture Architecture `json:"architecture" yaml:"architecture"`
	Phases       []Phase      `json:"phases" yaml:"phases"`
	Risks        []Risk       `json:"risks" yaml:"risks"`
	Resources    []Resource   `json:"resources" yaml:"resources"`
	Workflow     *Workflow    `json:"workflow,omitempty" yaml:"workflow,omitempty"`
}

type Overview struct {
	Problem     string   `json:"problem" yaml:"problem"`
	Solution    string   `json:"solution" yaml:"solution"`
	Features    []string `json:"features" yaml:"features"`
	Assumptions []string `json:"assumptions" yaml:"assumptions"`
}

type TargetUsers struct {
	Primary   []string `json:"primary" yaml:"primary"`
	Secondary []string `json:"secondary" yaml:"secondary"`
	Personas  []string `json:"personas" yaml:"personas"`
}

// TechItem is one entry of the recommended technology stack. Category is an
// open set (Frontend, Backend, Database, Infrastructure, Tools, ...).
type TechItem struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Reason   string `json:"reason" yaml:"reason"`
}

type Architecture struct {
	Components    []string `json:"components" yaml:"components"`
	Relationships []string `json:"relationships" yaml:"relationships"`
}

// Phase is the summary development phase; see WorkflowPhase for the detailed form.
type Phase struct {
	Name     string   `json:"name" yaml:"name"`
	Duration string   `json:"duration" yaml:"duration"`
	Tasks    []string `json:"tasks" yaml:"tasks"`
}

type Risk struct {
	Type        string   `json:"type" yaml:"type"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	Mitigation  string   `json:"mitigation" yaml:"mitigation"`
}

type Resource struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
	Type  string `json:"type" yaml:"type"`
}

type Workflow struct {
	Phases []WorkflowPhase `json:"phases" yaml:"phases"`
}

type WorkflowPhase struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Duration     string         `json:"duration" yaml:"duration"`
	Description  string         `json:"description" yaml:"description"`
	Tools        []string       `json:"tools" yaml:"tools"`
	Activities   []string       `json:"activities" yaml:"activities"`
	Deliverables []string       `json:"deliverables" yaml:"deliverables"`
	Tasks        []WorkflowTask `json:"tasks" yaml:"tasks"`
	Milestones   []string       `json:"milestones" yaml:"milestones"`
	Dependencies []string       `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	TeamSize     string         `json:"teamSize,omitempty" yaml:"teamSize,omitempty"`
	KeyDecisions []string       `json:"keyDecisions,omitempty" yaml:"keyDecisions,omitempty"`
}

type WorkflowTask struct {
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	Priority       Priority `json:"priority" yaml:"priority"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`
}

// WorkflowPhases returns the detailed workflow phases, or an empty slice when
// the blueprint carries no workflow.
func (b *Blueprint) WorkflowPhases() []WorkflowPhase {
	if b == nil || b.Workflow == nil || b.Workflow.Phases == nil {
		return []WorkflowPhase{}
	}
	return b.Workflow.Phases
}

// Normalize replaces nil lists with empty ones and routes enum fields through
// their safe defaults. It is idempotent.
func (b *Blueprint) Normalize() {
	b.ProjectType = ParseProjectType(string(b.ProjectType))

	b.Overview.Features = nonNil(b.Overview.Features)
	b.Overview.Assumptions = nonNil(b.Overview.Assumptions)
	b.TargetUsers.Primary = nonNil(b.TargetUsers.Primary)
	b.TargetUsers.Secondary = nonNil(b.TargetUsers.Secondary)
	b.TargetUsers.Personas = nonNil(b.TargetUsers.Personas)
	b.Architecture.Components = nonNil(b.Architecture.Components)
	b.Architecture.Relationships = nonNil(b.Architecture.Relationships)

	if b.TechStack == nil {
		b.TechStack = []TechItem{}
	}
	if b.Phases == nil {
		b.Phases = []Phase{}
	}
	for i := range b.Phases {
		b.Phases[i].Tasks = nonNil(b.Phases[i].Tasks)
	}
	if b.Risks == nil {
		b.Risks = []Risk{}
	}
	for i := range b.Risks {
		b.Risks[i].Severity = ParseSeverity(string(b.Risks[i].Severity))
	}
	if b.Resources == nil {
		b.Resources = []Resource{}
	}

	if b.Workflow == nil {
		return
	}
	if b.Workflow.Phases == nil {
		b.Workflow.Phases = []WorkflowPhase{}
	}
	for i := range b.Workflow.Phases {
		p := &b.Workflow.Phases[i]
		p.Tools = nonNil(p.Tools)
		p.Activities = nonNil(p.Activities)
		p.Deliverables = nonNil(p.Deliverables)
		p.Milestones = nonNil(p.Milestones)
		if p.Tasks == nil {
			p.Tasks = []WorkflowTask{}
		}
		for j := range p.Tasks {
			p.Tasks[j].Priority = ParsePriority(string(p.Tasks[j].Priority))
		}
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
