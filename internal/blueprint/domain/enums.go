package domain

import "strings"

type ProjectType string

const (
	ProjectWebsite  ProjectType = "website"
	ProjectMobile   ProjectType = "mobile"
	ProjectDesktop  ProjectType = "desktop"
	ProjectHardware ProjectType = "hardware"
	ProjectAI       ProjectType = "ai"

	DefaultProjectType = ProjectWebsite
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"

	DefaultSeverity = SeverityMedium
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"

	DefaultPriority = PriorityMedium
)

// ProjectTypeInfo is the display metadata of a project type.
type ProjectTypeInfo struct {
	ID          ProjectType `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
}

var projectTypes = []ProjectTypeInfo{
	{ID: ProjectWebsite, Name: "Website", Description: "Web application with frontend & backend"},
	{ID: ProjectMobile, Name: "Mobile App", Description: "iOS and/or Android application"},
	{ID: ProjectDesktop, Name: "Desktop Software", Description: "Cross-platform desktop application"},
	{ID: ProjectHardware, Name: "Hardware/IoT", Description: "Electronics and embedded systems"},
	{ID: ProjectAI, Name: "AI/Data", Description: "Machine learning and data pipeline"},
}

// ProjectTypes lists the closed project type enumeration in display order.
func ProjectTypes() []ProjectTypeInfo {
	out := make([]ProjectTypeInfo, len(projectTypes))
	copy(out, projectTypes)
	return out
}

// Info returns the display metadata for t, falling back to the default type.
func (t ProjectType) Info() ProjectTypeInfo {
	for _, info := range projectTypes {
		if info.ID == t {
			return info
		}
	}
	return projectTypes[0]
}

// Label is the capitalised identifier used in export headers ("Website", "Ai").
func (t ProjectType) Label() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseProjectType maps untrusted text onto the closed enumeration. Anything it
// does not recognise becomes DefaultProjectType.
func ParseProjectType(s string) ProjectType {
	switch t := ProjectType(strings.ToLower(strings.TrimSpace(s))); t {
	case ProjectWebsite, ProjectMobile, ProjectDesktop, ProjectHardware, ProjectAI:
		return t
	default:
		return DefaultProjectType
	}
}

// IsKnownProjectType reports whether s names a member of the enumeration as-is.
func IsKnownProjectType(s string) bool {
	switch ProjectType(s) {
	case ProjectWebsite, ProjectMobile, ProjectDesktop, ProjectHardware, ProjectAI:
		return true
	}
	return false
}

func ParseSeverity(s string) Severity {
	switch v := Severity(strings.ToLower(strings.TrimSpace(s))); v {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return v
	default:
		return DefaultSeverity
	}
}

func ParsePriority(s string) Priority {
	switch v := Priority(strings.ToLower(strings.TrimSpace(s))); v {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return v
	default:
		return DefaultPriority
	}
}
