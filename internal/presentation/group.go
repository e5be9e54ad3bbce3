package presentation

import "github.com/aura-blueprint/aura/internal/blueprint/domain"

// RiskGroup is the risks sharing one category, in blueprint order.
type RiskGroup struct {
	Category string
	Risks    []domain.Risk
}

// ResourceGroup is the resources sharing one type, in blueprint order.
type ResourceGroup struct {
	Category  string
	Resources []domain.Resource
}

const uncategorized = "Other"

// GroupRisks groups risks by type. Groups appear in the order their first
// member appears.
func GroupRisks(risks []domain.Risk) []RiskGroup {
	var out []RiskGroup
	idx := map[string]int{}
	for _, r := range risks {
		cat := categoryOf(r.Type)
		i, ok := idx[cat]
		if !ok {
			i = len(out)
			idx[cat] = i
			out = append(out, RiskGroup{Category: cat})
		}
		out[i].Risks = append(out[i].Risks, r)
	}
	return out
}

// GroupResources groups resources by type with the same ordering as GroupRisks.
func GroupResources(resources []domain.Resource) []ResourceGroup {
	var out []ResourceGroup
	idx := map[string]int{}
	for _, r := range resources {
		cat := categoryOf(r.Type)
		i, ok := idx[cat]
		if !ok {
			i = len(out)
			idx[cat] = i
			out = append(out, ResourceGroup{Category: cat})
		}
		out[i].Resources = append(out[i].Resources, r)
	}
	return out
}

func categoryOf(s string) string {
	if s == "" {
		return uncategorized
	}
	return s
}
