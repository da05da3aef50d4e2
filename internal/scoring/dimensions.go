// internal/scoring/dimensions.go
package scoring

import (
	"sort"
	"strings"

	"talenthub/pkg/registry"
)

// Dimension is one scoring dimension. IDs are stable: they key breakdowns
// and persisted cache rows. Seed skills are extraction hints only; scoring
// never depends on them being complete.
type Dimension struct {
	ID         string
	Label      string
	Definition string
	SeedSkills []string
}

// Library holds the dimension set in effect. JD analysis may only select
// from this set, never invent new dimension ids.
type Library struct {
	dims map[string]Dimension
	ids  []string
}

// DefaultLibrary returns the canonical built-in dimension library.
func DefaultLibrary() *Library {
	return newLibrary([]Dimension{
		{
			ID:         "experience_seniority",
			Label:      "Experience & Seniority",
			Definition: "Years of experience, seniority level, leadership scope, and ownership.",
			SeedSkills: []string{"lead", "architect", "mentor", "ownership", "senior", "principal"},
		},
		{
			ID:         "core_technical_skills",
			Label:      "Core Technical Skills",
			Definition: "Core technologies and tools required for the role (primary stack).",
		},
		{
			ID:         "networking_protocols",
			Label:      "Networking & Protocols",
			Definition: "Networking fundamentals and protocols (e.g., BGP, OSPF, VLANs, TCP/IP).",
			SeedSkills: []string{"BGP", "OSPF", "TCP/IP", "VLAN", "HSRP", "MPLS"},
		},
		{
			ID:         "security_technologies",
			Label:      "Security Technologies",
			Definition: "Security tooling and technologies (e.g., NGFW, IDS/IPS, SIEM, WAF, Zscaler).",
			SeedSkills: []string{"NGFW", "IDS/IPS", "SIEM", "WAF", "Zscaler", "Palo Alto", "Fortinet"},
		},
		{
			ID:         "cloud_architecture",
			Label:      "Cloud & Architecture",
			Definition: "Cloud platforms and architecture (AWS/Azure/GCP, IAM, network/security architecture).",
			SeedSkills: []string{"AWS", "Azure", "GCP", "IAM", "VPC", "Kubernetes"},
		},
		{
			ID:         "incident_operations",
			Label:      "Incident & Operations",
			Definition: "Operations, incident response, troubleshooting, reliability, on-call, DDoS handling.",
			SeedSkills: []string{"incident", "P1", "on-call", "DDoS", "RCA", "SRE"},
		},
		{
			ID:         "compliance_governance",
			Label:      "Compliance & Governance",
			Definition: "Regulatory/compliance frameworks and governance (ISO 27001, SOC2, PCI-DSS, SOX).",
			SeedSkills: []string{"ISO 27001", "SOC2", "PCI-DSS", "SOX", "HIPAA", "NIST"},
		},
		{
			ID:         "certifications",
			Label:      "Certifications",
			Definition: "Professional certifications relevant to the role.",
			SeedSkills: []string{"CCNA", "CCNP", "CCIE", "AWS Certified", "CISSP", "CEH"},
		},
		{
			ID:         "other_relevant",
			Label:      "Other Relevant Requirements",
			Definition: "Any JD requirements that don't fit well into other dimensions, still from the library.",
		},
	})
}

// FromRegistry builds a library from an external JSON registry.
func FromRegistry(reg *registry.DimensionRegistry) *Library {
	dims := make([]Dimension, 0, len(reg.Dimensions))
	for _, d := range reg.Dimensions {
		dims = append(dims, Dimension{
			ID:         d.ID,
			Label:      d.Label,
			Definition: d.Definition,
			SeedSkills: d.SeedSkills,
		})
	}
	return newLibrary(dims)
}

func newLibrary(dims []Dimension) *Library {
	lib := &Library{dims: map[string]Dimension{}}
	for _, d := range dims {
		lib.dims[d.ID] = d
		lib.ids = append(lib.ids, d.ID)
	}
	sort.Strings(lib.ids)
	return lib
}

// IDs returns the sorted dimension ids.
func (l *Library) IDs() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// Get looks up a dimension by id.
func (l *Library) Get(id string) (Dimension, bool) {
	d, ok := l.dims[id]
	return d, ok
}

// Labels returns the id to label mapping used in explanations.
func (l *Library) Labels() map[string]string {
	out := make(map[string]string, len(l.dims))
	for id, d := range l.dims {
		out[id] = d.Label
	}
	return out
}

// SeedSkills returns every seed skill across the library, deduped
// case-insensitively and in sorted id order. Resume parsing uses them to
// extend its extraction vocabulary.
func (l *Library) SeedSkills() []string {
	var out []string
	seen := map[string]bool{}
	for _, id := range l.ids {
		for _, s := range l.dims[id].SeedSkills {
			key := strings.ToLower(s)
			if !seen[key] {
				seen[key] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// FilterKnown keeps only ids that exist in the library, sorted.
func (l *Library) FilterKnown(ids []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, id := range ids {
		if _, ok := l.dims[id]; ok && !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	sort.Strings(out)
	return out
}
