package report

import (
	"strings"

	"landgate/internal/registry"
)

// Zone flags are derived by substring matching over free-text regulation
// entries. The upstream publishes these designations as prose, not codes, so
// a keyword table is the honest representation of the rule.
var zoneKeywords = map[string][]string{
	"education":    {"교육환경보호구역", "상대보호구역", "절대보호구역"},
	"districtPlan": {"지구단위계획구역"},
	"cultural":     {"문화재", "역사문화환경"},
}

func classifyZones(regs []registry.Regulation) (education, districtPlan, cultural bool) {
	matched := map[string]bool{}
	for _, reg := range regs {
		text := reg.LawName + " " + reg.Content
		for flag, keywords := range zoneKeywords {
			if matched[flag] {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(text, kw) {
					matched[flag] = true
					break
				}
			}
		}
	}
	return matched["education"], matched["districtPlan"], matched["cultural"]
}
