package disambig

import (
	"github.com/stars1210JasonHe/Deutsch-Learning-Platform-sub000/internal/domain"
)

// ClassifyScenario is a pure function of the filtered and capped candidate
// set. German-plus-one-other and German-alone intentionally share scenario C.
func ClassifyScenario(hasGerman bool, nonGermanCount int) domain.Scenario {
	switch {
	case !hasGerman && nonGermanCount == 0:
		return domain.ScenarioNone
	case !hasGerman && nonGermanCount == 1:
		return domain.ScenarioA
	case !hasGerman:
		return domain.ScenarioB
	case nonGermanCount <= 1:
		return domain.ScenarioC
	default:
		return domain.ScenarioD
	}
}
