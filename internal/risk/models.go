// Package risk turns an aggregate parcel report into a regulatory risk
// diagnosis. Diagnose is a pure function of the report and the market
// indicators; it never fails and has no side effects.
package risk

// Level is the overall risk verdict. Ordering matters: DANGER outranks
// CAUTION outranks SAFE, and a level is never downgraded once raised.
type Level string

const (
	LevelSafe    Level = "SAFE"
	LevelCaution Level = "CAUTION"
	LevelDanger  Level = "DANGER"
)

func (l Level) rank() int {
	switch l {
	case LevelDanger:
		return 2
	case LevelCaution:
		return 1
	default:
		return 0
	}
}

// SWOT is the narrative breakdown accompanying the score.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Diagnosis is the complete risk assessment for one parcel.
type Diagnosis struct {
	Level   Level    `json:"level"`
	Score   int      `json:"score"`
	Summary string   `json:"summary"`
	Details []string `json:"details"`
	SWOT    SWOT     `json:"swot"`
}
