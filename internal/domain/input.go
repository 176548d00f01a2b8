package domain

// Goal is what the practitioner wants out of a session.
type Goal string

const (
	GoalRelaxation  Goal = "relaxation"
	GoalEnergy      Goal = "energy"
	GoalStrength    Goal = "strength"
	GoalFlexibility Goal = "flexibility"
	GoalBalance     Goal = "balance"
	GoalFocus       Goal = "focus"
)

// Valid reports whether g is one of the six known goals.
func (g Goal) Valid() bool {
	switch g {
	case GoalRelaxation, GoalEnergy, GoalStrength, GoalFlexibility, GoalBalance, GoalFocus:
		return true
	}
	return false
}

// Energy is the practitioner's self-reported energy level.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// Valid reports whether e is one of the three known energy levels.
func (e Energy) Valid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	}
	return false
}

// UserInput describes one session request. It is retained verbatim on the
// generated session for provenance.
type UserInput struct {
	Description     string     `bson:"description,omitempty" json:"description,omitempty"`
	Goal            Goal       `bson:"goal,omitempty" json:"goal,omitempty"`
	FocusAreas      []string   `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`
	DurationMinutes int        `bson:"duration" json:"duration"`
	Level           Difficulty `bson:"level" json:"level"`
	PainPoints      []string   `bson:"painPoints,omitempty" json:"painPoints,omitempty"`
	Energy          Energy     `bson:"energy,omitempty" json:"energy,omitempty"`
}
