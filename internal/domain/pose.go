package domain

// Difficulty is the practice level of a pose or a practitioner.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Ordinal maps a difficulty to its numeric rank (beginner=1 .. advanced=3).
// Unknown values rank as beginner.
func (d Difficulty) Ordinal() int {
	switch d {
	case DifficultyIntermediate:
		return 2
	case DifficultyAdvanced:
		return 3
	default:
		return 1
	}
}

// Valid reports whether d is one of the three known levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// PoseType describes where a pose sits in the body of a practice.
type PoseType string

const (
	PoseTypeWarmUp      PoseType = "warm-up"
	PoseTypeStanding    PoseType = "standing"
	PoseTypeSeated      PoseType = "seated"
	PoseTypeSupine      PoseType = "supine"
	PoseTypeProne       PoseType = "prone"
	PoseTypeInversion   PoseType = "inversion"
	PoseTypeBackbend    PoseType = "backbend"
	PoseTypeForwardFold PoseType = "forward-fold"
	PoseTypeTwist       PoseType = "twist"
	PoseTypeArmBalance  PoseType = "arm-balance"
	PoseTypeCoolDown    PoseType = "cool-down"
)

// Category is the primary training effect of a pose.
type Category string

const (
	CategoryStrengthening Category = "strengthening"
	CategoryStretching    Category = "stretching"
	CategoryBalancing     Category = "balancing"
	CategoryRelaxation    Category = "relaxation"
	CategoryCore          Category = "core"
	CategoryCardio        Category = "cardio"
)

// PoseRecord is one entry of the pose catalog. The JSON tags match the
// catalog wire format; records are immutable once loaded.
type PoseRecord struct {
	ID                string     `bson:"_id" json:"id"`
	EnglishName       string     `bson:"nameEnglish" json:"name_english"`
	SanskritName      string     `bson:"nameSanskrit" json:"name_sanskrit"`
	Difficulty        Difficulty `bson:"difficulty" json:"difficulty"`
	Type              PoseType   `bson:"type" json:"type"`
	Category          Category   `bson:"category" json:"category"`
	Targets           []string   `bson:"targets" json:"targets"`
	BaseDurationSec   int        `bson:"durationS" json:"duration_s"`
	ImageURL          string     `bson:"imageUrl" json:"image_url"`
	Benefits          []string   `bson:"benefits" json:"benefits"`
	Instructions      []string   `bson:"instructions" json:"instructions"`
	Modifications     []string   `bson:"modifications" json:"modifications"`
	Contraindications []string   `bson:"contraindications" json:"contraindications"`
	Tags              []string   `bson:"tags" json:"tags"`
}
