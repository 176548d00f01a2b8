package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"asanaflow/yoga-app/internal/domain"

	"github.com/google/uuid"
)

// ErrEmptyCatalog is returned when there are no poses to generate from.
var ErrEmptyCatalog = errors.New("no poses available")

// flowPhase is one fixed segment of a session.
type flowPhase struct {
	Name       string
	Percentage int
	PoseTypes  []domain.PoseType
}

// The three phases of every session. Never mutated at runtime.
var flowPhases = []flowPhase{
	{
		Name:       "Warm-up",
		Percentage: 15,
		PoseTypes:  []domain.PoseType{domain.PoseTypeWarmUp},
	},
	{
		Name:       "Main Practice",
		Percentage: 70,
		PoseTypes: []domain.PoseType{
			domain.PoseTypeStanding, domain.PoseTypeSeated, domain.PoseTypeSupine,
			domain.PoseTypeProne, domain.PoseTypeBackbend, domain.PoseTypeForwardFold,
			domain.PoseTypeTwist, domain.PoseTypeArmBalance,
		},
	},
	{
		Name:       "Cool Down",
		Percentage: 15,
		PoseTypes:  []domain.PoseType{domain.PoseTypeCoolDown, domain.PoseTypeSupine},
	},
}

// goalCategories maps each goal to the pose categories that serve it.
var goalCategories = map[domain.Goal][]domain.Category{
	domain.GoalRelaxation:  {domain.CategoryRelaxation, domain.CategoryStretching},
	domain.GoalEnergy:      {domain.CategoryStrengthening, domain.CategoryCardio},
	domain.GoalStrength:    {domain.CategoryStrengthening, domain.CategoryCore},
	domain.GoalFlexibility: {domain.CategoryStretching},
	domain.GoalBalance:     {domain.CategoryBalancing},
	domain.GoalFocus:       {domain.CategoryBalancing, domain.CategoryRelaxation},
}

var goalTitles = map[domain.Goal]string{
	domain.GoalRelaxation:  "Calming Flow",
	domain.GoalEnergy:      "Energizing Practice",
	domain.GoalStrength:    "Power Yoga Session",
	domain.GoalFlexibility: "Deep Stretch Flow",
	domain.GoalBalance:     "Balance & Focus",
	domain.GoalFocus:       "Mindful Movement",
}

var goalDescriptions = map[domain.Goal]string{
	domain.GoalRelaxation:  "designed to calm your mind and release tension",
	domain.GoalEnergy:      "to energize your body and boost your mood",
	domain.GoalStrength:    "focused on building strength and stability",
	domain.GoalFlexibility: "to increase flexibility and ease",
	domain.GoalBalance:     "for improving balance and concentration",
	domain.GoalFocus:       "to enhance mindfulness and mental clarity",
}

// transitions holds the per-phase pool of transition lines.
var transitions = map[string][]string{
	"Warm-up": {
		"Take a deep breath as you move into this pose",
		"Move slowly and mindfully",
		"Listen to your body",
	},
	"Main Practice": {
		"Engage your core as you transition",
		"Use your breath to guide the movement",
		"Find stability before deepening",
	},
	"Cool Down": {
		"Soften into this pose",
		"Let your body relax",
		"Release any tension",
	},
}

const (
	// minPoseSeconds is the floor below which a pose is not worth scheduling.
	minPoseSeconds = 30
	// savasanaID is the closing pose every session ends with when available.
	savasanaID = "savasana"
	// savasanaTransition is the fixed line for the appended closing pose.
	savasanaTransition = "Rest and integrate your practice"
	// savasanaMaxSeconds caps the closing pose at five minutes.
	savasanaMaxSeconds = 300
)

// Generator builds yoga sessions from user input and a pose catalog.
// The random source drives pose selection and transition wording; supplying
// a seeded source reproduces selections exactly.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator. A nil rng falls back to a time-seeded source.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate produces a session for the given input. It fails with
// ErrEmptyCatalog when no poses are available; otherwise a full session is
// always returned. The assigned total duration may fall short of the
// requested duration when the eligible poses cannot fill every phase;
// it never exceeds it.
func (g *Generator) Generate(input domain.UserInput, poses []domain.PoseRecord) (*domain.YogaSession, error) {
	if len(poses) == 0 {
		return nil, ErrEmptyCatalog
	}

	eligible := filterPoses(poses, input)
	sessionPoses := g.buildFlow(eligible, poses, input)

	return &domain.YogaSession{
		ID:                   uuid.NewString(),
		Title:                sessionTitle(input),
		Description:          sessionDescription(input),
		TotalDurationMinutes: input.DurationMinutes,
		Level:                input.Level,
		Poses:                sessionPoses,
		CreatedAt:            time.Now().UTC(),
		UserInput:            input,
	}, nil
}

// filterPoses applies the level, focus-area, and goal gates. Warm-up and
// cool-down typed poses are exempt from the focus and goal gates, never
// from the level gate.
func filterPoses(poses []domain.PoseRecord, input domain.UserInput) []domain.PoseRecord {
	var out []domain.PoseRecord
	for _, pose := range poses {
		if !levelAppropriate(pose.Difficulty, input.Level) {
			continue
		}
		exempt := pose.Type == domain.PoseTypeWarmUp || pose.Type == domain.PoseTypeCoolDown
		if len(input.FocusAreas) > 0 && !exempt && !matchesFocusAreas(pose, input.FocusAreas) {
			continue
		}
		if input.Goal != "" && !exempt && !matchesGoal(pose, input.Goal) {
			continue
		}
		out = append(out, pose)
	}
	return out
}

// levelAppropriate allows poses at the user's level or below, plus one
// level above for intermediate and advanced practitioners.
func levelAppropriate(poseLevel, userLevel domain.Difficulty) bool {
	headroom := 1
	if userLevel == domain.DifficultyBeginner || !userLevel.Valid() {
		headroom = 0
	}
	return poseLevel.Ordinal() <= userLevel.Ordinal()+headroom
}

// matchesFocusAreas reports whether any target tag contains any requested
// focus area, case-insensitively.
func matchesFocusAreas(pose domain.PoseRecord, focusAreas []string) bool {
	for _, area := range focusAreas {
		a := strings.ToLower(area)
		for _, target := range pose.Targets {
			if strings.Contains(strings.ToLower(target), a) {
				return true
			}
		}
	}
	return false
}

func matchesGoal(pose domain.PoseRecord, goal domain.Goal) bool {
	for _, c := range goalCategories[goal] {
		if pose.Category == c {
			return true
		}
	}
	return false
}

// buildFlow allocates phase time over the eligible poses and appends the
// closing savasana. The closing pose is looked up in the full catalog:
// it bypasses eligibility filtering entirely.
func (g *Generator) buildFlow(eligible, catalog []domain.PoseRecord, input domain.UserInput) []domain.SessionPoseEntry {
	var sessionPoses []domain.SessionPoseEntry
	totalSeconds := input.DurationMinutes * 60

	for _, phase := range flowPhases {
		phaseSeconds := totalSeconds * phase.Percentage / 100
		phasePoses := posesOfTypes(eligible, phase.PoseTypes)
		if len(phasePoses) > 0 {
			sessionPoses = append(sessionPoses, g.selectPosesForPhase(phasePoses, phaseSeconds, phase.Name)...)
		}
	}

	if savasana, ok := findPose(catalog, savasanaID); ok && !containsPose(sessionPoses, savasanaID) {
		sessionPoses = append(sessionPoses, domain.SessionPoseEntry{
			Pose:            savasana,
			DurationSeconds: min(savasanaMaxSeconds, totalSeconds/10),
			Transition:      savasanaTransition,
		})
	}

	return sessionPoses
}

// selectPosesForPhase walks a uniformly shuffled candidate list, assigning
// each pose min(base duration, remaining time) and skipping anything that
// would land under the 30-second floor. A phase whose candidates run out
// before its time does simply ends short; no filling from other phases.
func (g *Generator) selectPosesForPhase(poses []domain.PoseRecord, phaseSeconds int, phaseName string) []domain.SessionPoseEntry {
	var sessionPoses []domain.SessionPoseEntry
	remaining := phaseSeconds

	// For warm-up, prioritize gentle movements.
	if phaseName == "Warm-up" {
		var gentle []domain.PoseRecord
		for _, p := range poses {
			if p.Type == domain.PoseTypeWarmUp || p.Difficulty == domain.DifficultyBeginner {
				gentle = append(gentle, p)
			}
		}
		if len(gentle) > 0 {
			poses = gentle
		}
	}

	shuffled := make([]domain.PoseRecord, len(poses))
	copy(shuffled, poses)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	for _, pose := range shuffled {
		if remaining <= 0 {
			break
		}
		duration := min(pose.BaseDurationSec, remaining)
		if duration >= minPoseSeconds {
			sessionPoses = append(sessionPoses, domain.SessionPoseEntry{
				Pose:            pose,
				DurationSeconds: duration,
				Transition:      g.transitionFor(phaseName),
			})
			remaining -= duration
		}
	}

	return sessionPoses
}

func (g *Generator) transitionFor(phaseName string) string {
	lines, ok := transitions[phaseName]
	if !ok {
		lines = transitions["Main Practice"]
	}
	return lines[g.rng.Intn(len(lines))]
}

// sessionTitle derives the deterministic session title, e.g.
// "Calming Flow • 20 min • Beginner".
func sessionTitle(input domain.UserInput) string {
	baseTitle := "Personalized Yoga Session"
	if input.Goal != "" {
		if t, ok := goalTitles[input.Goal]; ok {
			baseTitle = t
		} else {
			baseTitle = "Custom Yoga Flow"
		}
	}
	return fmt.Sprintf("%s • %d min • %s", baseTitle, input.DurationMinutes, capitalize(string(input.Level)))
}

// sessionDescription derives the deterministic session description.
func sessionDescription(input domain.UserInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A %d-minute %s level practice", input.DurationMinutes, input.Level)
	if input.Goal != "" {
		if d, ok := goalDescriptions[input.Goal]; ok {
			b.WriteString(" " + d)
		}
	}
	if len(input.FocusAreas) > 0 {
		fmt.Fprintf(&b, ", with special attention to your %s", strings.Join(input.FocusAreas, ", "))
	}
	b.WriteString(".")
	return b.String()
}

func posesOfTypes(poses []domain.PoseRecord, types []domain.PoseType) []domain.PoseRecord {
	var out []domain.PoseRecord
	for _, p := range poses {
		for _, t := range types {
			if p.Type == t {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func findPose(poses []domain.PoseRecord, id string) (domain.PoseRecord, bool) {
	for _, p := range poses {
		if p.ID == id {
			return p, true
		}
	}
	return domain.PoseRecord{}, false
}

func containsPose(entries []domain.SessionPoseEntry, id string) bool {
	for _, e := range entries {
		if e.Pose.ID == id {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
