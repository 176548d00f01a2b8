package domain

import "time"

// Side indicates which side of the body a pose entry is practiced on.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideBoth  Side = "both"
)

// SessionPoseEntry is one scheduled step of a generated session. The
// referenced PoseRecord is shared read-only with the catalog; the assigned
// duration never exceeds the pose's base duration.
type SessionPoseEntry struct {
	Pose            PoseRecord `bson:"pose" json:"pose"`
	DurationSeconds int        `bson:"duration" json:"duration"`
	Side            Side       `bson:"side,omitempty" json:"side,omitempty"`
	Repetitions     int        `bson:"repetitions,omitempty" json:"repetitions,omitempty"`
	Transition      string     `bson:"transition,omitempty" json:"transition,omitempty"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// YogaSession is the output of session generation and the unit of
// persistence. It is created exactly once and never partially mutated;
// the only lifecycle operation after creation is whole-record deletion.
type YogaSession struct {
	ID                   string             `bson:"_id" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	TotalDurationMinutes int                `bson:"duration" json:"duration"`
	Level                Difficulty         `bson:"level" json:"level"`
	Poses                []SessionPoseEntry `bson:"poses" json:"poses"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UserInput            UserInput          `bson:"userInput" json:"userInput"`
}
