package people

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Accuracy tags how precise a recorded life event date is.
type Accuracy string

const (
	AccuracyExact     Accuracy = "EXACT"
	AccuracyEstimated Accuracy = "ESTIMATED"
	AccuracyRange     Accuracy = "RANGE"
	AccuracyUnknown   Accuracy = "UNKNOWN"
)

// Approximate reports whether the date is estimated or only bounded by a range.
func (a Accuracy) Approximate() bool {
	return a == AccuracyEstimated || a == AccuracyRange
}

// ResearchStatus tracks how far research on a person has progressed.
type ResearchStatus string

const (
	ResearchNotStarted  ResearchStatus = "not_started"
	ResearchInProgress  ResearchStatus = "in_progress"
	ResearchPartial     ResearchStatus = "partial"
	ResearchVerified    ResearchStatus = "verified"
	ResearchNeedsReview ResearchStatus = "needs_review"
	ResearchBrickWall   ResearchStatus = "brick_wall"
)

// Person is an individual in the genealogical graph.
type Person struct {
	bun.BaseModel `bun:"table:people,alias:p"`

	ID         string `bun:"id,pk" json:"id"`
	GivenNames string `bun:"given_names" json:"given_names"`
	Surname    string `bun:"surname" json:"surname"`
	// Sex is M, F or U (unknown).
	Sex string `bun:"sex" json:"sex"`

	BirthYear     *int     `bun:"birth_year" json:"birth_year,omitempty"`
	BirthDate     *string  `bun:"birth_date" json:"birth_date,omitempty"`
	BirthPlace    *string  `bun:"birth_place" json:"birth_place,omitempty"`
	BirthAccuracy Accuracy `bun:"birth_accuracy" json:"birth_accuracy"`

	DeathYear     *int     `bun:"death_year" json:"death_year,omitempty"`
	DeathDate     *string  `bun:"death_date" json:"death_date,omitempty"`
	DeathPlace    *string  `bun:"death_place" json:"death_place,omitempty"`
	DeathAccuracy Accuracy `bun:"death_accuracy" json:"death_accuracy"`

	Living bool `bun:"living" json:"living"`
	// IsPlaceholder marks a stand-in record for an unidentified parent.
	IsPlaceholder bool `bun:"is_placeholder" json:"is_placeholder"`
	IsNotable     bool `bun:"is_notable" json:"is_notable"`

	SourceCount      int            `bun:"source_count" json:"source_count"`
	ResearchStatus   ResearchStatus `bun:"research_status" json:"research_status"`
	ResearchPriority int            `bun:"research_priority" json:"research_priority"`

	CreatedAt time.Time `bun:"created_at" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at" json:"updated_at"`
}

// DisplayName returns "Given Surname", falling back to the id when both are
// empty (placeholder records often have no name).
func (p *Person) DisplayName() string {
	name := strings.TrimSpace(p.GivenNames + " " + p.Surname)
	if name == "" {
		return p.ID
	}
	return name
}

// Family is the sole container for spouse and parent-child edges.
type Family struct {
	bun.BaseModel `bun:"table:families,alias:f"`

	ID            string  `bun:"id,pk" json:"id"`
	HusbandID     *string `bun:"husband_id" json:"husband_id,omitempty"`
	WifeID        *string `bun:"wife_id" json:"wife_id,omitempty"`
	MarriageYear  *int    `bun:"marriage_year" json:"marriage_year,omitempty"`
	MarriageDate  *string `bun:"marriage_date" json:"marriage_date,omitempty"`
	MarriagePlace *string `bun:"marriage_place" json:"marriage_place,omitempty"`

	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// HasParent reports whether the family records at least one parent.
func (f *Family) HasParent() bool {
	return f.HusbandID != nil || f.WifeID != nil
}

// OtherSpouse returns the co-parent id for the given spouse, if recorded.
func (f *Family) OtherSpouse(personID string) *string {
	if f.HusbandID != nil && *f.HusbandID == personID {
		return f.WifeID
	}
	if f.WifeID != nil && *f.WifeID == personID {
		return f.HusbandID
	}
	return nil
}

// ParentIDs returns the recorded parent ids.
func (f *Family) ParentIDs() []string {
	var ids []string
	if f.HusbandID != nil {
		ids = append(ids, *f.HusbandID)
	}
	if f.WifeID != nil {
		ids = append(ids, *f.WifeID)
	}
	return ids
}

// FamilyChild is one ordered parent-child edge.
type FamilyChild struct {
	bun.BaseModel `bun:"table:family_children,alias:fc"`

	FamilyID string `bun:"family_id,pk" json:"family_id"`
	ChildID  string `bun:"child_id,pk" json:"child_id"`
	Position int    `bun:"position" json:"position"`
}
