package timeline

// Kind discriminates the mutation variants.
type Kind int

const (
	// KindNone is the no-op sentinel: the request touched nothing.
	KindNone Kind = iota
	// KindInsert appends a new subtitle.
	KindInsert
	// KindUpdate overlays fields onto an existing subtitle.
	KindUpdate
)

// Mutation is a single well-formed change against a timeline. Exactly
// one variant is active, selected by Kind.
type Mutation struct {
	Kind Kind

	// Insert variant: the fully populated subtitle to append. Its ID
	// is assigned by the store.
	Subtitle Subtitle

	// Update variant: the target ordinal (may be negative, resolved at
	// apply time) and the fields to overlay.
	Index  int
	Fields FieldPatch
}

// None returns the no-op mutation.
func None() Mutation {
	return Mutation{Kind: KindNone}
}

// Insert returns a mutation that appends sub to the timeline.
func Insert(sub Subtitle) Mutation {
	return Mutation{Kind: KindInsert, Subtitle: sub}
}

// Update returns a mutation that overlays fields onto the subtitle at
// the given ordinal.
func Update(index int, fields FieldPatch) Mutation {
	return Mutation{Kind: KindUpdate, Index: index, Fields: fields}
}

// FieldPatch carries per-field replacements for an update. A nil field
// means "leave unchanged"; a set field overwrites. Defaults are never
// written back through a patch.
type FieldPatch struct {
	Text      *string
	StartTime *float64
	EndTime   *float64

	FontFamily      *string
	FontSize        *int
	FontColor       *string
	Position        *Position
	BackgroundColor *string
	Bold            *bool
	Italic          *bool
}

// overlay builds the updated subtitle from base, applying only the set
// fields. The id is always preserved.
func (p FieldPatch) overlay(base Subtitle) Subtitle {
	out := base

	if p.Text != nil {
		out.Text = *p.Text
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		out.EndTime = *p.EndTime
	}

	if p.FontFamily != nil {
		out.Style.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		out.Style.FontSize = *p.FontSize
	}
	if p.FontColor != nil {
		out.Style.FontColor = *p.FontColor
	}
	if p.Position != nil {
		out.Style.Position = *p.Position
	}
	if p.BackgroundColor != nil {
		out.Style.BackgroundColor = *p.BackgroundColor
	}
	if p.Bold != nil {
		out.Style.Bold = *p.Bold
	}
	if p.Italic != nil {
		out.Style.Italic = *p.Italic
	}

	return out
}
