// Package style holds the style catalog: the mapping from semantic block
// kind to concrete formatting. Catalogs are supplied wholesale by the
// caller (built-in preset or YAML file) and never mutated by the
// renderer. Lookup degrades silently: a missing entry resolves through
// the body entry, a missing field through one built-in default table.
package style

// LineSpacingMode selects how the line-spacing value is interpreted.
type LineSpacingMode string

const (
	// LineSpacingMultiple treats the value as a multiple of single line height.
	LineSpacingMultiple LineSpacingMode = "multiple"
	// LineSpacingExact treats the value as an absolute height in points.
	LineSpacingExact LineSpacingMode = "exact"
)

// LineSpacing is a mode plus value pair.
type LineSpacing struct {
	Mode  LineSpacingMode `yaml:"mode" json:"mode"`
	Value float64         `yaml:"value" json:"value"`
}

// Spec is one catalog entry. Every field is optional; nil fields fall
// back at resolution time, so a YAML catalog may specify any subset.
// Size may be given in points (size) or as a traditional size name
// (size_name, e.g. 小四); the name wins when both are present.
type Spec struct {
	FontCN          *string      `yaml:"font_cn,omitempty" json:"font_cn,omitempty"`
	FontEN          *string      `yaml:"font_en,omitempty" json:"font_en,omitempty"`
	Size            *float64     `yaml:"size,omitempty" json:"size,omitempty"`
	SizeName        *string      `yaml:"size_name,omitempty" json:"size_name,omitempty"`
	Bold            *bool        `yaml:"bold,omitempty" json:"bold,omitempty"`
	Italic          *bool        `yaml:"italic,omitempty" json:"italic,omitempty"`
	Color           *string      `yaml:"color,omitempty" json:"color,omitempty"`
	Background      *string      `yaml:"background,omitempty" json:"background,omitempty"`
	SpaceBefore     *float64     `yaml:"space_before,omitempty" json:"space_before,omitempty"`
	SpaceAfter      *float64     `yaml:"space_after,omitempty" json:"space_after,omitempty"`
	LineSpacing     *LineSpacing `yaml:"line_spacing,omitempty" json:"line_spacing,omitempty"`
	Alignment       *string      `yaml:"alignment,omitempty" json:"alignment,omitempty"`
	FirstLineIndent *float64     `yaml:"first_line_indent,omitempty" json:"first_line_indent,omitempty"` // character units
	LeftIndent      *float64     `yaml:"left_indent,omitempty" json:"left_indent,omitempty"`             // cm
	MaxWidth        *float64     `yaml:"max_width,omitempty" json:"max_width,omitempty"`                 // cm, images
	HeaderBold      *bool        `yaml:"header_bold,omitempty" json:"header_bold,omitempty"`             // tables
}

// Resolved is a fully concrete style with every fallback applied. This is
// what render instructions carry; the external writer never sees optional
// fields.
type Resolved struct {
	Kind            string      `json:"kind"`
	FontCN          string      `json:"font_cn"`
	FontEN          string      `json:"font_en"`
	Size            float64     `json:"size"`
	Bold            bool        `json:"bold,omitempty"`
	Italic          bool        `json:"italic,omitempty"`
	Color           string      `json:"color"`
	Background      string      `json:"background,omitempty"`
	SpaceBefore     float64     `json:"space_before"`
	SpaceAfter      float64     `json:"space_after"`
	LineSpacing     LineSpacing `json:"line_spacing"`
	Alignment       string      `json:"alignment"`
	FirstLineIndent float64     `json:"first_line_indent"` // character units
	LeftIndent      float64     `json:"left_indent"`       // cm
	MaxWidth        float64     `json:"max_width,omitempty"`
	HeaderBold      bool        `json:"header_bold,omitempty"`
}

// FirstLineIndentPoints converts the character-unit indent against this
// style's own font size.
func (r Resolved) FirstLineIndentPoints() float64 {
	return r.FirstLineIndent * r.Size
}

// Built-in per-field defaults, applied when neither the kind entry nor
// the body entry supplies a field.
var builtin = Resolved{
	FontCN:      "宋体",
	FontEN:      "Times New Roman",
	Size:        12,
	Color:       "#000000",
	LineSpacing: LineSpacing{Mode: LineSpacingMultiple, Value: 1.0},
	Alignment:   "left",
	HeaderBold:  true,
}

// Catalog maps semantic kind names to style entries.
type Catalog struct {
	entries map[string]*Spec
}

// New creates a catalog over the given entries. The map is used as-is;
// callers hand the catalog over wholesale and must not mutate it after.
func New(entries map[string]*Spec) *Catalog {
	if entries == nil {
		entries = make(map[string]*Spec)
	}
	return &Catalog{entries: entries}
}

// Put sets or replaces one entry.
func (c *Catalog) Put(kind string, s *Spec) {
	c.entries[kind] = s
}

// Get returns the raw entry for a kind, if present.
func (c *Catalog) Get(kind string) (*Spec, bool) {
	s, ok := c.entries[kind]
	return s, ok
}

// Kinds returns the entry names present in the catalog.
func (c *Catalog) Kinds() []string {
	out := make([]string, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	return out
}

// Resolve produces the concrete style for a kind. Entry selection falls
// back to body when the kind is absent; individual missing fields take
// the built-in default. Never fails: an empty catalog resolves to the
// built-in defaults for every kind.
func (c *Catalog) Resolve(kind string) Resolved {
	var spec *Spec
	if c != nil {
		if s, ok := c.entries[kind]; ok {
			spec = s
		} else if s, ok := c.entries["body"]; ok {
			spec = s
		}
	}
	r := builtin
	r.Kind = kind
	if spec == nil {
		return r
	}
	if spec.FontCN != nil {
		r.FontCN = *spec.FontCN
	}
	if spec.FontEN != nil {
		r.FontEN = *spec.FontEN
	}
	if pt, ok := specSize(spec); ok {
		r.Size = pt
	}
	if spec.Bold != nil {
		r.Bold = *spec.Bold
	}
	if spec.Italic != nil {
		r.Italic = *spec.Italic
	}
	if spec.Color != nil {
		r.Color = *spec.Color
	}
	if spec.Background != nil {
		r.Background = *spec.Background
	}
	if spec.SpaceBefore != nil {
		r.SpaceBefore = *spec.SpaceBefore
	}
	if spec.SpaceAfter != nil {
		r.SpaceAfter = *spec.SpaceAfter
	}
	if spec.LineSpacing != nil {
		r.LineSpacing = *spec.LineSpacing
	}
	if spec.Alignment != nil {
		r.Alignment = *spec.Alignment
	}
	if spec.FirstLineIndent != nil {
		r.FirstLineIndent = *spec.FirstLineIndent
	}
	if spec.LeftIndent != nil {
		r.LeftIndent = *spec.LeftIndent
	}
	if spec.MaxWidth != nil {
		r.MaxWidth = *spec.MaxWidth
	}
	if spec.HeaderBold != nil {
		r.HeaderBold = *spec.HeaderBold
	}
	return r
}

// specSize resolves the entry's size: the traditional name wins, an
// unknown name falls through to the numeric size, then to the default.
func specSize(spec *Spec) (float64, bool) {
	if spec.SizeName != nil {
		if pt, ok := PointsForName(*spec.SizeName); ok {
			return pt, true
		}
	}
	if spec.Size != nil {
		return *spec.Size, true
	}
	return 0, false
}

// Helpers for building entries in code.

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }
func boolp(b bool) *bool     { return &b }

func spacing(mode LineSpacingMode, v float64) *LineSpacing {
	return &LineSpacing{Mode: mode, Value: v}
}
