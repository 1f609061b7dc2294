package config

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/maplabel/pkg/core/geom"
	"github.com/matzehuels/maplabel/pkg/core/placement"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/expr"
	"github.com/matzehuels/maplabel/pkg/source"
)

// Default values applied by [Config.SetDefaults].
const (
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultSRS      = geom.SRSWebMercator
	DefaultFontSize = 12.0
	DefaultDPI      = 72.0
	DefaultFill     = "#000000"
)

var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Config is a decoded job file.
type Config struct {
	Map    Map     `toml:"map"`
	Font   Font    `toml:"font"`
	Layers []Layer `toml:"layer"`
}

// Map describes the output raster and the map coordinate system.
type Map struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	SRS    string  `toml:"srs"`
	// Extent is [minx, miny, maxx, maxy] in map coordinates. When unset the
	// pipeline fits the map to the union of all layer bounds.
	Extent []float64 `toml:"extent"`
	// Margin pads a fitted extent, as a fraction of its larger side.
	Margin float64 `toml:"margin"`
}

// HasExtent reports whether an explicit extent was configured.
func (m Map) HasExtent() bool { return len(m.Extent) == 4 }

// Envelope returns the configured extent.
func (m Map) Envelope() geom.Envelope {
	if !m.HasExtent() {
		return geom.Envelope{}
	}
	return geom.NewEnvelope(m.Extent[0], m.Extent[1], m.Extent[2], m.Extent[3])
}

// Font selects the face used to measure and draw labels.
type Font struct {
	File string  `toml:"file"`
	Size float64 `toml:"size"`
	DPI  float64 `toml:"dpi"`
}

// Layer is one labelled data source.
type Layer struct {
	Name   string `toml:"name"`
	Source string `toml:"source"`
	SRS    string `toml:"srs"`
	Text   string `toml:"text"`
	Fill   string `toml:"fill"`
	// Size overrides the font size for this layer.
	Size float64 `toml:"size"`

	Placement            string     `toml:"placement"`
	WrapWidth            float64    `toml:"wrap_width"`
	TextRatio            float64    `toml:"text_ratio"`
	Spacing              float64    `toml:"spacing"`
	Tolerance            float64    `toml:"label_position_tolerance"`
	ForceOddLabels       bool       `toml:"force_odd_labels"`
	MaxCharAngleDelta    float64    `toml:"max_char_angle_delta"`
	MinimumDistance      float64    `toml:"minimum_distance"`
	AvoidEdges           bool       `toml:"avoid_edges"`
	AllowOverlap         bool       `toml:"allow_overlap"`
	Displacement         [2]float64 `toml:"displacement"`
	Dimensions           [2]float64 `toml:"dimensions"`
	OrientationThreshold float64    `toml:"orientation_threshold"`
}

// Load reads the job file at path. Relative source and font paths are
// resolved against the file's directory.
func Load(path string) (*Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "config %s", path)
	}
	cfg.resolve(filepath.Dir(path))
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes, defaults and validates an in-memory job file. Paths are
// left as written.
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return &cfg, nil
}

func (c *Config) resolve(dir string) {
	c.Font.File = resolvePath(dir, c.Font.File)
	for i := range c.Layers {
		c.Layers[i].Source = resolvePath(dir, c.Layers[i].Source)
	}
}

// resolvePath joins relative local paths onto dir. URLs are kept.
func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || source.IsRemote(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Map.Width == 0 {
		c.Map.Width = DefaultWidth
	}
	if c.Map.Height == 0 {
		c.Map.Height = DefaultHeight
	}
	if c.Map.SRS == "" {
		c.Map.SRS = DefaultSRS
	}
	if c.Font.Size == 0 {
		c.Font.Size = DefaultFontSize
	}
	if c.Font.DPI == 0 {
		c.Font.DPI = DefaultDPI
	}
	for i := range c.Layers {
		l := &c.Layers[i]
		if l.SRS == "" {
			l.SRS = c.Map.SRS
		}
		if l.Fill == "" {
			l.Fill = DefaultFill
		}
		if l.Size == 0 {
			l.Size = c.Font.Size
		}
		if l.Placement == "" {
			l.Placement = placement.PointPlacement.String()
		}
	}
}

// Validate checks the configuration. It expects defaults to be applied.
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "map size must be positive, got %gx%g", c.Map.Width, c.Map.Height)
	}
	if len(c.Map.Extent) != 0 {
		if !c.Map.HasExtent() {
			return errors.New(errors.ErrCodeInvalidConfig, "map extent needs 4 values, got %d", len(c.Map.Extent))
		}
		if e := c.Map.Envelope(); e.Width() <= 0 || e.Height() <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "map extent %s is empty", e)
		}
	}
	if c.Map.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "map margin cannot be negative")
	}
	if c.Font.Size <= 0 || c.Font.DPI <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font size and dpi must be positive")
	}
	if c.Font.File != "" {
		if err := errors.ValidatePath(c.Font.File); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "font file")
		}
	}
	if len(c.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no layers configured")
	}

	seen := make(map[string]bool, len(c.Layers))
	for i := range c.Layers {
		l := &c.Layers[i]
		if err := l.validate(c.Map.SRS); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layer %d", i+1)
		}
		if seen[l.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate layer name %q", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}

func (l *Layer) validate(mapSRS string) error {
	if err := errors.ValidateLayerName(l.Name); err != nil {
		return err
	}
	if err := errors.ValidatePath(l.Source); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: source", l.Name)
	}
	if _, err := geom.ProjectionFor(l.SRS, mapSRS); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: srs", l.Name)
	}
	if _, err := expr.Parse(l.Text); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s: text", l.Name)
	}
	if _, err := placement.ParseMode(l.Placement); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", l.Name)
	}
	if !colorRegex.MatchString(l.Fill) {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: fill %q is not a #rrggbb color", l.Name, l.Fill)
	}

	for _, f := range []struct {
		name string
		v    float64
	}{
		{"size", l.Size},
		{"wrap_width", l.WrapWidth},
		{"text_ratio", l.TextRatio},
		{"spacing", l.Spacing},
		{"label_position_tolerance", l.Tolerance},
		{"max_char_angle_delta", l.MaxCharAngleDelta},
		{"minimum_distance", l.MinimumDistance},
		{"orientation_threshold", l.OrientationThreshold},
		{"dimensions", min(l.Dimensions[0], l.Dimensions[1])},
	} {
		if f.v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: %s cannot be negative", l.Name, f.name)
		}
	}
	if l.OrientationThreshold > 180 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: orientation_threshold must be at most 180", l.Name)
	}
	return nil
}

// Expression parses the layer's text expression.
func (l *Layer) Expression() (*expr.Expression, error) {
	return expr.Parse(l.Text)
}

// Policy converts the layer's layout parameters into a placement policy.
func (l *Layer) Policy() (placement.Policy, error) {
	mode, err := placement.ParseMode(l.Placement)
	if err != nil {
		return placement.Policy{}, err
	}
	return placement.Policy{
		Placement:            mode,
		WrapWidth:            l.WrapWidth,
		TextRatio:            l.TextRatio,
		Spacing:              l.Spacing,
		Tolerance:            l.Tolerance,
		ForceOddLabels:       l.ForceOddLabels,
		MaxCharAngleDelta:    l.MaxCharAngleDelta,
		MinimumDistance:      l.MinimumDistance,
		AvoidEdges:           l.AvoidEdges,
		AllowOverlap:         l.AllowOverlap,
		Displacement:         l.Displacement,
		Dimensions:           l.Dimensions,
		OrientationThreshold: l.OrientationThreshold,
	}, nil
}
