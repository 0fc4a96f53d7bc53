package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kozaktomas/slide-sheets/internal/layout"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Render   RenderConfig
	Web      WebConfig
	Defaults GroupSettings
}

type RenderConfig struct {
	DPI          int    // pdftoppm resolution (default 150)
	Workers      int    // parallel document decodes (default 4)
	PdftoppmPath string // empty means look up pdftoppm on PATH
	LabelLength  int    // runes of a document name kept in slide labels (default 15)
}

type WebConfig struct {
	Host        string
	Port        int
	MaxUploadMB int           // request body limit for uploads (default 200)
	RenderTTL   time.Duration // how long finished renders are kept (default 30m)
	// AllowedOrigins receive CORS headers in addition to localhost.
	AllowedOrigins []string
}

// MaxUploadBytes returns the upload limit in bytes.
func (c WebConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// MarginSettings are page margins in centimeters.
type MarginSettings struct {
	Left   float64 `yaml:"left" json:"left"`
	Right  float64 `yaml:"right" json:"right"`
	Top    float64 `yaml:"top" json:"top"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
}

// GroupSettings is the serialized form of a group layout configuration, as
// found in defaults.yaml and job files.
type GroupSettings struct {
	PageSize         string         `yaml:"page_size" json:"page_size"`
	Orientation      string         `yaml:"orientation" json:"orientation"`
	Columns          int            `yaml:"columns" json:"columns"`
	Rows             int            `yaml:"rows" json:"rows"`
	Margins          MarginSettings `yaml:"margins" json:"margins"`
	Spacing          float64        `yaml:"spacing" json:"spacing"`
	Border           bool           `yaml:"border" json:"border"`
	BorderWidth      float64        `yaml:"border_width" json:"border_width"`
	Numbering        bool           `yaml:"numbering" json:"numbering"`
	NumberSize       float64        `yaml:"number_size" json:"number_size"`
	NumberAnchor     string         `yaml:"number_anchor" json:"number_anchor"`
	Quality          string         `yaml:"quality" json:"quality"`
	Rotation         int            `yaml:"rotation" json:"rotation"`
	ImageOrientation string         `yaml:"image_orientation" json:"image_orientation"`
	Fit              string         `yaml:"fit" json:"fit"`
	Watermark        string         `yaml:"watermark" json:"watermark"`
	WatermarkSize    float64        `yaml:"watermark_size" json:"watermark_size"`
	WatermarkOpacity float64        `yaml:"watermark_opacity" json:"watermark_opacity"`
	Header           string         `yaml:"header" json:"header"`
	Footer           string         `yaml:"footer" json:"footer"`
	HeaderFooterSize float64        `yaml:"header_footer_size" json:"header_footer_size"`
}

// GroupConfig converts the settings to the layout engine's configuration.
// Unknown enum values pass through unchanged and are rejected when planning.
func (s GroupSettings) GroupConfig() layout.GroupConfig {
	return layout.GroupConfig{
		PageSize:         layout.PageSize(s.PageSize),
		Orientation:      layout.Orientation(s.Orientation),
		Columns:          s.Columns,
		Rows:             s.Rows,
		Margins:          layout.Margins(s.Margins),
		Spacing:          s.Spacing,
		Border:           s.Border,
		BorderWidth:      s.BorderWidth,
		Numbering:        s.Numbering,
		NumberSize:       s.NumberSize,
		NumberAnchor:     layout.Anchor(s.NumberAnchor),
		Quality:          layout.Quality(s.Quality),
		Rotation:         s.Rotation,
		ImageOrientation: layout.ImageOrientation(s.ImageOrientation),
		Fit:              layout.FitPolicy(s.Fit),
		Watermark:        s.Watermark,
		WatermarkSize:    s.WatermarkSize,
		WatermarkOpacity: s.WatermarkOpacity,
		Header:           s.Header,
		Footer:           s.Footer,
		HeaderFooterSize: s.HeaderFooterSize,
	}
}

// DefaultGroupSettings parses the embedded defaults.yaml.
func DefaultGroupSettings() GroupSettings {
	var s GroupSettings
	if err := yaml.Unmarshal(defaultsYAML, &s); err != nil {
		// embedded file, only broken by a bad edit
		panic("failed to unmarshal embedded defaults.yaml: " + err.Error())
	}
	return s
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// envList reads a comma-separated environment variable, skipping empty items.
func envList(key string) []string {
	var out []string
	for item := range strings.SplitSeq(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Render: RenderConfig{
			DPI:          envInt("SHEETS_RENDER_DPI", 150),
			Workers:      envInt("SHEETS_DECODE_WORKERS", 4),
			PdftoppmPath: os.Getenv("SHEETS_PDFTOPPM_PATH"),
			LabelLength:  envInt("SHEETS_LABEL_LENGTH", layout.DefaultLabelLength),
		},
		Web: WebConfig{
			Host:        envString("WEB_HOST", "0.0.0.0"),
			Port:        envInt("WEB_PORT", 8080),
			MaxUploadMB: envInt("SHEETS_MAX_UPLOAD_MB", 200),
			RenderTTL:   time.Duration(envInt("SHEETS_RENDER_TTL_MINUTES", 30)) * time.Minute,

			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
		Defaults: DefaultGroupSettings(),
	}
}

// Addr returns the listen address.
func (c WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
