package ui

// Config contains TUI-specific configuration.
type Config struct {
	// Post file to view
	Path string

	Board     string
	Post      string
	RevealAll bool

	Style       string `env:"POSTFMT_STYLE" envDefault:"auto"`
	MaxWidth    uint
	EnableMouse bool

	// Keywords or /patterns/ hiding matching posts
	Filter []string `env:"POSTFMT_FILTER" envSeparator:","`

	// Reload the post when the file changes
	Watch bool `env:"POSTFMT_WATCH" envDefault:"true"`
}
