package ansi

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/postfmt/utils"
	"github.com/muesli/termenv"
)

const (
	AutoStyle  = "auto"
	DarkStyle  = "dark"
	LightStyle = "light"
	NoTTYStyle = "notty"
)

const defaultMargin = 2

var (
	// DarkStyleConfig is the default style for dark backgrounds.
	DarkStyleConfig = StyleConfig{
		Document: StyleBlock{
			StylePrimitive: StylePrimitive{Color: stringPtr("252")},
			BlockPrefix:    "\n",
			BlockSuffix:    "\n",
			Margin:         uintPtr(defaultMargin),
		},
		Greentext:      StylePrimitive{Color: stringPtr("#A3C95B")},
		GreentextArrow: StylePrimitive{Bold: boolPtr(true)},
		Spoiler: StyleSpoiler{
			Hidden:   StylePrimitive{BackgroundColor: stringPtr("#1C1C1C")},
			Revealed: StylePrimitive{Color: stringPtr("#FFFFFF"), BackgroundColor: stringPtr("#444444")},
		},
		QuoteLink: StylePrimitive{Color: stringPtr("#FF6F7D"), Underline: boolPtr(true)},
		Link: StyleLink{
			StylePrimitive: StylePrimitive{Color: stringPtr("#5FAFFF"), Underline: boolPtr(true)},
			Video:          StylePrimitive{Color: stringPtr("#FF5F5F")},
			Social:         StylePrimitive{Color: stringPtr("#1DA1F2")},
		},
		Code: StyleCode{
			StylePrimitive: StylePrimitive{Color: stringPtr("#C4C4C4"), BackgroundColor: stringPtr("#303030")},
			Chroma: &StyleChroma{
				Text:         StylePrimitive{Color: stringPtr("#C4C4C4")},
				Keyword:      StylePrimitive{Color: stringPtr("#00AAFF")},
				String:       StylePrimitive{Color: stringPtr("#C69669")},
				Number:       StylePrimitive{Color: stringPtr("#6EEFC0")},
				Comment:      StylePrimitive{Color: stringPtr("#676767"), Italic: boolPtr(true)},
				Function:     StylePrimitive{Color: stringPtr("#00D787")},
				Type:         StylePrimitive{Color: stringPtr("#6E6ED8")},
				Preprocessor: StylePrimitive{Color: stringPtr("#FF875F")},
				Operator:     StylePrimitive{Color: stringPtr("#EF8080")},
				Punctuation:  StylePrimitive{Color: stringPtr("#E8E8A8")},
				Variable:     StylePrimitive{Color: stringPtr("#C4C4C4")},
				Constant:     StylePrimitive{Color: stringPtr("#F1A8FF")},
			},
		},
		Math: StyleMath{
			StylePrimitive: StylePrimitive{Color: stringPtr("#D7AFFF")},
			Number:         StylePrimitive{Color: stringPtr("#FFD75F")},
			Operator:       StylePrimitive{Color: stringPtr("#87D7FF")},
			Display:        StylePrimitive{Bold: boolPtr(true)},
		},
		Filtered: StylePrimitive{Faint: boolPtr(true), CrossedOut: boolPtr(true)},
	}

	// LightStyleConfig is the default style for light backgrounds.
	LightStyleConfig = StyleConfig{
		Document: StyleBlock{
			StylePrimitive: StylePrimitive{Color: stringPtr("234")},
			BlockPrefix:    "\n",
			BlockSuffix:    "\n",
			Margin:         uintPtr(defaultMargin),
		},
		Greentext:      StylePrimitive{Color: stringPtr("#5F8700")},
		GreentextArrow: StylePrimitive{Bold: boolPtr(true)},
		Spoiler: StyleSpoiler{
			Hidden:   StylePrimitive{BackgroundColor: stringPtr("#000000")},
			Revealed: StylePrimitive{Color: stringPtr("#000000"), BackgroundColor: stringPtr("#D0D0D0")},
		},
		QuoteLink: StylePrimitive{Color: stringPtr("#AF0000"), Underline: boolPtr(true)},
		Link: StyleLink{
			StylePrimitive: StylePrimitive{Color: stringPtr("#005FD7"), Underline: boolPtr(true)},
			Video:          StylePrimitive{Color: stringPtr("#D70000")},
			Social:         StylePrimitive{Color: stringPtr("#0087AF")},
		},
		Code: StyleCode{
			StylePrimitive: StylePrimitive{Color: stringPtr("#303030"), BackgroundColor: stringPtr("#EEEEEE")},
			Theme:          "github",
		},
		Math: StyleMath{
			StylePrimitive: StylePrimitive{Color: stringPtr("#5F00AF")},
			Number:         StylePrimitive{Color: stringPtr("#AF5F00")},
			Operator:       StylePrimitive{Color: stringPtr("#005F87")},
			Display:        StylePrimitive{Bold: boolPtr(true)},
		},
		Filtered: StylePrimitive{Faint: boolPtr(true), CrossedOut: boolPtr(true)},
	}

	// NoTTYStyleConfig is used when output is not a terminal.
	NoTTYStyleConfig = StyleConfig{
		Document: StyleBlock{
			BlockPrefix: "\n",
			BlockSuffix: "\n",
			Margin:      uintPtr(defaultMargin),
		},
		Spoiler: StyleSpoiler{Mask: "█"},
	}

	// DefaultStyles are the built-in styles, by name.
	DefaultStyles = map[string]*StyleConfig{
		DarkStyle:  &DarkStyleConfig,
		LightStyle: &LightStyleConfig,
		NoTTYStyle: &NoTTYStyleConfig,
	}
)

// StyleFor resolves a style name or path to a config. AutoStyle picks dark
// or light from the terminal background.
func StyleFor(name string) (StyleConfig, error) {
	if name == AutoStyle {
		if termenv.HasDarkBackground() {
			return DarkStyleConfig, nil
		}
		return LightStyleConfig, nil
	}
	if s, ok := DefaultStyles[name]; ok {
		return *s, nil
	}
	return LoadStyle(utils.ExpandPath(name))
}

// LoadStyle reads a JSON style file.
func LoadStyle(path string) (StyleConfig, error) {
	var s StyleConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("unable to read style: %w", err)
	}
	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("unable to parse style %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid style %s: %w", path, err)
	}
	return s, nil
}

func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }
