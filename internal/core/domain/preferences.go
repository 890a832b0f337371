package domain

import "errors"

var (
	ErrInvalidTheme  = errors.New("invalid theme (must be light or dark)")
	ErrInvalidAccent = errors.New("invalid accent color")
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var AccentColors = []string{"green", "blue", "rose", "violet"}

type Preferences struct {
	Theme  string `json:"theme"`
	Accent string `json:"accent"`
}

var DefaultPreferences = Preferences{
	Theme:  ThemeLight,
	Accent: "green",
}

func (p Preferences) Validate() error {
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		return ErrInvalidTheme
	}

	for _, a := range AccentColors {
		if p.Accent == a {
			return nil
		}
	}
	return ErrInvalidAccent
}
