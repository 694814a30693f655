package ui

// Color accessors return the escape sequence of the active theme for each
// semantic role. They are safe for concurrent use.

// ColorReset clears all formatting.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed is used for failures.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen is used for successes.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow is used for timings and warnings.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue is used for strategy names.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta is used for array sizes.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan is used for configuration values.
func ColorCyan() string { return GetCurrentTheme().Secondary }

// ColorBold emphasizes text.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline underlines table headers.
func ColorUnderline() string { return GetCurrentTheme().Underline }
