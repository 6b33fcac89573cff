package viz

import "github.com/charmbracelet/lipgloss"

// Palette is a named set of 256-colour codes sparks are tinted with.
type Palette struct {
	Name   string
	Colors []lipgloss.Color
}

func ansi256(codes ...string) []lipgloss.Color {
	out := make([]lipgloss.Color, len(codes))
	for i, c := range codes {
		out[i] = lipgloss.Color(c)
	}
	return out
}

// Available palettes
var (
	PaletteClassic = Palette{
		Name:   "classic",
		Colors: ansi256("196", "202", "208", "214", "220", "226", "190", "118", "51", "45", "39", "33", "201", "207"),
	}

	PaletteOcean = Palette{
		Name:   "ocean",
		Colors: ansi256("17", "19", "21", "25", "27", "31", "33", "38", "39", "45", "51", "87", "123", "159"),
	}

	PaletteSunset = Palette{
		Name:   "sunset",
		Colors: ansi256("196", "197", "202", "203", "208", "209", "214", "215", "220", "221", "199", "205", "211", "217"),
	}

	PaletteMono = Palette{
		Name:   "mono",
		Colors: ansi256("255", "254", "253", "252", "251", "250", "249", "248", "247", "246", "245", "244", "243", "242"),
	}

	Palettes = []Palette{
		PaletteClassic,
		PaletteOcean,
		PaletteSunset,
		PaletteMono,
	}
)

// GetPalette returns a palette by name, falling back to classic.
func GetPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PaletteClassic
}

func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}
