package viz

import "github.com/charmbracelet/lipgloss"

var (
	canvasStyle      = lipgloss.NewStyle().Padding(1, 2)
	statsStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// Theme colors the cloth mesh itself.
type Theme struct {
	Name  string
	Cloth lipgloss.Color
}

var themes = []Theme{
	{Name: "plain", Cloth: lipgloss.Color("255")},
	{Name: "phosphor", Cloth: lipgloss.Color("46")},
	{Name: "amber", Cloth: lipgloss.Color("214")},
}

// CurrentTheme is the active mesh theme.
var CurrentTheme = themes[0]

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

func SetTheme(name string) {
	for _, t := range themes {
		if t.Name == name {
			CurrentTheme = t
			return
		}
	}
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	for i, t := range themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = themes[(i+1)%len(themes)]
			return
		}
	}
}
