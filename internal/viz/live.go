package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/LucasVChaves/cloth-sim/internal/cloth"
	"github.com/LucasVChaves/cloth-sim/internal/config"
	"github.com/LucasVChaves/cloth-sim/internal/export"
	"github.com/LucasVChaves/cloth-sim/internal/sim"
)

const (
	canvasW = 80
	canvasH = 28

	// canvasStyle pads 1 row / 2 cols, so mouse cells are offset.
	canvasOffX = 2
	canvasOffY = 1

	// World extent in simulation units; the default cloth hangs well
	// inside it with room to fall and swing.
	worldW = 1200.0
	worldH = 800.0

	historyCapacity = 240
)

type TickMsg time.Time

// param describes one tunable config field for the panel.
type param struct {
	name     string
	min, max float64
	step     float64
	get      func(cfg *config.Config) float64
	set      func(cfg *config.Config, v float64)
}

var params = []param{
	{"width", 2, 64, 1,
		func(c *config.Config) float64 { return float64(c.Width) },
		func(c *config.Config, v float64) { c.Width = int(v) }},
	{"height", 2, 64, 1,
		func(c *config.Config) float64 { return float64(c.Height) },
		func(c *config.Config, v float64) { c.Height = int(v) }},
	{"gravity", 0, 2000, 50,
		func(c *config.Config) float64 { return c.Gravity.Y },
		func(c *config.Config, v float64) { c.Gravity.Y = v }},
	{"stiffness", 0.05, 1.0, 0.05,
		func(c *config.Config) float64 { return c.Stiffness },
		func(c *config.Config, v float64) { c.Stiffness = v }},
	{"tear", 1.1, 10, 0.1,
		func(c *config.Config) float64 { return c.TearThreshold },
		func(c *config.Config, v float64) { c.TearThreshold = v }},
	{"iterations", 1, 20, 1,
		func(c *config.Config) float64 { return float64(c.Iterations) },
		func(c *config.Config, v float64) { c.Iterations = int(v) }},
	{"cut radius", 2, 50, 2,
		func(c *config.Config) float64 { return c.CutRadius },
		func(c *config.Config, v float64) { c.CutRadius = v }},
}

// Model is the bubbletea model for the interactive cloth view.
type Model struct {
	engine *sim.Simulator
	cfg    *config.Config

	canvas *Canvas
	view   Viewport

	selected int

	// Pointer state accumulated from mouse events between ticks.
	mouseX, mouseY      int
	leftDown, rightDown bool
	pressed, released   bool

	running    bool
	showHelp   bool
	lastFrame  time.Time
	fps        float64
	strainHist []float64
	notice     string
}

func NewModel(cfg *config.Config) Model {
	return Model{
		engine:     sim.New(cfg),
		cfg:        cfg,
		canvas:     NewCanvas(canvasW, canvasH),
		view:       NewViewport(worldW, worldH, canvasW, canvasH, canvasOffX, canvasOffY),
		running:    true,
		strainHist: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case TickMsg:
		m.tick(time.Time(msg))
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.engine.RequestReset()
		m.strainHist = m.strainHist[:0]
	case "tab":
		m.selected = (m.selected + 1) % len(params)
	case "up", "k":
		m.adjustParam(1)
	case "down", "j":
		m.adjustParam(-1)
	case "t":
		NextTheme()
	case "s":
		m.screenshot()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) adjustParam(dir int) {
	p := params[m.selected]
	v := p.get(m.cfg) + float64(dir)*p.step
	if v < p.min {
		v = p.min
	} else if v > p.max {
		v = p.max
	}
	p.set(m.cfg, v)
}

func (m *Model) handleMouse(ev tea.MouseMsg) {
	m.mouseX, m.mouseY = ev.X, ev.Y

	switch ev.Action {
	case tea.MouseActionPress:
		switch ev.Button {
		case tea.MouseButtonLeft:
			if !m.leftDown {
				m.pressed = true
			}
			m.leftDown = true
		case tea.MouseButtonRight:
			m.rightDown = true
		}
	case tea.MouseActionRelease:
		// Some terminals report release without the button, so clear both.
		if m.leftDown {
			m.released = true
		}
		m.leftDown = false
		m.rightDown = false
	}
}

// tick advances the simulation one frame and redraws.
func (m *Model) tick(now time.Time) {
	dt := 1.0 / 60.0
	if !m.lastFrame.IsZero() {
		if elapsed := now.Sub(m.lastFrame).Seconds(); elapsed > 0 {
			dt = elapsed
			m.fps = 1.0 / elapsed
		}
	}
	m.lastFrame = now

	if m.running {
		ptr := sim.PointerState{
			Pos:            m.view.ToWorld(m.mouseX, m.mouseY),
			SelectPressed:  m.pressed,
			SelectHeld:     m.leftDown,
			SelectReleased: m.released,
			CutHeld:        m.rightDown,
			OverUI:         !m.view.Contains(m.mouseX, m.mouseY),
		}
		m.engine.Update(m.cfg, ptr, dt)

		m.strainHist = append(m.strainHist, m.engine.Cloth().MaxStrain())
		if len(m.strainHist) > historyCapacity {
			m.strainHist = m.strainHist[1:]
		}
	}
	m.pressed, m.released = false, false

	m.draw()
}

func (m *Model) draw() {
	m.canvas.Clear()
	snap := m.engine.Snapshot()

	for _, seg := range snap.Segments {
		x0, y0 := m.view.ToScreen(seg.A)
		x1, y1 := m.view.ToScreen(seg.B)
		m.canvas.DrawLine(x0, y0, x1, y1)
	}

	for _, pt := range snap.Points {
		x, y := m.view.ToScreen(pt.Pos)
		if pt.Pinned {
			m.canvas.Mark(x, y, '●')
		} else {
			m.canvas.Set(x, y)
		}
	}

	if sel := m.engine.Selected(); sel >= 0 && sel < len(snap.Points) {
		x, y := m.view.ToScreen(snap.Points[sel].Pos)
		m.canvas.Mark(x, y, '◆')
	}

	if m.rightDown && m.view.Contains(m.mouseX, m.mouseY) {
		m.canvas.Mark((m.mouseX-canvasOffX)*2, (m.mouseY-canvasOffY)*4, '+')
	}
}

func (m *Model) screenshot() {
	name := fmt.Sprintf("cloth_%d.svg", time.Now().Unix())
	svg := export.CanvasToSVG(m.canvas.Cells(), 4)
	if err := os.WriteFile(name, []byte(svg), 0644); err != nil {
		m.notice = fmt.Sprintf("screenshot failed: %v", err)
		return
	}
	m.notice = "saved " + name
}

func (m Model) View() string {
	c := m.engine.Cloth()

	mesh := lipgloss.NewStyle().Foreground(CurrentTheme.Cloth).Render(m.canvas.String())
	canvasView := canvasStyle.Render(mesh)

	var s strings.Builder
	s.WriteString(headerStyle.Render("CLOTH") + "\n")
	if m.running {
		s.WriteString("RUNNING\n")
	} else {
		s.WriteString("PAUSED\n")
	}

	if len(m.strainHist) > 1 {
		chart := asciigraph.Plot(m.strainHist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("max strain"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	torn := cloth.TotalSprings(c.Width, c.Height) - len(c.Springs)
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", len(c.Particles))) + "\n")
	s.WriteString(labelStyle.Render("Springs") + valueStyle.Render(fmt.Sprintf("%d", len(c.Springs))) + "\n")
	s.WriteString(labelStyle.Render("Torn") + valueStyle.Render(fmt.Sprintf("%d", torn)) + "\n")
	s.WriteString(labelStyle.Render("FPS") + valueStyle.Render(fmt.Sprintf("%.0f", m.fps)) + "\n")

	s.WriteString("\nPARAMETERS\n")
	for i, p := range params {
		val := p.get(m.cfg)
		barWidth := 10
		ratio := (val - p.min) / (p.max - p.min)
		if ratio < 0 {
			ratio = 0
		} else if ratio > 1 {
			ratio = 1
		}
		filled := int(ratio * float64(barWidth))
		bar := "[" + strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled) + "]"
		line := fmt.Sprintf("%-10s %s %.2f", p.name, bar, val)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	if m.notice != "" {
		s.WriteString("\n" + valueStyle.Render(m.notice) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\nDrag:LMB Cut:RMB\nSP:Pause R:Reset Q:Quit\nTab:Param ↑↓:Tune\nT:Theme S:Shot ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD & MOUSE            ║
╠══════════════════════════════════════╣
║  Left drag  - Grab and pull cloth    ║
║  Right hold - Cut springs            ║
║  Space      - Pause/Resume           ║
║  R          - Reset cloth            ║
║  Tab        - Cycle parameters       ║
║  Up/K       - Increase parameter     ║
║  Down/J     - Decrease parameter     ║
║  T          - Cycle themes           ║
║  S          - Save SVG screenshot    ║
║  ?          - Toggle this help       ║
║  Q          - Quit                   ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the interactive TUI with mouse reporting enabled.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
