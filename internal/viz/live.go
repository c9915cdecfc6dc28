package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/experiment"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/sim"
)

const (
	width           = 60
	height          = 20
	historyCapacity = 600
	trailCapacity   = 120
)

type TickMsg time.Time

type point struct{ x, y float64 }

// Model steps a float scene one tick per frame and draws the bodies' first
// two position components.
type Model struct {
	scene    *config.Scene
	log      *zap.Logger
	exp      *experiment.Experiment[float64]
	cfg      sim.Config[float64]
	canvas   *Canvas
	viewport *Viewport
	trails   map[int64][]point
	frames   []dynamo.Frame[float64]
	energy   []float64
	lastErr  error
	running  bool
	finished bool
	showHelp bool
	theme    Theme
	styles   Styles
	fps      int
}

// NewModel builds the live view for a scene. Integer scenes are run as
// floats; their values are whole numbers and convert exactly.
func NewModel(scene *config.Scene, log *zap.Logger) (Model, error) {
	scene = scene.Clone()
	scene.Scalar = config.ScalarFloat

	m := Model{
		scene:   scene,
		log:     log,
		canvas:  NewCanvas(width, height),
		running: true,
		theme:   Themes[0],
		styles:  NewStyles(Themes[0]),
		fps:     60,
	}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) reset() error {
	exp, err := experiment.New[float64](m.scene, m.log)
	if err != nil {
		return err
	}
	m.exp = exp
	m.cfg = exp.Config()
	m.viewport = NewViewport()
	m.trails = make(map[int64][]point)
	m.energy = make([]float64, 0, historyCapacity)
	m.lastErr = nil
	m.finished = false

	m.frames = make([]dynamo.Frame[float64], 0, len(exp.Particles()))
	for _, p := range exp.Particles() {
		m.frames = append(m.frames, dynamo.Capture[float64](0, p))
	}
	m.record(m.frames)
	return nil
}

func (m Model) Tick() int { return m.exp.Simulator().Tick() }

func (m Model) Running() bool  { return m.running }
func (m Model) Finished() bool { return m.finished }

func (m Model) Init() tea.Cmd {
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.lastErr = err
			}
		case "n":
			if !m.running {
				m.step()
			}
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = NewStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.nextFrame()
	}
	return m, nil
}

func (m *Model) step() {
	if m.finished {
		return
	}
	frames, err := m.exp.Simulator().Step(m.cfg)
	m.frames = frames
	m.lastErr = err
	m.record(frames)
	if m.Tick() >= m.cfg.Ticks {
		m.finished = true
		m.running = false
	}
}

func (m *Model) record(frames []dynamo.Frame[float64]) {
	m.energy = append(m.energy, metrics.TotalKinetic(frames))
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}

	for _, f := range frames {
		p := planar(f)
		m.viewport.Include(p.x, p.y)
		trail := append(m.trails[f.ID], p)
		if len(trail) > trailCapacity {
			trail = trail[1:]
		}
		m.trails[f.ID] = trail
	}
}

// planar projects a frame onto the x/y plane. 1D scenes lie on y = 0.
func planar(f dynamo.Frame[float64]) point {
	var p point
	if len(f.Position) > 0 {
		p.x = f.Position[0]
	}
	if len(f.Position) > 1 {
		p.y = f.Position[1]
	}
	return p
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, trail := range m.trails {
		for i := 1; i < len(trail); i++ {
			x0, y0 := m.viewport.Project(m.canvas, trail[i-1].x, trail[i-1].y)
			x1, y1 := m.viewport.Project(m.canvas, trail[i].x, trail[i].y)
			m.canvas.DrawLine(x0, y0, x1, y1)
		}
	}
	for _, f := range m.frames {
		p := planar(f)
		x, y := m.viewport.Project(m.canvas, p.x, p.y)
		m.canvas.Dot(x, y)
	}
}

func (m Model) status() string {
	switch {
	case m.finished:
		return m.styles.Good.Render("FINISHED")
	case !m.running:
		return m.styles.Warn.Render("PAUSED")
	default:
		return m.styles.Good.Render("RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	s := m.styles
	canvasView := lipgloss.NewStyle().Padding(1, 2).Render(m.canvas.String())

	var b strings.Builder
	b.WriteString(s.Header.Render(strings.ToUpper(m.scene.Name)) + "\n")
	b.WriteString(m.status() + "\n\n")

	b.WriteString(s.row("tick", fmt.Sprintf("%d/%d", m.Tick(), m.cfg.Ticks)))
	b.WriteString(s.row("time", fmt.Sprintf("%.2f", float64(m.Tick())*m.cfg.Dt)))
	b.WriteString(s.row("integrator", m.scene.Integrator))
	if len(m.energy) > 0 {
		b.WriteString(s.row("kinetic", fmt.Sprintf("%.3f", m.energy[len(m.energy)-1])))
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		b.WriteString("\n" + s.Graph.Render(chart) + "\n")
	}

	b.WriteString("\n")
	particles := m.exp.Particles()
	for i, f := range m.frames {
		name := fmt.Sprintf("#%d", f.ID)
		if i < len(particles) && particles[i].Name != "" {
			name = particles[i].Name
		}
		b.WriteString(s.row(name, fmt.Sprintf("x=%s v=%s", short(f.Position), short(f.Velocity))))
	}

	if m.lastErr != nil {
		b.WriteString("\n" + s.Bad.Render(truncate(m.lastErr.Error(), 44)) + "\n")
	}

	b.WriteString(s.Muted.Render("\nSP:Pause N:Step R:Reset\nT:Theme ?:Help Q:Quit"))
	statsView := s.Panel.Width(48).Render(b.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		help := s.Panel.Render(strings.Join([]string{
			"Space  pause/resume",
			"N      single step while paused",
			"R      restart the scene",
			"T      cycle themes (" + strings.Join(ThemeNames(), ", ") + ")",
			"?      toggle this help",
			"Q      quit",
		}, "\n"))
		return help + "\n\n" + mainView
	}
	return mainView
}

func short(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.2f", x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// RunLive opens the live view for a scene until the user quits.
func RunLive(scene *config.Scene, log *zap.Logger) error {
	m, err := NewModel(scene, log)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
