package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/vladimirovertheworld/attractors/internal/control"
	"github.com/vladimirovertheworld/attractors/internal/dynamo"
	"github.com/vladimirovertheworld/attractors/internal/experiment"
	"github.com/vladimirovertheworld/attractors/internal/sim"
	"github.com/vladimirovertheworld/attractors/internal/trajectory"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300
	// maxDrawn bounds how much of a growing polyline is projected per frame.
	maxDrawn        = 8000
	nudgeStep       = 0.02
)

// DefaultTickInterval is the redraw period of the live view.
const DefaultTickInterval = 50 * time.Millisecond

type TickMsg time.Time

// batchMsg carries a background precompute back onto the update loop.
// epoch identifies the field and parameters it was started for.
type batchMsg struct {
	sim.Outcome
	epoch int
}

// Options configure the live view.
type Options struct {
	TickInterval time.Duration
	Theme        string
	// Slider builds the control for one parameter; nil spreads 100
	// positions over the parameter range.
	Slider func(field string, spec dynamo.ParamSpec) control.Slider
	// BatchSamples and BatchSpan size the precomputed overlay.
	BatchSamples int
	BatchSpan    float64
	GIFPath      string
}

func DefaultOptions() Options {
	return Options{
		TickInterval: DefaultTickInterval,
		Theme:        ThemeNeon.Name,
		BatchSamples: 10000,
		BatchSpan:    50,
		GIFPath:      "attractor.gif",
	}
}

// Model is the bubbletea front end of a streaming session. It owns the
// timer; the session only steps when asked.
type Model struct {
	session  *sim.Session
	registry *experiment.Registry
	names    []string
	fieldIdx int
	panel    *control.Panel
	selected int
	opts     Options

	canvas *Canvas
	camera *Camera
	theme  int
	styles styles

	snap    sim.Snapshot
	history []float64
	batch   []dynamo.State
	pending bool
	epoch   int

	recording bool
	recorder  *Recorder
	message   string
	showHelp  bool
}

var _ sim.Sink = (*Model)(nil)

// NewModel wraps s. reg supplies the fields cycled with n/p; nil means
// the default registry.
func NewModel(reg *experiment.Registry, s *sim.Session, opts Options) Model {
	if reg == nil {
		reg = experiment.Default()
	}
	def := DefaultOptions()
	if opts.TickInterval <= 0 {
		opts.TickInterval = def.TickInterval
	}
	if opts.BatchSamples < 1 {
		opts.BatchSamples = def.BatchSamples
	}
	if opts.BatchSpan <= 0 {
		opts.BatchSpan = def.BatchSpan
	}
	if opts.GIFPath == "" {
		opts.GIFPath = def.GIFPath
	}
	if opts.Slider == nil {
		opts.Slider = func(field string, spec dynamo.ParamSpec) control.Slider {
			return control.FitSlider(field, spec, 100)
		}
	}

	names := reg.Names()
	idx := 0
	for i, n := range names {
		if n == s.Field().Name {
			idx = i
		}
	}
	panel := control.NewPanel(s.Field())
	var message string
	if err := panel.Apply(s.Field().ParamMap(s.Params())); err != nil {
		for i := 0; i < panel.Len(); i++ {
			panel.Nudge(i, 0)
		}
		if serr := s.SetParams(panel.Values()); serr != nil {
			message = serr.Error()
		} else {
			message = "params clamped: " + err.Error()
		}
	}

	theme := ThemeIndex(opts.Theme)
	s.Buffer().SetGradient(Themes[theme].Gradient)

	return Model{
		session:  s,
		registry: reg,
		names:    names,
		fieldIdx: idx,
		panel:    panel,
		opts:     opts,
		canvas:   NewCanvas(width, height),
		camera:   NewCamera(),
		theme:    theme,
		styles:   newStyles(Themes[theme]),
		snap:     s.Snapshot(),
		history:  make([]float64, 0, historyCapacity),
		recorder: NewRecorder(),
		message:  message,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and drives the session.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.Render(m.session.Tick())
		if m.recording {
			m.recorder.Capture(m.canvas)
		}
		return m, m.tick()
	case batchMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		m.pending = false
		if msg.Err != nil {
			m.message = "batch: " + msg.Err.Error()
			return m, nil
		}
		m.batch = msg.Result.Finite()
		m.message = fmt.Sprintf("batch: %d states over [%g, %g]", len(m.batch), msg.Config.T0, msg.Config.TMax)
		if msg.Result.Diverged >= 0 {
			m.message += fmt.Sprintf(", diverged at %d", msg.Result.Diverged)
		}
		m.draw()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		if m.session.Status() == sim.Running {
			m.session.Stop()
		} else {
			m.session.Start()
			m.history = m.history[:0]
		}
	case "r":
		m.session.Start()
		m.history = m.history[:0]
	case "R":
		m.panel.Reset()
		m.applyPanel()
	case "n":
		m.switchField(1)
	case "p":
		m.switchField(-1)
	case "tab":
		if m.panel.Len() > 0 {
			m.selected = (m.selected + 1) % m.panel.Len()
		}
	case "shift+tab":
		if m.panel.Len() > 0 {
			m.selected = (m.selected + m.panel.Len() - 1) % m.panel.Len()
		}
	case "up", "k":
		m.nudge(nudgeStep)
	case "down", "j":
		m.nudge(-nudgeStep)
	case "]":
		m.slide(1)
	case "[":
		m.slide(-1)
	case "b":
		if m.batch != nil {
			m.batch = nil
			m.message = ""
			break
		}
		if m.pending {
			break
		}
		m.pending = true
		m.message = "batch: computing..."
		return m, m.precompute()
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
		m.styles = newStyles(Themes[m.theme])
		m.session.Buffer().SetGradient(Themes[m.theme].Gradient)
	case "a":
		m.camera.AutoRotate = !m.camera.AutoRotate
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	}
	m.snap = m.session.Snapshot()
	return m, nil
}

func (m *Model) switchField(dir int) {
	if len(m.names) == 0 {
		return
	}
	m.fieldIdx = (m.fieldIdx + dir + len(m.names)) % len(m.names)
	f, err := m.registry.Lookup(m.names[m.fieldIdx])
	if err != nil {
		m.message = err.Error()
		return
	}
	m.session.SetField(f)
	m.panel = control.NewPanel(f)
	m.selected = 0
	m.history = m.history[:0]
	m.dropBatch()
	m.message = ""
}

func (m *Model) nudge(fraction float64) {
	if m.panel.Len() == 0 {
		return
	}
	m.panel.Nudge(m.selected, fraction)
	m.applyPanel()
}

func (m *Model) slide(dir int) {
	if m.panel.Len() == 0 {
		return
	}
	spec := m.panel.Spec(m.selected)
	sl := m.opts.Slider(m.session.Field().Name, spec)
	cur, _ := m.panel.Get(spec.Name)
	if err := m.panel.SetPosition(sl, sl.Position(cur)+dir); err != nil {
		m.message = err.Error()
		return
	}
	m.applyPanel()
}

// applyPanel hands the panel values to the session, which restarts if
// running.
func (m *Model) applyPanel() {
	if err := m.session.SetParams(m.panel.Values()); err != nil {
		m.message = err.Error()
		return
	}
	m.history = m.history[:0]
	m.dropBatch()
	m.message = ""
}

// dropBatch clears the overlay and orphans any precompute in flight.
func (m *Model) dropBatch() {
	m.batch = nil
	m.pending = false
	m.epoch++
}

func (m Model) precompute() tea.Cmd {
	f := m.session.Field()
	cfg := experiment.Config{
		Field:   f.Name,
		Params:  f.ParamMap(m.panel.Values()),
		Samples: m.opts.BatchSamples,
		TMax:    m.opts.BatchSpan,
	}
	ch := sim.PrecomputeAsync(context.Background(), m.registry, cfg)
	epoch := m.epoch
	return func() tea.Msg {
		return batchMsg{Outcome: <-ch, epoch: epoch}
	}
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.recorder.Reset()
		m.message = "recording"
		return
	}
	m.recording = false
	n := m.recorder.Len()
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.message = "gif: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("saved %d frames to %s", n, m.opts.GIFPath)
}

// Render takes a snapshot from the session and redraws the canvas.
func (m *Model) Render(snap sim.Snapshot) {
	if snap.Steps < m.snap.Steps || snap.Field != m.snap.Field {
		m.history = m.history[:0]
	}
	m.snap = snap
	if snap.Status == sim.Running && len(snap.Points) > 0 {
		m.history = append(m.history, snap.State[0])
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
	if snap.Diverged && snap.Divergence != nil {
		m.message = snap.Divergence.Error()
	}
	m.camera.Advance()
	m.draw()
}

func (m *Model) draw() {
	m.canvas.Clear()
	pts := m.snap.Points
	if len(pts) > maxDrawn {
		pts = pts[len(pts)-maxDrawn:]
	}

	fitOn := make([]dynamo.State, 0, len(pts))
	for _, p := range pts {
		fitOn = append(fitOn, p.State)
	}
	if len(m.batch) > 0 {
		fitOn = m.batch
	}
	frame := FitFrame(fitOn)

	if len(m.batch) > 0 {
		Render3D(m.canvas, m.batchWireframe(frame), m.camera)
	}
	scatter := m.session.Config().Policy.IsCapped()
	Render3D(m.canvas, TrajectoryWireframe(pts, frame, !scatter), m.camera)
}

// batchWireframe thins the precomputed path to at most maxDrawn points
// and dims it so the live trail stays readable on top.
func (m *Model) batchWireframe(f Frame) *Wireframe {
	stride := len(m.batch)/maxDrawn + 1
	n := (len(m.batch) + stride - 1) / stride
	g := Themes[m.theme].Gradient
	pts := make([]trajectory.Point, 0, n)
	for i := 0; i < len(m.batch); i += stride {
		age := trajectory.Age(len(pts), n)
		pts = append(pts, trajectory.Point{State: m.batch[i], Age: age, Color: trajectory.Fade(g.At(age), 0.35)})
	}
	return TrajectoryWireframe(pts, f, true)
}

func (m Model) statusLine() string {
	var status string
	switch {
	case m.snap.Diverged:
		status = m.styles.diverged.Render("DIVERGED")
	case m.snap.Status == sim.Running:
		status = m.styles.running.Render("RUNNING")
	default:
		status = m.styles.idle.Render("IDLE")
	}
	if m.recording {
		status += "  " + m.styles.recording.Render("● REC")
	}
	return status
}

// View renders the canvas beside a stats panel.
func (m Model) View() string {
	st := m.styles
	f := m.session.Field()
	cfg := m.session.Config()
	canvasView := st.canvas.Render(m.canvas.Render())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(f.Title)) + "\n")
	s.WriteString(m.statusLine() + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("x(t)"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Field", fmt.Sprintf("%s (%d/%d)", f.Name, m.fieldIdx+1, len(m.names)))
	row("Mode", cfg.Policy.String())
	row("dt", fmt.Sprintf("%g × %d", cfg.Dt, cfg.StepsPerTick))
	row("Time", fmt.Sprintf("%.2f", float64(m.snap.Steps)*cfg.Dt))
	row("Points", fmt.Sprintf("%d", len(m.snap.Points)))
	row("State", m.snap.State.String())
	row("Theme", Themes[m.theme].Name)

	s.WriteString("\nPARAMETERS\n")
	if m.panel.Len() == 0 {
		s.WriteString(st.label.Render("  (none)") + "\n")
	}
	for i := 0; i < m.panel.Len(); i++ {
		spec := m.panel.Spec(i)
		v, _ := m.panel.Get(spec.Name)
		sl := m.opts.Slider(f.Name, spec)
		fraction := 0.0
		if spec.Max > spec.Min {
			fraction = (v - spec.Min) / (spec.Max - spec.Min)
		}
		line := fmt.Sprintf("%-6s %s %8.4g %3d", spec.Name, st.progressBar(fraction, 10), v, sl.Position(v))
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}
	if m.message != "" {
		s.WriteString("\n" + st.value.Render(m.message) + "\n")
	}
	s.WriteString("\n" + st.separator(40))
	s.WriteString(st.help.Render("\nSP:Start/Stop N/P:Field Q:Quit\nTab:Param ↑↓:Tune [ ]:Slide\nB:Batch G:Record T:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Start/Stop               ║
║  R / r    - Defaults / Restart       ║
║  N / P    - Next/Previous field      ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+2%) ║
║  Down/J   - Decrease parameter (-2%) ║
║  [ ]      - Step parameter slider    ║
║  B        - Toggle batch overlay     ║
║  X Y Z    - Rotate (shift reverses)  ║
║  + -      - Zoom                     ║
║  A        - Toggle auto-rotate       ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
