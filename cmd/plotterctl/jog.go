package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"goplot/host/sender"
	"goplot/host/serial"
)

type JogCommand struct {
	Device string `long:"device" short:"d" default:"/dev/ttyACM0" description:"Serial device"`
	Baud   int    `long:"baud" short:"b" default:"9600" description:"Baud rate"`
	Step   int    `long:"step" default:"100" description:"Half-steps per keypress"`
}

const (
	jogHeaderHeight = 2
	jogFooterHeight = 7
	jogBorderSize   = 2
	jogMaxLogs      = 4
)

var axisColors = map[string]string{
	"X": "196", // red
	"Y": "46",  // green
	"Z": "51",  // cyan
}

var (
	jogTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	jogChartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	jogStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ackMsg reports a completed jog move.
type ackMsg struct {
	axis  string
	steps int
	err   error
}

// homedMsg reports a completed homing cycle.
type homedMsg struct{ err error }

type jogModel struct {
	s        *sender.Sender
	chart    *streamlinechart.Model
	step     int
	pos      map[string]int64
	busy     bool
	quitting bool
	width    int
	height   int
	logs     []string
}

func newJogModel(s *sender.Sender, step int) jogModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-5000, 5000),
	)
	for axis, color := range axisColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		chart.SetDataSetStyles(axis, runes.ThinLineStyle, style)
	}
	return jogModel{
		s:     s,
		chart: &chart,
		step:  step,
		pos:   map[string]int64{"X": 0, "Y": 0, "Z": 0},
	}
}

func (m *jogModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > jogMaxLogs {
		m.logs = m.logs[len(m.logs)-jogMaxLogs:]
	}
}

func (m *jogModel) resizeChart() {
	w := m.width - jogBorderSize - 2
	if w < 40 {
		w = 40
	}
	h := m.height - jogHeaderHeight - jogFooterHeight - jogBorderSize
	if h < 10 {
		h = 10
	}
	m.chart.Resize(w, h)
}

// jog sends one relative move in the background.
func jog(s *sender.Sender, axis string, steps int) tea.Cmd {
	return func() tea.Msg {
		err := s.Send(fmt.Sprintf("G0 %s%d", axis, steps))
		return ackMsg{axis: axis, steps: steps, err: err}
	}
}

func home(s *sender.Sender) tea.Cmd {
	return func() tea.Msg {
		return homedMsg{err: s.Send("G28")}
	}
}

func (m jogModel) Init() tea.Cmd { return nil }

func (m jogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "right":
			m.busy = true
			return m, jog(m.s, "X", m.step)
		case "left":
			m.busy = true
			return m, jog(m.s, "X", -m.step)
		case "up":
			m.busy = true
			return m, jog(m.s, "Y", m.step)
		case "down":
			m.busy = true
			return m, jog(m.s, "Y", -m.step)
		case "u":
			m.busy = true
			return m, jog(m.s, "Z", m.step)
		case "d":
			m.busy = true
			return m, jog(m.s, "Z", -m.step)
		case "h":
			m.busy = true
			m.addLog("homing...")
			return m, home(m.s)
		case "+", "=":
			m.step *= 2
			return m, nil
		case "-":
			if m.step > 1 {
				m.step /= 2
			}
			return m, nil
		}

	case ackMsg:
		m.busy = false
		if msg.err != nil {
			m.addLog(fmt.Sprintf("move failed: %v", msg.err))
			return m, nil
		}
		m.pos[msg.axis] += int64(msg.steps)
		m.pushPositions()
		return m, nil

	case homedMsg:
		m.busy = false
		if msg.err != nil {
			m.addLog(fmt.Sprintf("homing failed: %v", msg.err))
			return m, nil
		}
		m.pos["X"], m.pos["Y"], m.pos["Z"] = 0, 0, 0
		m.pushPositions()
		m.addLog("homed")
		return m, nil
	}

	return m, nil
}

func (m *jogModel) pushPositions() {
	for axis, pos := range m.pos {
		m.chart.PushDataSet(axis, float64(pos))
	}
	m.chart.DrawAll()
}

func (m jogModel) View() string {
	if m.quitting {
		return "Jog session ended.\n"
	}

	var sb strings.Builder
	sb.WriteString(jogTitleStyle.Render("Plotter Jog"))
	sb.WriteString(fmt.Sprintf(" - step %d", m.step))
	if m.busy {
		sb.WriteString(jogStatusStyle.Render("  [moving]"))
	}
	sb.WriteString("\n\n")

	sb.WriteString(jogChartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(renderAxisLegend(m.pos))
	sb.WriteString("\n")

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))
	var logLines string
	if len(m.logs) == 0 {
		logLines = jogStatusStyle.Render("arrows: XY  u/d: pen  h: home  +/-: step  q: quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderAxisLegend(pos map[string]int64) string {
	var items []string
	for _, axis := range []string{"X", "Y", "Z"} {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(axisColors[axis])).Bold(true)
		items = append(items, fmt.Sprintf("%s %s=%d", colorStyle.Render("━━"), axis, pos[axis]))
	}
	return strings.Join(items, "  ")
}

func (c *JogCommand) Execute(args []string) error {
	port, err := serial.Open(serial.Config{Device: c.Device, Baud: c.Baud})
	if err != nil {
		return err
	}
	defer port.Close()

	s := sender.New(port)
	if err := s.WaitReady(10 * time.Second); err != nil {
		return err
	}
	// Jogs are relative moves.
	if err := s.Send("G91"); err != nil {
		return err
	}

	p := tea.NewProgram(newJogModel(s, c.Step), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
