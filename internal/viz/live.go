package viz

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/kasakh/quadlab/internal/integrand"
	"github.com/kasakh/quadlab/internal/quad"
)

const (
	liveBatch       = 512
	historyCapacity = 600
)

type TickMsg time.Time

// LiveModel accumulates Monte Carlo samples in ticked batches so the
// running estimate can be watched converging toward the known value.
type LiveModel struct {
	ig      integrand.Integrand
	dom     quad.Domain
	dim     int
	seed    int64
	rng     *rand.Rand
	point   quad.Point
	sum     float64
	count   int64
	history []float64
	running bool
}

func NewLiveModel(ig integrand.Integrand, dom quad.Domain, dim int, seed int64) LiveModel {
	return LiveModel{
		ig:      ig,
		dom:     dom,
		dim:     dim,
		seed:    seed,
		rng:     rand.New(rand.NewSource(seed)),
		point:   make(quad.Point, dim),
		history: make([]float64, 0, historyCapacity),
		running: true,
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.rng = rand.New(rand.NewSource(m.seed))
			m.sum = 0
			m.count = 0
			m.history = m.history[:0]
		}
	case TickMsg:
		if m.running {
			m.accumulate(liveBatch)
		}
		return m, tick()
	}
	return m, nil
}

func (m *LiveModel) accumulate(batch int) {
	width := m.dom.Width()
	for i := 0; i < batch; i++ {
		for ax := 0; ax < m.dim; ax++ {
			m.point[ax] = m.dom.Lower + width*m.rng.Float64()
		}
		m.sum += m.ig.F(m.point)
	}
	m.count += int64(batch)

	if len(m.history) == historyCapacity {
		copy(m.history, m.history[1:])
		m.history = m.history[:historyCapacity-1]
	}
	m.history = append(m.history, m.Estimate())
}

// Estimate returns the current running Monte Carlo estimate.
func (m LiveModel) Estimate() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count) * m.dom.Volume(m.dim)
}

func (m LiveModel) View() string {
	truth := m.ig.True(m.dom, m.dim)
	estimate := m.Estimate()
	absErr := math.Abs(estimate - truth)

	status := GoodStyle.Render("running")
	if !m.running {
		status = WarnStyle.Render("paused")
	}

	s := HeaderStyle.Render(fmt.Sprintf("monte carlo: %s (dim=%d)", m.ig.Name, m.dim)) + "\n"
	s += KV("status", "%s", status) + "\n"
	s += KV("samples", "%d", m.count) + "\n"
	s += KV("estimate", "%.8f", estimate) + "\n"
	s += KV("true value", "%.8f", truth) + "\n"
	s += KV("abs error", "%.2e", absErr) + "\n"
	if m.count > 0 {
		s += KV("1/sqrt(M)", "%.2e", 1/math.Sqrt(float64(m.count))) + "\n"
	}

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(10),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("running estimate"),
		)
		s += GraphStyle.Render(graph) + "\n"
		s += Sparkline(m.history, plotWidth) + "\n"
	}

	s += HelpStyle.Render("space pause · r reset · q quit")
	return s
}
