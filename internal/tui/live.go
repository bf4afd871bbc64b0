// Package tui is a terminal viewer that advances a simulation one
// synchronization window per frame and charts the network as it runs.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/sontheimer/TVB-NEST-v1/internal/config"
	"github.com/sontheimer/TVB-NEST-v1/internal/cosim"
	"github.com/sontheimer/TVB-NEST-v1/internal/experiment"
	"github.com/sontheimer/TVB-NEST-v1/internal/rates"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	proxyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model steps the network window by window on each tick and keeps a
// rolling history of the traces it charts.
type Model struct {
	cfg *config.Config
	reg *experiment.Registry

	tvb    *cosim.TvbSim
	source rates.Source

	meanHistory   []float64
	regionHistory []float64
	lastState     []float64
	selected      int

	running bool
	done    bool
	err     error
}

func NewModel(cfg *config.Config, reg *experiment.Registry) (Model, error) {
	m := Model{cfg: cfg, reg: reg, running: true}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) rebuild() error {
	exp, err := experiment.New(m.cfg, m.reg)
	if err != nil {
		return err
	}
	src, err := m.reg.GetSource(m.cfg.RateSource, m.cfg.Seed)
	if err != nil {
		return err
	}
	m.tvb = exp.Sim()
	m.source = src
	m.meanHistory = m.meanHistory[:0]
	m.regionHistory = m.regionHistory[:0]
	m.lastState = nil
	m.done = false
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.rebuild(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		case "left", "h":
			m.selected = (m.selected + m.cfg.Network.Regions - 1) % m.cfg.Network.Regions
			m.regionHistory = m.regionHistory[:0]
		case "right", "l":
			m.selected = (m.selected + 1) % m.cfg.Network.Regions
			m.regionHistory = m.regionHistory[:0]
		}
	case TickMsg:
		if m.running && !m.done {
			if err := m.advance(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance runs one synchronization window.
func (m *Model) advance() error {
	nproxy := len(m.cfg.Network.ProxyIDs)
	steps := int(m.cfg.Synchronize/m.cfg.Dt + 0.5)

	var update *cosim.ProxyUpdate
	if nproxy > 0 {
		times, values := rates.Window(m.source, m.tvb.Time(), m.cfg.Dt, steps, nproxy)
		update = &cosim.ProxyUpdate{Times: times, Rates: values}
	}

	_, states, err := m.tvb.Run(m.cfg.Synchronize, update)
	if err != nil {
		return err
	}

	for _, row := range states {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		m.meanHistory = push(m.meanHistory, sum/float64(len(row)))
		m.regionHistory = push(m.regionHistory, row[m.selected])
	}
	if len(states) > 0 {
		m.lastState = states[len(states)-1]
	}

	if m.tvb.Time() >= m.cfg.Duration {
		m.done = true
	}
	return nil
}

func push(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m Model) Err() error { return m.err }

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(strings.ToUpper(m.cfg.Model.Name)) + "\n")

	status := "RUNNING"
	if m.done {
		status = "DONE"
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if len(m.meanHistory) > 1 {
		chart := asciigraph.Plot(m.meanHistory,
			asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("Mean field"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.regionHistory) > 1 {
		caption := fmt.Sprintf("Region %d", m.selected)
		if isProxy(m.cfg.Network.ProxyIDs, m.selected) {
			caption += " (proxy)"
		}
		chart := asciigraph.Plot(m.regionHistory,
			asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1f / %.1f ms", m.tvb.Time(), m.cfg.Duration)) + "\n")
	s.WriteString(labelStyle.Render("Regions") + valueStyle.Render(fmt.Sprintf("%d (%d simulated)", m.cfg.Network.Regions, m.tvb.NbNode)) + "\n")
	s.WriteString(labelStyle.Render("Proxies") + proxyStyle.Render(fmt.Sprintf("%v", m.cfg.Network.ProxyIDs)) + "\n")
	s.WriteString(labelStyle.Render("Rate source") + valueStyle.Render(m.source.Name()) + "\n")
	if len(m.meanHistory) > 0 {
		s.WriteString(labelStyle.Render("Mean field") + valueStyle.Render(fmt.Sprintf("%.4f", m.meanHistory[len(m.meanHistory)-1])) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause  R:Restart  ←/→:Region  Q:Quit"))
	return s.String()
}

func isProxy(proxies []int, region int) bool {
	for _, id := range proxies {
		if id == region {
			return true
		}
	}
	return false
}
