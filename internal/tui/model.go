package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/missiongen/internal/clipboard"
	"github.com/csheth/missiongen/internal/llm"
	"github.com/csheth/missiongen/internal/metrics"
)

// DefaultRequestTimeout bounds a single generation when Config leaves it unset.
const DefaultRequestTimeout = 60 * time.Second

// Config wires runtime options into the TUI program.
type Config struct {
	// LLM may be nil or llm.Unavailable; submits then fail with the configuration message.
	LLM            llm.Client
	Clipboard      clipboard.Writer
	Logger         *zap.Logger
	Metrics        *metrics.Recorder
	RequestTimeout time.Duration
}

type tab int

const (
	tabGenerator tab = iota
	tabAbout
)

var tabTitles = []string{"Generator", "About"}

func (t tab) next() tab { return (t + 1) % tab(len(tabTitles)) }
func (t tab) prev() tab { return (t + tab(len(tabTitles)) - 1) % tab(len(tabTitles)) }

type model struct {
	config  Config
	logger  *zap.Logger
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	jobs    *jobBus
	layout  pageLayout

	tab       tab
	generator *generatorView
	about     aboutView
	instances uint64
	lastJobs  map[jobKind]jobSnapshot
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.LLM == nil {
		config.LLM = llm.Unavailable(nil)
	}
	if config.Clipboard == nil {
		config.Clipboard = clipboard.System()
	}
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		config:   config,
		logger:   config.Logger.Named("tui"),
		keys:     newKeyMap(),
		help:     help.New(),
		spinner:  spin,
		jobs:     newJobBus(config.Logger),
		layout:   newPageLayout(),
		tab:      tabGenerator,
		lastJobs: map[jobKind]jobSnapshot{},
	}
	m.about = newAboutView(m.layout)
	m.mountGenerator()
	m.syncKeys()
	return m
}

func (m *model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	m.syncKeys()
	return next, cmd
}

func (m *model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.help.Width = m.layout.contentWidth
		if m.generator != nil {
			m.generator.resize(m.layout)
		}
		m.about.resize(m.layout)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		if m.tab == tabAbout {
			return m, m.about.update(msg)
		}
		return m, nil
	case spinner.TickMsg:
		if m.generator != nil && m.generator.session.Pending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.lastJobs[msg.Snapshot.Kind] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.lastJobs[msg.Snapshot.Kind] = msg.Snapshot
		if msg.Payload == nil {
			return m, nil
		}
		return m.update(msg.Payload)
	case generationResultMsg:
		m.handleGenerationResult(msg)
		return m, nil
	case copyResultMsg:
		return m, m.handleCopyResult(msg)
	case copyExpiredMsg:
		if v := m.current(msg.instance); v != nil {
			v.session.ExpireCopy(msg.token)
		}
		return m, nil
	}
	if m.tab == tabGenerator && m.generator != nil {
		return m, m.generator.updateInput(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.QuitAlt):
		m.unmountGenerator()
		return tea.Quit
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(m.tab.next())
	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(m.tab.prev())
	case key.Matches(msg, m.keys.Generator), key.Matches(msg, m.keys.Back):
		return m.switchTab(tabGenerator)
	case key.Matches(msg, m.keys.About):
		return m.switchTab(tabAbout)
	}

	if m.tab == tabAbout || m.generator == nil {
		return m.about.update(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Copy):
		return m.copyStatement()
	}
	return m.generator.updateInput(msg)
}

// syncKeys enables navigation shortcuts only where they cannot collide with typing.
func (m *model) syncKeys() {
	typing := m.tab == tabGenerator
	m.keys.Submit.SetEnabled(typing)
	m.keys.Copy.SetEnabled(typing)
	m.keys.Generator.SetEnabled(!typing)
	m.keys.About.SetEnabled(!typing)
	m.keys.Back.SetEnabled(!typing)
	m.keys.Scroll.SetEnabled(!typing)
	m.keys.QuitAlt.SetEnabled(!typing)
}

func (m *model) switchTab(target tab) tea.Cmd {
	if target == m.tab {
		return nil
	}
	m.tab = target
	if target == tabAbout {
		m.unmountGenerator()
		m.about.viewport.GotoTop()
		return nil
	}
	m.mountGenerator()
	return textarea.Blink
}

func (m *model) mountGenerator() {
	m.instances++
	m.generator = newGeneratorView(m.instances, m.layout)
	m.logger.Debug("generator mounted", zap.Uint64("instance", m.instances))
}

func (m *model) unmountGenerator() {
	if m.generator == nil {
		return
	}
	m.generator.close()
	m.logger.Debug("generator unmounted", zap.Uint64("instance", m.generator.id))
	m.generator = nil
}

// current returns the mounted generator if it is the given instance.
func (m *model) current(instance uint64) *generatorView {
	if m.generator == nil || m.generator.id != instance {
		return nil
	}
	return m.generator
}

func (m *model) submit() tea.Cmd {
	v := m.generator
	req, ok := v.session.Submit()
	if !ok {
		return nil
	}
	v.notice = ""
	m.logger.Info("generation submitted",
		zap.Uint64("instance", v.id),
		zap.Uint64("request", req.ID),
		zap.Int("description_bytes", len(v.session.Description())),
		zap.String("client", m.config.LLM.Name()),
	)
	return tea.Batch(
		m.jobs.Start(jobKindGenerate, generateJob(m.config.LLM, v.id, req, m.config.RequestTimeout)),
		m.spinner.Tick,
	)
}

func (m *model) handleGenerationResult(msg generationResultMsg) {
	v := m.current(msg.instance)
	if v == nil {
		m.logger.Debug("dropping result for unmounted generator",
			zap.Uint64("instance", msg.instance),
			zap.Uint64("request", msg.requestID),
		)
		return
	}
	if msg.err != nil {
		v.session.Reject(msg.requestID, msg.err)
		return
	}
	v.session.Resolve(msg.requestID, msg.statement)
}

func (m *model) copyStatement() tea.Cmd {
	v := m.generator
	text := v.session.State().Statement()
	if text == "" {
		return nil
	}
	return m.jobs.Start(jobKindCopy, copyJob(m.config.Clipboard, v.id, text))
}

func (m *model) handleCopyResult(msg copyResultMsg) tea.Cmd {
	v := m.current(msg.instance)
	if v == nil {
		return nil
	}
	if msg.err != nil {
		outcome := metrics.CopyFailed
		if errors.Is(msg.err, clipboard.ErrUnavailable) {
			outcome = metrics.CopyUnavailable
		}
		m.config.Metrics.ObserveCopy(outcome)
		m.logger.Warn("clipboard write failed", zap.Error(msg.err))
		v.notice = copyFailureNotice(msg.err)
		return nil
	}
	token, ok := v.session.Copy()
	if !ok {
		return nil
	}
	v.notice = ""
	m.config.Metrics.ObserveCopy(metrics.CopyOK)
	return copyExpiryCmd(v.id, token)
}
