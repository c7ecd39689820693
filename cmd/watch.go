package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/acdrive/acdrive/internal/engine"
	"github.com/acdrive/acdrive/internal/model"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the host application's activity live",
	Long: `Poll the host application once per second and render its activity,
progress, and open alerts until interrupted with q or ctrl+c.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		eng, _, err := newEngine()
		if err != nil {
			return err
		}
		prog := tea.NewProgram(newWatchModel(eng, interval))
		_, err = prog.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("interval", time.Second, "Poll interval")
}

var (
	watchTitleStyle = lipgloss.NewStyle().Bold(true)
	watchBusyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	watchAlertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	watchDimStyle   = lipgloss.NewStyle().Faint(true)
)

type statusMsg struct {
	report model.StatusReport
	err    error
}

type tickMsg time.Time

type watchModel struct {
	eng      *engine.Engine
	interval time.Duration
	spin     spinner.Model
	report   model.StatusReport
	err      error
	polled   bool
}

func newWatchModel(eng *engine.Engine, interval time.Duration) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = watchBusyStyle
	return watchModel{eng: eng, interval: interval, spin: sp}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.poll())
}

func (m watchModel) poll() tea.Cmd {
	return func() tea.Msg {
		report, err := m.eng.Status()
		return statusMsg{report: report, err: err}
	}
}

func (m watchModel) schedule() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case statusMsg:
		m.report = msg.report
		m.err = msg.err
		m.polled = true
		return m, m.schedule()
	case tickMsg:
		return m, m.poll()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder
	b.WriteString(watchTitleStyle.Render("acdrive watch"))
	b.WriteString("\n\n")

	switch {
	case !m.polled:
		b.WriteString(m.spin.View() + " probing...\n")
	case m.err != nil:
		b.WriteString(watchAlertStyle.Render("error: "+m.err.Error()) + "\n")
	case m.report.Busy:
		b.WriteString(m.spin.View() + " busy\n")
		for _, line := range m.report.Activity {
			b.WriteString("  " + line + "\n")
		}
		if pct, ok := m.report.Progress(); ok {
			b.WriteString(fmt.Sprintf("  %.0f%%\n", pct*100))
		}
	default:
		b.WriteString("idle\n")
	}

	for _, alert := range m.report.Alerts {
		b.WriteString("\n" + watchAlertStyle.Render("alert: "+strings.Join(alert.Text, " ")) + "\n")
		if len(alert.Buttons) > 0 {
			b.WriteString("  buttons: " + strings.Join(alert.Buttons, ", ") + "\n")
		}
	}

	b.WriteString("\n" + watchDimStyle.Render("q to quit") + "\n")
	return b.String()
}
