package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/quotedesk/internal/dashboard"
)

const reportTimeout = 30 * time.Second

type reportState int

const (
	reportStateTimeframe reportState = iota
	reportStateLoading
	reportStateResult
)

// ReportModel shows revenue, expenses and net profit over a chosen range.
type ReportModel struct {
	CommonModel
	dashboard *dashboard.Service

	state           reportState
	timeframePicker TimeframePicker
	spinner         spinner.Model

	report *dashboard.Report
	err    error
}

func NewReportModel(svc *dashboard.Service) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accent)

	return ReportModel{
		dashboard:       svc,
		state:           reportStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
		spinner:         s,
	}
}

func (m ReportModel) Title() string { return "Financial Report" }

func (m ReportModel) ShortHelp() string {
	switch m.state {
	case reportStateResult:
		return "Esc: choose another range"
	case reportStateLoading:
		return "Computing..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		start, end := tfMsg.Start, tfMsg.End
		if tfMsg.All {
			// All time: a window wide enough for every stored record.
			start = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
			end = time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)
		}

		m.state = reportStateLoading
		m.err = nil

		return m, tea.Batch(m.spinner.Tick, m.runReportCmd(start, end))
	}

	switch m.state {
	case reportStateTimeframe:
		return m.updateTimeframe(msg)
	case reportStateLoading:
		return m.updateLoading(msg)
	case reportStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m ReportModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m ReportModel) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(reportResultMsg); ok {
		m.state = reportStateResult
		m.report, m.err = result.report, result.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ReportModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = reportStateTimeframe
		m.timeframePicker.Reset()

		return m, nil
	}

	return m, nil
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case reportStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Computing report...", m.spinner.View()),
		)

	case reportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ReportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	r := m.report

	net := FormatAmount(r.Net())
	if r.Net().IsNegative() {
		net = errorStyle(net)
	} else {
		net = okStyle(net)
	}

	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Report %s - %s", FormatDate(r.StartDate), FormatDate(r.EndDate)),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			fmt.Sprintf("Revenue:   %s", FormatAmount(r.Revenue)),
			fmt.Sprintf("Expenses:  %s", FormatAmount(r.Expenses)),
			fmt.Sprintf("Net:       %s", net),
			"",
			fmt.Sprintf("Invoiced:  %s", FormatAmount(r.Invoiced)),
		),
	)
}

type reportResultMsg struct {
	report *dashboard.Report
	err    error
}

func (m ReportModel) runReportCmd(start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		report, err := m.dashboard.FinancialReport(ctx, start, end)

		return reportResultMsg{report: report, err: err}
	}
}
