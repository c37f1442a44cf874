package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/page-push/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type pushProgressMsg application.Progress

type pushDoneMsg struct {
	result application.RunResult
}

type pushSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	result  application.RunResult
	done    bool
}

func newPushSpinnerModel(label string, run tea.Cmd) pushSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return pushSpinnerModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m pushSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m pushSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pushProgressMsg:
		m.label = msg.Message
		return m, nil
	case pushDoneMsg:
		m.done = true
		m.result = msg.result
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m pushSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runPushSpinner drives run under a spinner whose label follows the
// pipeline progress events.
func runPushSpinner(ctx context.Context, output io.Writer, run func(context.Context, application.ProgressFunc) application.RunResult) (application.RunResult, error) {
	var p *tea.Program

	runCmd := func() tea.Msg {
		return pushDoneMsg{result: run(ctx, func(progress application.Progress) {
			p.Send(pushProgressMsg(progress))
		})}
	}

	p = tea.NewProgram(
		newPushSpinnerModel("Pushing page...", runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return application.RunResult{}, err
	}

	result, ok := finalModel.(pushSpinnerModel)
	if !ok {
		return application.RunResult{}, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.result, nil
}
