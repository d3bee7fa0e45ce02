package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/treedec/treedec/pkg/decomp"
	"github.com/treedec/treedec/pkg/hypergraph"
	"github.com/treedec/treedec/pkg/solver"
)

// iterationMsg carries one completed solver iteration into the watch UI.
type iterationMsg struct {
	maxBagSize int
	bags       int
}

// watchModel is the bubbletea model behind `decompose --watch`. Every
// completed iteration is an improvement (the solver prunes the rest), so
// the model renders the shrinking width as a short history.
type watchModel struct {
	iterations []iterationMsg
	best       int
	quitting   bool
}

func (m watchModel) Init() tea.Cmd { return nil }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case iterationMsg:
		m.iterations = append(m.iterations, msg)
		if m.best == 0 || msg.maxBagSize < m.best {
			m.best = msg.maxBagSize
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// historyWindow bounds how many improvements the watch view keeps on
// screen.
const historyWindow = 10

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("Width search") + "\n")

	start := 0
	if len(m.iterations) > historyWindow {
		start = len(m.iterations) - historyWindow
	}
	for i, it := range m.iterations[start:] {
		line := fmt.Sprintf("  improvement %-3d width %s  (%d bags)",
			start+i+1, styleNumber.Render(fmt.Sprintf("%3d", it.maxBagSize-1)), it.bags)
		b.WriteString(line + "\n")
	}
	if len(m.iterations) == 0 {
		b.WriteString(styleDim.Render("  waiting for the first candidate...") + "\n")
	}
	b.WriteString(styleDim.Render("  q to hide") + "\n")
	return b.String()
}

// watchProgress starts the watch UI and returns a solver progress
// callback feeding it, together with a stop function that tears the UI
// down.
func watchProgress(ctx context.Context) (solver.ProgressFunc, func()) {
	program := tea.NewProgram(watchModel{}, tea.WithContext(ctx), tea.WithOutput(os.Stderr))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = program.Run()
	}()

	progressFn := func(_ *hypergraph.Graph, t *decomp.Tree, maxBagSize int) {
		program.Send(iterationMsg{maxBagSize: maxBagSize, bags: t.NodeCount()})
	}
	stop := func() {
		program.Quit()
		<-done
	}
	return progressFn, stop
}
