package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/attractor/internal/raster"
)

// Job runs a render, reporting through progress.
type Job func(progress raster.ProgressFunc) error

type progressMsg struct{ done, total int }

type doneMsg struct {
	err     error
	elapsed time.Duration
}

type tickMsg time.Time

const barWidth = 40

// ProgressModel shows a spinner, a progress bar and the elapsed time of a
// Job running in the background. It quits when the job finishes.
type ProgressModel struct {
	title    string
	job      Job
	theme    Theme
	styles   Styles
	updates  chan progressMsg
	finished chan doneMsg

	start    time.Time
	done     int
	total    int
	frame    int
	elapsed  time.Duration
	err      error
	complete bool
	aborted  bool
}

func NewProgressModel(title string, job Job, theme Theme) ProgressModel {
	return ProgressModel{
		title:    title,
		job:      job,
		theme:    theme,
		styles:   NewStyles(theme),
		updates:  make(chan progressMsg, 1),
		finished: make(chan doneMsg, 1),
		start:    time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/10, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m ProgressModel) Init() tea.Cmd {
	go func() {
		err := m.job(func(done, total int) {
			select {
			case m.updates <- progressMsg{done, total}:
			default:
			}
		})
		m.finished <- doneMsg{err: err, elapsed: time.Since(m.start)}
	}()
	return tea.Batch(m.wait(), tick())
}

func (m ProgressModel) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.updates:
			return msg
		case msg := <-m.finished:
			return msg
		}
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	case progressMsg:
		m.done, m.total = msg.done, msg.total
		return m, m.wait()
	case doneMsg:
		m.complete = true
		m.err = msg.err
		m.elapsed = msg.elapsed
		if m.total > 0 {
			m.done = m.total
		}
		return m, tea.Quit
	case tickMsg:
		m.frame++
		m.elapsed = time.Time(msg).Sub(m.start)
		return m, tick()
	}
	return m, nil
}

func (m ProgressModel) Fraction() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m ProgressModel) View() string {
	var sb strings.Builder
	switch {
	case m.complete && m.err != nil:
		sb.WriteString(m.styles.Error.Render("✗ " + m.title + ": " + m.err.Error()))
	case m.complete:
		sb.WriteString(m.styles.Success.Render("✓ "+m.title) + " " + m.styles.Label.Render("elapsed: ") + m.styles.Value.Render(FormatElapsed(m.elapsed)))
	default:
		sb.WriteString(m.styles.Title.Render(Spinner(m.frame)+" "+m.title) + "\n")
		sb.WriteString(ProgressBar(m.Fraction(), barWidth, m.theme))
		sb.WriteString(fmt.Sprintf(" %5.1f%%  ", m.Fraction()*100))
		sb.WriteString(m.styles.Label.Render("elapsed: ") + m.styles.Value.Render(FormatElapsed(m.elapsed)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m ProgressModel) Elapsed() time.Duration { return m.elapsed }
func (m ProgressModel) Err() error { return m.err }

// FormatElapsed prints durations the way the render log does: seconds with
// millisecond precision.
func FormatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunProgress runs job under a ProgressModel writing to out and returns the
// job's elapsed time and error. An interrupted job keeps running in the
// background and is reported as an error.
func RunProgress(title string, job Job, theme Theme, out io.Writer) (time.Duration, error) {
	p := tea.NewProgram(NewProgressModel(title, job, theme), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	m := final.(ProgressModel)
	if m.aborted {
		return m.elapsed, fmt.Errorf("%s: interrupted", title)
	}
	return m.elapsed, m.err
}
