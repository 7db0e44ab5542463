package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/HecaiYuan/crossfs/internal/pathing"
	"github.com/HecaiYuan/crossfs/internal/queue"
	"github.com/HecaiYuan/crossfs/internal/schema"
)

//nolint:gochecknoglobals
var (
	// titleStyle defines the style for a panel's title.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	// borderStyle defines the style for a panel's borders.
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4"))

	// infoStyle defines the style for a panel's text.
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	// helpStyle defines the style for the help panel's text.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(0, 1)
)

// QueueProgressMsg is a [tea.Msg] containing [queue.Progress] information.
type QueueProgressMsg struct {
	t             time.Time
	operationData queue.Progress
}

// entriesMsg is a [tea.Msg] carrying a freshly listed directory. A failed
// listing keeps the previously shown directory in place.
type entriesMsg struct {
	path    string
	entries []entryRow
	failed  bool
}

// operationDoneMsg is a [tea.Msg] reporting that a queued operation batch has
// finished draining, successfully or not.
type operationDoneMsg struct{}

// entryRow is a single listed directory entry with its portable metadata.
type entryRow struct {
	name string
	info schema.PathInfo
}

// promptKind enumerates what the input prompt is currently collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptGlob
	promptMkdir
	promptRename
	promptCopy
)

// promptPlaceholder returns the input hint shown while a prompt kind is
// collecting, matching how submitPrompt resolves the collected value.
func promptPlaceholder(kind promptKind) string {
	switch kind {
	case promptGlob:
		return "glob pattern"

	case promptMkdir:
		return "directory name or path"

	case promptRename:
		return "new name or path"

	case promptCopy:
		return "target name or path"

	case promptNone:
	}

	return ""
}

// TeaModel is the principal [tea.Model] for the command-line user interface.
type TeaModel struct {
	width  int
	height int

	ctx    context.Context //nolint:containedctx
	cancel context.CancelFunc

	uiHandler *Handler
	fsOps     fsProvider
	runner    operationRunner
	opQueue   *queue.OperationQueue

	path       string
	entries    []entryRow
	showHidden bool

	prompting bool
	promptFor promptKind
	promptArg string

	fullWidthWithBorders  int
	tableWidthWithBorders int
	sideWidthWithBorders  int

	operationData queue.Progress

	entryTable        table.Model
	prompt            textinput.Model
	operationProgress progress.Model
	logsViewport      viewport.Model
	logs              []string

	ready bool
}

// NewTeaModel returns an initial new [TeaModel].
//
//nolint:mnd
func NewTeaModel(ctx context.Context, cancel context.CancelFunc, uiHandler *Handler, fsOps fsProvider,
	runner operationRunner, opQueue *queue.OperationQueue, startPath string, showHidden bool,
) TeaModel {
	operationProgress := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(80),
	)

	logsViewport := viewport.New(80, 20)

	entryTable := table.New(
		table.WithColumns(entryColumns(76)),
		table.WithFocused(true),
		table.WithHeight(16),
	)

	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA"))
	tableStyles.Selected = tableStyles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Bold(false)
	entryTable.SetStyles(tableStyles)

	prompt := textinput.New()
	prompt.Prompt = "> "
	prompt.CharLimit = 512

	return TeaModel{
		ctx:               ctx,
		cancel:            cancel,
		uiHandler:         uiHandler,
		fsOps:             fsOps,
		runner:            runner,
		opQueue:           opQueue,
		path:              startPath,
		showHidden:        showHidden,
		operationData:     queue.Progress{},
		entryTable:        entryTable,
		prompt:            prompt,
		operationProgress: operationProgress,
		logsViewport:      logsViewport,
		logs:              make([]string, 0, 100),
		ready:             false,
	}
}

// entryColumns lays out the listing columns for a given table width, with the
// name column absorbing the remaining space.
//
//nolint:mnd
func entryColumns(width int) []table.Column {
	nameWidth := max(16, width-39)

	return []table.Column{
		{Title: "Name", Width: nameWidth},
		{Title: "Type", Width: 9},
		{Title: "Size", Width: 10},
		{Title: "Modified", Width: 14},
	}
}

// Init initializes the model within a [tea.Program]. The handler is marked
// ready here, as the message loop is live from this point on and may be sent
// to from other goroutines.
func (m TeaModel) Init() tea.Cmd {
	m.uiHandler.Ready.Store(true)

	return tea.Batch(
		tea.EnterAltScreen,
		updateQueueProgress(m.opQueue),
		m.loadEntries(m.path),
	)
}

// updateQueueProgress produces a [tea.Cmd] for later scheduling in a
// [tea.Program]. When executed, a [QueueProgressMsg] with the operation
// queue's [queue.Progress] is returned.
func updateQueueProgress(q *queue.OperationQueue) tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { //nolint:mnd
		queueProgressMsg := QueueProgressMsg{
			t:             t,
			operationData: q.Progress(),
		}

		return queueProgressMsg
	})
}

// loadEntries produces a [tea.Cmd] that lists a directory through the
// portable filesystem handler and stats each entry for the listing columns.
func (m TeaModel) loadEntries(path string) tea.Cmd {
	ctx := m.ctx
	fsOps := m.fsOps
	showHidden := m.showHidden

	return func() tea.Msg {
		var entries []entryRow

		err := fsOps.Enumerate(ctx, path, func(_ string, name string) schema.EnumerationResult {
			if !showHidden && strings.HasPrefix(name, ".") {
				return schema.EnumContinue
			}

			entries = append(entries, entryRow{name: name})

			return schema.EnumContinue
		})
		if err != nil {
			slog.Warn("Failed to list directory:",
				"path", displayPath(path),
				"err", err,
			)

			return entriesMsg{path: path, failed: true}
		}

		for i := range entries {
			if info, err := fsOps.GetPathInfo(pathing.Child(path, entries[i].name)); err == nil {
				entries[i].info = info
			}
		}

		return entriesMsg{path: path, entries: entries}
	}
}

// runGlob produces a [tea.Cmd] that matches a glob pattern below the shown
// directory, reporting every match through the structured log.
func (m TeaModel) runGlob(pattern string) tea.Cmd {
	ctx := m.ctx
	fsOps := m.fsOps
	root := m.path

	return func() tea.Msg {
		matches, err := fsOps.Glob(ctx, root, pattern)
		if err != nil {
			slog.Warn("Glob failed:",
				"pattern", pattern,
				"path", displayPath(root),
				"err", err,
			)

			return nil
		}

		for _, match := range matches {
			slog.Info("Glob match:", "path", match)
		}

		slog.Info("Glob finished:",
			"pattern", pattern,
			"path", displayPath(root),
			"matches", len(matches),
		)

		return nil
	}
}

// runOperation produces a [tea.Cmd] that enqueues an operation and drains the
// queue through the executor, off the rendering loop.
func (m TeaModel) runOperation(op *queue.Operation) tea.Cmd {
	ctx := m.ctx
	runner := m.runner
	opQueue := m.opQueue

	return func() tea.Msg {
		opQueue.Enqueue(op)

		if err := runner.Drain(ctx, opQueue); err != nil {
			slog.Warn("Operation processing interrupted:", "err", err)
		}

		return operationDoneMsg{}
	}
}

// Update is the principal message handling method of the model.
// It sets the internal state of the model, for later rendering.
//
//nolint:mnd,funlen,ireturn,cyclop
func (m TeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			switch msg.String() {
			case "esc":
				m.closePrompt()
			case "enter":
				value := strings.TrimSpace(m.prompt.Value())
				submitCmd := m.submitPrompt(value)
				m.closePrompt()

				if value != "" {
					cmds = append(cmds, submitCmd)
				}
			default:
				m.prompt, cmd = m.prompt.Update(msg)
				cmds = append(cmds, cmd)
			}

			return m, tea.Batch(cmds...)
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancel()

			return m, tea.Quit

		case "q":
			return m, tea.Quit

		case "enter":
			if entry := m.selectedEntry(); entry != nil {
				if entry.info.IsDir() {
					cmds = append(cmds, m.loadEntries(pathing.Child(m.path, entry.name)))
				} else {
					logEntryDetail(pathing.Child(m.path, entry.name), entry.info)
				}
			}

		case "backspace":
			if m.path != "" {
				cmds = append(cmds, m.loadEntries(parentPath(m.path)))
			}

		case "s":
			if entry := m.selectedEntry(); entry != nil {
				logEntryDetail(pathing.Child(m.path, entry.name), entry.info)
			}

		case "g", "n", "r", "c", "d", "p":
			cmds = append(cmds, m.handleActionKey(msg.String()))

		case "up", "down", "j", "k", "home", "end":
			m.entryTable, cmd = m.entryTable.Update(msg)
			cmds = append(cmds, cmd)

		case "pgup", "pgdown":
			m.logsViewport, cmd = m.logsViewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.fullWidthWithBorders = m.width - 2
		m.sideWidthWithBorders = (m.width / 3) - 2
		m.tableWidthWithBorders = m.width - m.sideWidthWithBorders - 4

		// Progress bar should match the side panel content width.
		m.operationProgress.Width = m.sideWidthWithBorders

		// We want upper panels to take about 60% of the height.
		upperHeight := m.height * 3 / 5
		lowerHeight := m.height - upperHeight

		m.entryTable.SetWidth(m.tableWidthWithBorders)
		m.entryTable.SetHeight(max(3, upperHeight-3))
		m.entryTable.SetColumns(entryColumns(m.tableWidthWithBorders))

		// Viewport height: lower section minus borders, title and help.
		viewportHeight := lowerHeight - 4

		// Set viewport width to full width minus borders.
		m.logsViewport.Width = m.fullWidthWithBorders
		m.logsViewport.Height = viewportHeight

		// Update viewport content with current logs.
		if len(m.logs) > 0 {
			logs := lipgloss.NewStyle().
				Width(m.logsViewport.Width).
				Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

			m.logsViewport.SetContent(logs)
			m.logsViewport.GotoBottom()
		}

		if !m.ready {
			m.ready = true
		}

	case entriesMsg:
		if !msg.failed {
			sameDir := msg.path == m.path

			m.path = msg.path
			m.entries = msg.entries
			m.entryTable.SetRows(entryRows(msg.entries))

			if !sameDir {
				m.entryTable.GotoTop()
			} else if cursor := m.entryTable.Cursor(); cursor >= len(msg.entries) {
				m.entryTable.SetCursor(max(0, len(msg.entries)-1))
			}
		}

	case operationDoneMsg:
		cmds = append(cmds, m.loadEntries(m.path))

	case QueueProgressMsg:
		m.operationData = msg.operationData

		cmds = append(cmds,
			m.operationProgress.SetPercent(m.operationData.ProgressPct/100),
		)

		// Queue the next update.
		cmds = append(cmds, updateQueueProgress(m.opQueue))

	case LogMsg:
		logMsg := string(msg)

		if len(m.logs) >= 100 {
			m.logs = m.logs[1:]
		}

		m.logs = append(m.logs, logMsg)

		logs := lipgloss.NewStyle().
			Width(m.logsViewport.Width).
			Render(strings.TrimSuffix(strings.Join(m.logs, ""), "\n"))

		m.logsViewport.SetContent(logs)
		m.logsViewport.GotoBottom()

	case progress.FrameMsg:
		updatedProgress, cmd := m.operationProgress.Update(msg)
		if progressModel, ok := updatedProgress.(progress.Model); ok {
			m.operationProgress = progressModel
		}
		cmds = append(cmds, cmd)
	}

	// Handle viewport updates for non-key messages (e.g. mouse wheel).
	m.logsViewport, cmd = m.logsViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleActionKey dispatches the prompting and mutating actions bound to a
// key, returning the follow-up command if any. Mutating actions need a real
// directory to act on, not the virtual root.
func (m *TeaModel) handleActionKey(key string) tea.Cmd {
	if m.path == "" && key != "g" {
		slog.Warn("Descend into a filesystem root before running this action.", "key", key)

		return nil
	}

	switch key {
	case "g":
		return m.openPrompt(promptGlob, "")

	case "n":
		return m.openPrompt(promptMkdir, "")

	case "r":
		if entry := m.selectedEntry(); entry != nil {
			return m.openPrompt(promptRename, entry.name)
		}

	case "c":
		if entry := m.selectedEntry(); entry != nil {
			if entry.info.IsDir() {
				slog.Warn("Copying directories is not supported, copy single files instead.", "name", entry.name)

				return nil
			}

			return m.openPrompt(promptCopy, entry.name)
		}

	case "d":
		if entry := m.selectedEntry(); entry != nil {
			kind := queue.KindRemove
			if entry.info.IsDir() {
				kind = queue.KindRemoveTree
			}

			return m.runOperation(&queue.Operation{
				Kind:   kind,
				Source: pathing.Child(m.path, entry.name),
			})
		}

	case "p":
		return m.runOperation(&queue.Operation{
			Kind:   queue.KindPrune,
			Source: m.path,
		})
	}

	return nil
}

// openPrompt focuses the input prompt for the given collection kind, with arg
// carrying the name of the acted-on entry where the kind needs one.
func (m *TeaModel) openPrompt(kind promptKind, arg string) tea.Cmd {
	m.prompting = true
	m.promptFor = kind
	m.promptArg = arg
	m.prompt.SetValue("")
	m.prompt.Placeholder = promptPlaceholder(kind)

	return m.prompt.Focus()
}

// closePrompt blurs and resets the input prompt.
func (m *TeaModel) closePrompt() {
	m.prompting = false
	m.promptFor = promptNone
	m.promptArg = ""
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// submitPrompt maps a collected prompt value onto the matching follow-up
// command.
func (m TeaModel) submitPrompt(value string) tea.Cmd {
	switch m.promptFor {
	case promptGlob:
		return m.runGlob(value)

	case promptMkdir:
		return m.runOperation(&queue.Operation{
			Kind:   queue.KindMakeDirectoryTree,
			Source: resolveTarget(m.path, value),
		})

	case promptRename:
		return m.runOperation(&queue.Operation{
			Kind:   queue.KindRename,
			Source: pathing.Child(m.path, m.promptArg),
			Target: resolveTarget(m.path, value),
		})

	case promptCopy:
		return m.runOperation(&queue.Operation{
			Kind:   queue.KindCopy,
			Source: pathing.Child(m.path, m.promptArg),
			Target: resolveTarget(m.path, value),
		})

	case promptNone:
	}

	return nil
}

// selectedEntry returns the directory entry under the table cursor, or nil
// when the listing is empty.
func (m TeaModel) selectedEntry() *entryRow {
	cursor := m.entryTable.Cursor()
	if cursor < 0 || cursor >= len(m.entries) {
		return nil
	}

	return &m.entries[cursor]
}

// View is the principal rendering function of the model.
func (m TeaModel) View() string {
	if !m.ready {
		return "Loading the GUI..."
	}

	var s strings.Builder

	browserView := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.tableWidthWithBorders).Render("Browser: "+displayPath(m.path)),
		m.entryTable.View(),
	)

	operationsView := m.formatOperationsView(m.operationProgress.View(), m.operationData)

	upperSection := lipgloss.JoinHorizontal(
		lipgloss.Top,
		borderStyle.Width(m.tableWidthWithBorders).Render(browserView),
		borderStyle.Width(m.sideWidthWithBorders).Render(operationsView),
	)

	logsSection := borderStyle.
		Width(m.fullWidthWithBorders).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Left,
				titleStyle.Width(m.fullWidthWithBorders).Render("Log Information"),
				lipgloss.NewStyle().Width(m.fullWidthWithBorders).Render(m.logsViewport.View()),
			),
		)

	var bottomSection string
	if m.prompting {
		bottomSection = infoStyle.
			Width(m.fullWidthWithBorders).
			Render(m.prompt.View())
	} else {
		bottomSection = helpStyle.
			Width(m.fullWidthWithBorders).
			Render("enter: open • backspace: up • s: stat • g: glob • n: mkdir • " +
				"r: rename • c: copy • d: delete • p: prune • q: quit gui • ctrl+c: quit program")
	}

	s.WriteString(lipgloss.JoinVertical(
		lipgloss.Left,
		upperSection,
		logsSection,
		bottomSection,
	))

	return s.String()
}

// formatOperationsView is a helper function for rendering the operations
// panel.
func (m TeaModel) formatOperationsView(progressBar string, progress queue.Progress) string {
	var timeLeft time.Duration
	var timeLeftMin float64

	if !progress.ETA.IsZero() {
		timeLeft = time.Until(progress.ETA)
		timeLeftMin = float64(timeLeft.Minutes())
	}

	var transferSpeed string
	if progress.TransferSpeedUnit == "bytes/sec" {
		transferSpeed = humanize.Bytes(uint64(progress.TransferSpeed)) + "/s"
	} else {
		transferSpeed = fmt.Sprintf("%d %s", int(progress.TransferSpeed), progress.TransferSpeedUnit)
	}

	var details string
	if !progress.HasFinished {
		details = fmt.Sprintf(
			"Progress: %.2f%% (%d/%d)\n"+
				"Items: InProgress=%d, Success=%d, Skipped=%d\n"+
				"Time: Started=%v, ETA=%v (%.1f%s left)\n"+
				"Speed: %s\n",
			progress.ProgressPct,
			progress.ProcessedItems,
			progress.TotalItems,
			progress.InProgressItems,
			progress.SuccessItems,
			progress.SkippedItems,
			progress.StartTime.Format("15:04:05"),
			progress.ETA.Format("15:04:05"),
			timeLeftMin, "min",
			transferSpeed,
		)
	} else {
		details = fmt.Sprintf(
			"Progress: %.2f%% (%d/%d)\n"+
				"Items: InProgress=%d, Success=%d, Skipped=%d\n"+
				"Time: Started=%v, Finished=%v\n\n",
			progress.ProgressPct,
			progress.ProcessedItems,
			progress.TotalItems,
			progress.InProgressItems,
			progress.SuccessItems,
			progress.SkippedItems,
			progress.StartTime.Format("15:04:05"),
			progress.FinishTime.Format("15:04:05"),
		)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.sideWidthWithBorders).Render("Operations"),
		"", // Empty line for spacing.
		progressBar,
		"", // Empty line for spacing.
		infoStyle.Width(m.sideWidthWithBorders).Render(details),
	)

	return content
}

// entryRows converts listed entries into renderable table rows.
func entryRows(entries []entryRow) []table.Row {
	rows := make([]table.Row, 0, len(entries))

	for _, entry := range entries {
		rows = append(rows, table.Row{
			entry.name,
			entry.info.Type.String(),
			formatSize(entry.info),
			formatModified(entry.info.ModifyTime),
		})
	}

	return rows
}

func formatSize(info schema.PathInfo) string {
	if info.Type != schema.TypeFile {
		return "-"
	}

	return humanize.Bytes(info.Size)
}

func formatModified(timestamp int64) string {
	if timestamp == 0 {
		return "-"
	}

	return humanize.Time(time.Unix(timestamp, 0))
}

func formatTimestamp(timestamp int64) string {
	if timestamp == 0 {
		return "unrecorded"
	}

	return time.Unix(timestamp, 0).UTC().Format(time.RFC3339)
}

// logEntryDetail reports the portable metadata of a single element through
// the structured log.
func logEntryDetail(path string, info schema.PathInfo) {
	slog.Info("Path information:",
		"path", path,
		"type", info.Type.String(),
		"size", humanize.Bytes(info.Size),
		"modified", formatTimestamp(info.ModifyTime),
		"created", formatTimestamp(info.CreateTime),
		"accessed", formatTimestamp(info.AccessTime),
	)
}

// displayPath renders the virtual root recognizably.
func displayPath(path string) string {
	if path == "" {
		return "(roots)"
	}

	return path
}

// parentPath resolves the directory above a path, with filesystem roots
// leading up to the virtual root.
func parentPath(path string) string {
	if pathing.IsRoot(path) {
		return ""
	}

	return pathing.Parent(path)
}

// resolveTarget resolves a prompt value into a target path, keeping anchored
// input as given and placing bare names below the shown directory.
func resolveTarget(dir string, value string) string {
	if pathing.IsAbsolute(value) {
		return value
	}

	return pathing.Child(dir, value)
}
