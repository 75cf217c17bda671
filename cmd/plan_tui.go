package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/relkit/relkit/pkg/changelog"
	"github.com/relkit/relkit/pkg/release"
)

func init() {
	rootCmd.AddCommand(newPlanCmd())
}

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Pick the next version interactively and release it",
		Long: `Opens an interactive picker showing the major, minor, and patch
candidates for the next version. Preview the changelog section that would
be written, then apply the release without leaving the picker.`,
		Args: cobra.NoArgs,
		RunE: runPlan,
	}
	cmd.Flags().BoolVar(&flagTag, "tag", false, "Create an annotated tag after committing")
	cmd.Flags().BoolVar(&flagPush, "push", false, "Push the branch (and tag) to origin")
	cmd.Flags().BoolVar(&flagFromCommits, "from-commits", false, "Generate the changelog body from conventional commits")
	return cmd
}

var (
	planHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#BD93F9")).
			MarginBottom(1)

	planSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#44475A")).
				Bold(true)

	planHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4")).
			MarginTop(1)

	planErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

type planKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Preview key.Binding
	Apply   key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var planKeys = planKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Preview: key.NewBinding(
		key.WithKeys("enter", "v"),
		key.WithHelp("enter", "preview changelog"),
	),
	Apply: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "apply release"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

const (
	planViewPick    = "pick"
	planViewPreview = "preview"
	planViewDone    = "done"
)

// planChoice is one bump candidate.
type planChoice struct {
	Bump release.Bump
	Next string
}

type planModel struct {
	rc       *releaseContext
	body     string
	choices  []planChoice
	selected int
	view     string
	viewport viewport.Model
	keys     planKeyMap
	applied  bool
	err      error
}

type planAppliedMsg struct{ err error }

func newPlanModel(rc *releaseContext, body string) (*planModel, error) {
	var choices []planChoice
	for _, bump := range []release.Bump{release.BumpMajor, release.BumpMinor, release.BumpPatch} {
		next, err := release.NextVersion(rc.Current, bump)
		if err != nil {
			return nil, err
		}
		choices = append(choices, planChoice{Bump: bump, Next: next})
	}

	return &planModel{
		rc:       rc,
		body:     body,
		choices:  choices,
		selected: 2, // patch is the usual release
		view:     planViewPick,
		viewport: viewport.New(80, 20),
		keys:     planKeys,
	}, nil
}

func (m *planModel) Init() tea.Cmd {
	return nil
}

func (m *planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case planViewPick:
			return m.updatePick(msg)
		case planViewPreview:
			return m.updatePreview(msg)
		case planViewDone:
			if key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Back) {
				return m, tea.Quit
			}
		}

	case planAppliedMsg:
		m.err = msg.err
		m.applied = msg.err == nil
		m.view = planViewDone
		return m, nil
	}

	return m, nil
}

func (m *planModel) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.choices)-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.Preview):
		choice := m.choices[m.selected]
		header := changelog.Header(changelog.StyleMarkdown, choice.Next, time.Now())
		preview := header + "\n\n" + m.body
		if m.body == "" {
			preview = header + "\n\n(no conventional commits since the last tag)"
		}
		m.viewport.SetContent(preview)
		m.view = planViewPreview

	case key.Matches(msg, m.keys.Apply):
		return m, m.apply()
	}
	return m, nil
}

func (m *planModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = planViewPick
		return m, nil
	case key.Matches(msg, m.keys.Apply):
		return m, m.apply()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *planModel) apply() tea.Cmd {
	choice := m.choices[m.selected]
	rc := m.rc
	body := m.body

	return func() tea.Msg {
		ctx := context.Background()

		plan := &release.Plan{
			Project:        rc.Info.Name,
			CurrentVersion: rc.Current,
			NextVersion:    choice.Next,
			Bump:           choice.Bump,
			VersionFile:    rc.Config.VersionFile,
			ChangelogFile:  rc.Config.Changelog,
			CommitMessage:  rc.Config.RenderCommitMessage(choice.Next),
			Push:           flagPush,
			CreatedAt:      time.Now(),
		}
		if flagTag {
			plan.Tag = rc.Config.RenderTag(choice.Next)
		}

		if err := release.Preflight(ctx, rc.Dir, plan, rc.Git, rc.Config.RequireClean); err != nil {
			return planAppliedMsg{err: err}
		}
		err := release.Run(ctx, rc.Dir, plan, rc.Git, rc.Log, release.Options{
			Body:  body,
			Style: changelog.Style(rc.Config.Style),
		})
		return planAppliedMsg{err: err}
	}
}

func (m *planModel) View() string {
	switch m.view {
	case planViewPreview:
		return planHeaderStyle.Render("Changelog preview") + "\n" +
			m.viewport.View() + "\n" +
			planHelpStyle.Render("a apply • esc back • q quit")
	case planViewDone:
		if m.err != nil {
			return planErrStyle.Render(fmt.Sprintf("Release failed: %v", m.err)) + "\n" +
				planHelpStyle.Render("q quit")
		}
		choice := m.choices[m.selected]
		return fmt.Sprintf("Released %s %s\n", m.rc.Info.Name, choice.Next) +
			planHelpStyle.Render("q quit")
	}

	header := planHeaderStyle.Render(fmt.Sprintf("Release %s (current %s)", m.rc.Info.Name, m.rc.Current))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("BUMP", "NEXT VERSION")
	for i, c := range m.choices {
		row := []string{string(c.Bump), c.Next}
		if i == m.selected {
			for j := range row {
				row[j] = planSelectedStyle.Render(row[j])
			}
		}
		t.Row(row...)
	}

	return header + "\n" + t.Render() + "\n" +
		planHelpStyle.Render("↑/↓ select • enter preview • a apply • q quit")
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	log := getLogger()

	rc, err := loadReleaseContext(log)
	if err != nil {
		return err
	}
	if rc.Current == "" {
		return fmt.Errorf("no current version found in %s; run relkit <version> for a first release", rc.Config.VersionFile)
	}

	body := rc.changelogBody(ctx)

	model, err := newPlanModel(rc, body)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running picker: %w", err)
	}
	if model.err != nil {
		return model.err
	}
	return nil
}
