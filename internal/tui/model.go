// Package tui is the terminal front of the form wizard: one bubbletea
// model per step, composed by an outer model that owns navigation,
// submission and the transient notice line.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"inkform/internal/store"
	"inkform/internal/ui"
	"inkform/internal/wizard"
)

// submitResultMsg settles an in-flight submission.
type submitResultMsg struct{ err error }

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Next:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next")),
	Prev:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "previous")),
	Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Model is the wizard shell. Value semantics like every bubbletea model;
// the wizard itself is shared by pointer with the step editors.
type Model struct {
	wiz    *wizard.Wizard
	client wizard.Submitter

	identity fieldsModel
	demo     fieldsModel
	bio      bioModel
	items    itemsModel
	sig      sigModel

	spin   spinner.Model
	notice string
	done   bool

	width, height int
}

// New restores any saved progress and builds the step editors around it.
func New(st store.Store, client wizard.Submitter) Model {
	wiz := wizard.New(st, client)
	wiz.Restore()

	m := Model{wiz: wiz, client: client}
	m.identity = newFieldsModel(wiz, identitySpecs())
	m.demo = newFieldsModel(wiz, demographicSpecs())
	m.bio = newBioModel(wiz)
	m.items = newItemsModel(wiz)
	m.sig = newSigModel(wiz)
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))
	return m
}

func (m Model) Init() tea.Cmd { return m.identity.Focus() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case submitResultMsg:
		if err := m.wiz.FinishSubmit(msg.err); err != nil {
			m.notice = "submission failed: " + err.Error() + " — answers kept, retry with ctrl+s"
			return m, nil
		}
		m.done = true
		return m, tea.Quit

	case imageLoadedMsg:
		// Always routed to the signature editor, even if the user has
		// meanwhile moved to another step.
		var cmd tea.Cmd
		m.sig, cmd = m.sig.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.wiz.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if m.wiz.Step().HasNext() {
				m.wiz.Next()
				return m, m.enterStep()
			}
			return m, nil
		case key.Matches(msg, keys.Prev):
			if m.wiz.Step().HasPrev() {
				m.wiz.Prev()
				return m, m.enterStep()
			}
			return m, nil
		case key.Matches(msg, keys.Submit):
			if !m.wiz.Step().CanSubmit() {
				return m, nil
			}
			return m.startSubmit()
		}
	}
	return m.updateStep(msg)
}

// enterStep hands focus to the editor of the newly shown step.
func (m Model) enterStep() tea.Cmd {
	switch m.wiz.Step() {
	case wizard.StepIdentity:
		return m.identity.Focus()
	case wizard.StepDemographics:
		return m.demo.Focus()
	case wizard.StepBio:
		return m.bio.Focus()
	case wizard.StepSignature:
		return m.sig.Focus()
	}
	return nil
}

func (m Model) startSubmit() (tea.Model, tea.Cmd) {
	doc, err := m.wiz.BeginSubmit()
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	client := m.client
	post := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return submitResultMsg{err: client.Submit(ctx, doc)}
	}
	return m, tea.Batch(m.spin.Tick, post)
}

func (m Model) updateStep(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.wiz.Step() {
	case wizard.StepIdentity:
		m.identity, cmd = m.identity.Update(msg)
	case wizard.StepDemographics:
		m.demo, cmd = m.demo.Update(msg)
	case wizard.StepBio:
		m.bio, cmd = m.bio.Update(msg)
	case wizard.StepItems:
		m.items, cmd = m.items.Update(msg)
	case wizard.StepSignature:
		m.sig, cmd = m.sig.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.done {
		return ui.Success.Render("✔ form submitted") + "\n"
	}

	step := m.wiz.Step()
	header := fmt.Sprintf("%s  %s",
		ui.Title.Render("inkform"),
		ui.Muted.Render(ui.ProgressBar(int(step), wizard.StepCount, 20)),
	)
	title := ui.Accent.Render(fmt.Sprintf("Step %d/%d — %s", int(step), wizard.StepCount, step.Title()))

	lines := []string{header, title, "", m.stepView(), ""}
	if notice := m.currentNotice(); notice != "" {
		lines = append(lines, ui.Error.Render("✖ "+notice))
	}
	lines = append(lines, m.controlsLine())
	return ui.Panel(strings.Join(lines, "\n"))
}

func (m Model) stepView() string {
	switch m.wiz.Step() {
	case wizard.StepIdentity:
		return m.identity.View()
	case wizard.StepDemographics:
		return m.demo.View()
	case wizard.StepBio:
		return m.bio.View()
	case wizard.StepItems:
		return m.items.View()
	case wizard.StepSignature:
		return m.sig.View()
	}
	return ""
}

func (m Model) currentNotice() string {
	if m.notice != "" {
		return m.notice
	}
	switch m.wiz.Step() {
	case wizard.StepItems:
		return m.items.notice
	case wizard.StepSignature:
		return m.sig.notice
	}
	return ""
}

func (m Model) controlsLine() string {
	if m.wiz.Submitting() {
		return m.spin.View() + " submitting..."
	}
	step := m.wiz.Step()
	var parts []string
	if step.HasPrev() {
		parts = append(parts, helpFor(keys.Prev))
	}
	if step.HasNext() {
		parts = append(parts, helpFor(keys.Next))
	}
	if step.CanSubmit() {
		parts = append(parts, helpFor(keys.Submit))
	}
	parts = append(parts, helpFor(keys.Quit))
	return ui.Help.Render(strings.Join(parts, " · "))
}

func helpFor(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}
