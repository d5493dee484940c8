package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inkform/internal/form"
	"inkform/internal/ui"
	"inkform/internal/wizard"
)

// fieldSpec binds one text input to one document field.
type fieldSpec struct {
	label       string
	placeholder string
	get         func(*form.Document) string
	set         func(*form.Document, string)
}

func identitySpecs() []fieldSpec {
	return []fieldSpec{
		{
			label: "Name", placeholder: "Ada Lovelace",
			get: func(d *form.Document) string { return d.Identity.Name },
			set: func(d *form.Document, v string) { d.Identity.Name = v },
		},
		{
			label: "Email", placeholder: "ada@example.com",
			get: func(d *form.Document) string { return d.Identity.Email },
			set: func(d *form.Document, v string) { d.Identity.Email = v },
		},
		{
			label: "Age", placeholder: "36",
			get: func(d *form.Document) string { return d.Identity.Age },
			set: func(d *form.Document, v string) { d.Identity.Age = v },
		},
	}
}

func demographicSpecs() []fieldSpec {
	return []fieldSpec{
		{
			label: "Country", placeholder: "United Kingdom",
			get: func(d *form.Document) string { return d.Demographics.Country },
			set: func(d *form.Document, v string) { d.Demographics.Country = v },
		},
		{
			label: "City", placeholder: "London",
			get: func(d *form.Document) string { return d.Demographics.City },
			set: func(d *form.Document, v string) { d.Demographics.City = v },
		},
		{
			label: "Occupation", placeholder: "Mathematician",
			get: func(d *form.Document) string { return d.Demographics.Occupation },
			set: func(d *form.Document, v string) { d.Demographics.Occupation = v },
		},
	}
}

// fieldsModel is a vertical run of text inputs. Every keystroke that
// changes a value is merged into the document and persisted right away.
type fieldsModel struct {
	wiz    *wizard.Wizard
	specs  []fieldSpec
	inputs []textinput.Model
	focus  int
}

func newFieldsModel(wiz *wizard.Wizard, specs []fieldSpec) fieldsModel {
	fm := fieldsModel{wiz: wiz, specs: specs}
	doc := wiz.Document()
	for i, sp := range specs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = sp.placeholder
		ti.CharLimit = 200
		ti.SetValue(sp.get(&doc))
		if i == 0 {
			ti.Focus()
		}
		fm.inputs = append(fm.inputs, ti)
	}
	return fm
}

func (fm fieldsModel) Focus() tea.Cmd { return textinput.Blink }

func (fm fieldsModel) Update(msg tea.Msg) (fieldsModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "enter", "down":
			fm.setFocus((fm.focus + 1) % len(fm.inputs))
			return fm, textinput.Blink
		case "shift+tab", "up":
			fm.setFocus((fm.focus - 1 + len(fm.inputs)) % len(fm.inputs))
			return fm, textinput.Blink
		}
	}

	var cmd tea.Cmd
	before := fm.inputs[fm.focus].Value()
	fm.inputs[fm.focus], cmd = fm.inputs[fm.focus].Update(msg)
	if after := fm.inputs[fm.focus].Value(); after != before {
		sp := fm.specs[fm.focus]
		if err := fm.wiz.Mutate(func(d *form.Document) { sp.set(d, after) }); err != nil {
			// Persisting must never interrupt typing.
			log.Printf("persist: %v", err)
		}
	}
	return fm, cmd
}

func (fm *fieldsModel) setFocus(i int) {
	fm.inputs[fm.focus].Blur()
	fm.focus = i
	fm.inputs[i].Focus()
}

func (fm fieldsModel) View() string {
	var b strings.Builder
	for i, sp := range fm.specs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(ui.Label.Render(sp.label))
		b.WriteByte('\n')
		b.WriteString(fm.inputs[i].View())
		b.WriteByte('\n')
	}
	return b.String()
}

// bioModel is the free-text step.
type bioModel struct {
	wiz *wizard.Wizard
	ta  textarea.Model
}

func newBioModel(wiz *wizard.Wizard) bioModel {
	ta := textarea.New()
	ta.Placeholder = "A few sentences about yourself..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(6)
	ta.SetValue(wiz.Document().Bio)
	// Focused from the start; hidden steps receive no messages anyway.
	ta.Focus()
	return bioModel{wiz: wiz, ta: ta}
}

func (bm bioModel) Focus() tea.Cmd { return textarea.Blink }

func (bm bioModel) Update(msg tea.Msg) (bioModel, tea.Cmd) {
	var cmd tea.Cmd
	before := bm.ta.Value()
	bm.ta, cmd = bm.ta.Update(msg)
	if after := bm.ta.Value(); after != before {
		if err := bm.wiz.Mutate(func(d *form.Document) { d.Bio = after }); err != nil {
			log.Printf("persist: %v", err)
		}
	}
	return bm, cmd
}

func (bm bioModel) View() string {
	return ui.Label.Render("Bio") + "\n" + bm.ta.View() + "\n"
}
