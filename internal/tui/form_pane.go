package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mortgagecenter/mortgage-client/internal/core/domain"
	"github.com/mortgagecenter/mortgage-client/internal/core/service"
)

// formPane renders and edits one FormController. Text inputs mirror the
// controller's display values; choice fields cycle through their options.
type formPane struct {
	inputs []textinput.Model // parallel to domain.Fields
	focus  int
}

func newFormPane() formPane {
	p := formPane{inputs: make([]textinput.Model, len(domain.Fields))}
	for i, f := range domain.Fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 24
		in.Width = 24
		switch {
		case f == domain.FieldCreditScore:
			in.Placeholder = "300-900"
		case f.IsCurrency():
			in.Placeholder = "0"
		}
		p.inputs[i] = in
	}
	p.inputs[0].Focus()
	return p
}

func (p *formPane) field() domain.Field {
	return domain.Fields[p.focus]
}

func (p *formPane) move(delta int) {
	p.inputs[p.focus].Blur()
	n := len(domain.Fields)
	p.focus = ((p.focus+delta)%n + n) % n
	p.inputs[p.focus].Focus()
}

// sync copies the controller's display values into the inputs.
func (p *formPane) sync(form *service.FormController) {
	for i, f := range domain.Fields {
		if f.IsChoice() {
			continue
		}
		if v := form.Display(f); p.inputs[i].Value() != v {
			p.inputs[i].SetValue(v)
		}
	}
}

// edit applies a key press to the focused field.
func (p *formPane) edit(form *service.FormController, msg tea.KeyMsg) (tea.Cmd, error) {
	f := p.field()
	if f.IsChoice() {
		delta := 0
		switch msg.String() {
		case "left", "h":
			delta = -1
		case "right", "l", " ":
			delta = 1
		}
		if delta == 0 {
			return nil, nil
		}
		return nil, form.SetField(string(f), cycle(choices(f), form.Draft().Get(f), delta))
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	err := form.SetField(string(f), p.inputs[p.focus].Value())
	p.sync(form)
	return cmd, err
}

func (p formPane) view(form *service.FormController, submitLabel string) string {
	var b strings.Builder
	draft := form.Draft()
	for i, f := range domain.Fields {
		label := labelStyle
		if i == p.focus {
			label = focusLabel
		}
		b.WriteString(label.Render(fieldLabel(f)))
		if f.IsChoice() {
			b.WriteString("< " + choiceLabel(f, draft.Get(f)) + " >")
		} else {
			b.WriteString(p.inputs[i].View())
		}
		b.WriteString("\n")
		if msg := form.Error(f); msg != "" {
			b.WriteString(labelStyle.Render("") + errorStyle.Render(msg) + "\n")
		}
	}
	b.WriteString("\n")

	switch form.State() {
	case service.FormSubmitting:
		b.WriteString(buttonStyle.Render("Submitting..."))
	case service.FormReady:
		b.WriteString(readyButton.Render(submitLabel))
	default:
		b.WriteString(buttonStyle.Render(submitLabel))
	}
	if err := form.LastError(); err != nil {
		b.WriteString("\n" + errorStyle.Render(err.Error()))
	}
	return b.String()
}
