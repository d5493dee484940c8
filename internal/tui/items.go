package tui

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"inkform/internal/form"
	"inkform/internal/ui"
	"inkform/internal/wizard"
)

// Edit bar field order.
const (
	editQty = iota
	editPrice
	editDesc
	editFieldCount
)

// itemsModel is the ledger step: a table of rows plus an inline edit bar
// with add/edit modes over shared text inputs.
type itemsModel struct {
	wiz *wizard.Wizard
	tbl table.Model

	editing bool
	editID  int
	inputs  [editFieldCount]textinput.Model
	focus   int

	notice string
}

func newItemsModel(wiz *wizard.Wizard) itemsModel {
	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Qty", Width: 5},
			{Title: "Unit price", Width: 12},
			{Title: "Description", Width: 26},
			{Title: "Line total", Width: 12},
		}),
		table.WithHeight(7),
		table.WithFocused(true),
	)

	im := itemsModel{wiz: wiz, tbl: tbl}
	placeholders := [editFieldCount]string{"quantity", "unit price (e.g. 1,000.50)", "description"}
	for i := range im.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 120
		ti.Placeholder = placeholders[i]
		im.inputs[i] = ti
	}
	im.refresh()
	return im
}

func (im *itemsModel) refresh() {
	items := im.wiz.Ledger().Items()
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row{
			strconv.Itoa(it.ID),
			strconv.Itoa(it.Quantity),
			it.UnitPrice,
			it.Description,
			fmt.Sprintf("%.2f", form.LineTotal(it)),
		})
	}
	im.tbl.SetRows(rows)
}

func (im itemsModel) selectedID() (int, bool) {
	row := im.tbl.SelectedRow()
	if row == nil {
		return 0, false
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return 0, false
	}
	return id, true
}

func (im itemsModel) Update(msg tea.Msg) (itemsModel, tea.Cmd) {
	im.notice = ""
	if im.editing {
		return im.updateEdit(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "a":
			im.wiz.Ledger().Add()
			im.persist()
			im.refresh()
			im.tbl.SetCursor(im.wiz.Ledger().Len() - 1)
			return im, nil
		case "d":
			id, ok := im.selectedID()
			if !ok {
				im.notice = "no item selected"
				return im, nil
			}
			im.wiz.Ledger().Remove(id)
			im.persist()
			im.refresh()
			return im, nil
		case "e", "enter":
			id, ok := im.selectedID()
			if !ok {
				im.notice = "no item selected"
				return im, nil
			}
			im.startEdit(id)
			return im, textinput.Blink
		}
	}

	var cmd tea.Cmd
	im.tbl, cmd = im.tbl.Update(msg)
	return im, cmd
}

func (im *itemsModel) startEdit(id int) {
	it, ok := im.wiz.Ledger().Get(id)
	if !ok {
		return
	}
	im.editing = true
	im.editID = id
	im.inputs[editQty].SetValue(strconv.Itoa(it.Quantity))
	im.inputs[editPrice].SetValue(it.UnitPrice)
	im.inputs[editDesc].SetValue(it.Description)
	im.focus = editQty
	for i := range im.inputs {
		im.inputs[i].Blur()
	}
	im.inputs[im.focus].Focus()
	im.inputs[im.focus].CursorEnd()
}

func (im itemsModel) updateEdit(msg tea.Msg) (itemsModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "enter":
			im.editing = false
			im.inputs[im.focus].Blur()
			return im, nil
		case "tab", "down":
			im.setEditFocus((im.focus + 1) % editFieldCount)
			return im, textinput.Blink
		case "shift+tab", "up":
			im.setEditFocus((im.focus - 1 + editFieldCount) % editFieldCount)
			return im, textinput.Blink
		}
	}

	var cmd tea.Cmd
	before := im.inputs[im.focus].Value()
	im.inputs[im.focus], cmd = im.inputs[im.focus].Update(msg)
	if after := im.inputs[im.focus].Value(); after != before {
		l := im.wiz.Ledger()
		switch im.focus {
		case editQty:
			l.SetQuantity(im.editID, after)
		case editPrice:
			l.SetUnitPrice(im.editID, after)
		case editDesc:
			l.SetDescription(im.editID, after)
		}
		im.persist()
		im.refresh()
	}
	return im, cmd
}

func (im *itemsModel) setEditFocus(i int) {
	im.inputs[im.focus].Blur()
	im.focus = i
	im.inputs[i].Focus()
	im.inputs[i].CursorEnd()
}

func (im *itemsModel) persist() {
	if err := im.wiz.Persist(); err != nil {
		log.Printf("persist: %v", err)
	}
}

func (im itemsModel) View() string {
	var b strings.Builder
	b.WriteString(im.tbl.View())
	b.WriteByte('\n')
	b.WriteString(ui.Accent.Render(fmt.Sprintf("Grand total: %.2f", im.wiz.Ledger().GrandTotal())))
	b.WriteByte('\n')

	if im.editing {
		bar := []string{ui.Title.Render(fmt.Sprintf("Edit item #%d", im.editID))}
		labels := [editFieldCount]string{"Qty", "Unit price", "Description"}
		for i := range im.inputs {
			bar = append(bar, ui.Label.Render(labels[i])+" "+im.inputs[i].View())
		}
		bar = append(bar, ui.Help.Render("tab next field · enter done · esc cancel"))
		b.WriteString(ui.Panel(strings.Join(bar, "\n")))
	} else {
		b.WriteString(ui.Help.Render("a add · e edit · d delete · ↑/↓ select"))
	}
	return b.String()
}
