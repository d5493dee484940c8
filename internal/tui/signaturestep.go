package tui

import (
	"image"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inkform/internal/form"
	"inkform/internal/imaging"
	"inkform/internal/signature"
	"inkform/internal/ui"
	"inkform/internal/wizard"
)

// imageLoadedMsg completes the async decode of a picked signature image.
type imageLoadedMsg struct {
	img image.Image
	err error
}

type sigMode int

const (
	modeDraw sigMode = iota
	modePick
	modeCrop
)

// On-screen pad geometry. The interior origin must match the fixed view
// layout: panel border+padding (2 columns), then header, title, blank and
// status lines plus the pad's own border row.
const (
	padCols = 50
	padRows = 12

	padOriginX = 3
	padOriginY = 6

	previewMaxCols = 60
	previewMaxRows = 14
)

var padBorder = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("8"))

// sigModel is the signature step. Two producers feed one register: the
// freehand pad and the upload+crop path; the most recent emission wins.
type sigModel struct {
	wiz *wizard.Wizard
	reg signature.Register

	mode sigMode

	// Freehand
	pad  *signature.Pad
	grid [padRows][padCols]bool

	// Upload + crop
	picker  filepicker.Model
	cropper *imaging.Cropper
	loading bool // decode in flight; further picks ignored until settled

	notice string
	status string
}

func newSigModel(wiz *wizard.Wizard) sigModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".png", ".jpg", ".jpeg", ".gif"}
	fp.Height = 10

	sm := sigModel{wiz: wiz, pad: signature.NewPad(), picker: fp}
	sm.reg.Set(wiz.Document().Signature)
	return sm
}

func (sm sigModel) Focus() tea.Cmd {
	if sm.mode == modePick {
		return sm.picker.Init()
	}
	return nil
}

func (sm sigModel) Update(msg tea.Msg) (sigModel, tea.Cmd) {
	if m, ok := msg.(imageLoadedMsg); ok {
		sm.loading = false
		if m.err != nil {
			sm.notice = m.err.Error()
			return sm, nil
		}
		sm.cropper = imaging.NewCropper(m.img, fitPreview(m.img.Bounds().Size()))
		sm.mode = modeCrop
		return sm, nil
	}

	switch sm.mode {
	case modePick:
		return sm.updatePick(msg)
	case modeCrop:
		return sm.updateCrop(msg)
	default:
		return sm.updateDraw(msg)
	}
}

func (sm sigModel) updateDraw(msg tea.Msg) (sigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		sm.notice = ""
		switch msg.String() {
		case "c":
			sm.pad.Clear()
			sm.grid = [padRows][padCols]bool{}
			sm.status = "pad cleared"
			return sm, nil
		case "s":
			// Saving a blank pad still emits an empty canvas image.
			uri, err := sm.pad.Encode()
			if err != nil {
				sm.notice = err.Error()
				return sm, nil
			}
			sm.emit(uri)
			sm.status = "signature saved from pad"
			return sm, nil
		case "u":
			sm.mode = modePick
			sm.notice = ""
			return sm, sm.picker.Init()
		}

	case tea.MouseMsg:
		me := tea.MouseEvent(msg)
		cx, cy := me.X-padOriginX, me.Y-padOriginY
		inside := cx >= 0 && cx < padCols && cy >= 0 && cy < padRows
		switch {
		case me.Button == tea.MouseButtonLeft && me.Action == tea.MouseActionPress && inside:
			sm.pad.Begin(sm.ink(cx, cy))
		case me.Button == tea.MouseButtonLeft && me.Action == tea.MouseActionMotion && inside:
			sm.pad.Extend(sm.ink(cx, cy))
		case me.Action == tea.MouseActionRelease:
			sm.pad.End()
		}
		return sm, nil
	}
	return sm, nil
}

// ink marks the display cell and converts it to pad surface coordinates.
func (sm *sigModel) ink(cx, cy int) signature.Point {
	sm.grid[cy][cx] = true
	return signature.Point{
		X: cx * signature.SurfaceWidth / padCols,
		Y: cy * signature.SurfaceHeight / padRows,
	}
}

func (sm sigModel) updatePick(msg tea.Msg) (sigModel, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		sm.mode = modeDraw
		return sm, nil
	}

	var cmd tea.Cmd
	sm.picker, cmd = sm.picker.Update(msg)

	if ok, path := sm.picker.DidSelectFile(msg); ok {
		if sm.loading {
			return sm, cmd
		}
		sm.loading = true
		return sm, tea.Batch(cmd, func() tea.Msg {
			img, err := imaging.Load(path)
			return imageLoadedMsg{img: img, err: err}
		})
	}
	if ok, path := sm.picker.DidSelectDisabledFile(msg); ok {
		sm.notice = path + " is not an image file"
	}
	return sm, cmd
}

func (sm sigModel) updateCrop(msg tea.Msg) (sigModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return sm, nil
	}
	sm.notice = ""
	switch k.String() {
	case "esc":
		// Cancel; whatever signature existed before stays.
		sm.mode = modeDraw
		sm.cropper = nil
		return sm, nil
	case "left":
		sm.cropper.MoveBy(-2, 0)
	case "right":
		sm.cropper.MoveBy(2, 0)
	case "up":
		sm.cropper.MoveBy(0, -1)
	case "down":
		sm.cropper.MoveBy(0, 1)
	case "+", "=":
		sm.cropper.ResizeBy(2, 1)
	case "-":
		sm.cropper.ResizeBy(-2, -1)
	case "enter":
		uri, err := sm.cropper.Crop()
		if err != nil {
			sm.notice = err.Error()
			return sm, nil
		}
		sm.emit(uri)
		sm.status = "signature saved from cropped image"
		sm.mode = modeDraw
		sm.cropper = nil
	}
	return sm, nil
}

// emit writes through the last-writer-wins register into the document.
func (sm *sigModel) emit(uri string) {
	sm.reg.Set(uri)
	if err := sm.wiz.Mutate(func(d *form.Document) { d.Signature = sm.reg.Value() }); err != nil {
		log.Printf("persist: %v", err)
	}
}

func (sm sigModel) View() string {
	switch sm.mode {
	case modePick:
		status := "pick an image file (≤ 2 MiB, at least 500x250)"
		if sm.loading {
			status = "decoding image..."
		}
		return ui.Muted.Render(status) + "\n" + sm.picker.View() + "\n" +
			ui.Help.Render("enter select · esc back to pad")

	case modeCrop:
		return ui.Muted.Render("adjust the crop (16:9 to start, not enforced)") + "\n" +
			ui.ImageCells(sm.cropper.PreviewImage()) + "\n" +
			ui.Help.Render("arrows move · +/- resize · enter crop · esc cancel")

	default:
		return sm.statusLine() + "\n" + padBorder.Render(sm.gridView()) + "\n" +
			ui.Help.Render("draw with the mouse · s save · c clear · u upload image")
	}
}

func (sm sigModel) statusLine() string {
	if sm.status != "" {
		return ui.Success.Render("✔ " + sm.status)
	}
	if sm.reg.Present() {
		return ui.Success.Render("✔ signature on file")
	}
	return ui.Muted.Render("no signature yet")
}

func (sm sigModel) gridView() string {
	var b strings.Builder
	for y := 0; y < padRows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < padCols; x++ {
			if sm.grid[y][x] {
				b.WriteByte('#')
			} else {
				b.WriteByte(' ')
			}
		}
	}
	return b.String()
}

// fitPreview sizes the on-screen preview raster to the source aspect,
// capped at the preview box. Heights are doubled because each terminal row
// renders two image rows.
func fitPreview(src image.Point) image.Point {
	maxW, maxH := previewMaxCols, previewMaxRows*2
	w := maxW
	h := w * src.Y / src.X
	if h > maxH {
		h = maxH
		w = h * src.X / src.Y
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Pt(w, h)
}
