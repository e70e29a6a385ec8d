package ui

import (
	"image/color"
	"math"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalSketchpad/internal/state"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Name     string
	Color    color.Color
	OnTapped func(name string)
}

func newColorSwatch(name string, tapped func(string)) *colorSwatch {
	c, err := state.ParseColor(name)
	if err != nil {
		c = color.Black
	}
	s := &colorSwatch{Name: name, Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

// toolGroup highlights the selected button among brushes and stickers.
type toolGroup struct {
	buttons []*widget.Button
}

func (g *toolGroup) add(b *widget.Button) *widget.Button {
	g.buttons = append(g.buttons, b)
	return b
}

func (g *toolGroup) selectButton(sel *widget.Button) {
	for _, b := range g.buttons {
		if b == sel {
			b.Importance = widget.HighImportance
		} else {
			b.Importance = widget.MediumImportance
		}
		b.Refresh()
	}
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	cfg := board.cfg
	group := &toolGroup{}

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), board.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), board.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { showExportDialog(board, win, cfg.Export.File, board.ExportPNG) }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { showExportDialog(board, win, "sketchpad.pdf", board.ExportPDF) }),
	)

	// --- Brushes ---
	var thin, thick, custom *widget.Button
	thin = group.add(widget.NewButton("Thin", func() {
		board.SetThickness(cfg.Tools.Thin)
		group.selectButton(thin)
	}))
	thick = group.add(widget.NewButton("Thick", func() {
		board.SetThickness(cfg.Tools.Thick)
		group.selectButton(thick)
	}))

	sizeLabel := widget.NewLabel("1")
	slider := widget.NewSlider(1, cfg.Tools.MaxBrush)
	slider.Step = 1
	custom = group.add(widget.NewButton("Custom Brush", func() {
		board.SetThickness(slider.Value)
		group.selectButton(custom)
	}))
	slider.OnChanged = func(v float64) {
		sizeLabel.SetText(strconv.Itoa(int(math.Round(v))))
		board.SetThickness(v)
		group.selectButton(custom)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), slider)
	group.selectButton(thin)

	// --- Color Palette ---
	colorBox := container.NewHBox()
	for _, name := range cfg.Tools.Colors {
		colorBox.Add(newColorSwatch(name, board.SetColor))
	}

	// --- Stickers ---
	stickerBox := container.NewHBox()
	addSticker := func(glyph string) {
		var b *widget.Button
		b = group.add(widget.NewButton(glyph, func() {
			board.SetSticker(glyph)
			group.selectButton(b)
		}))
		stickerBox.Add(b)
	}
	for _, glyph := range cfg.Tools.Stickers {
		addSticker(glyph)
	}
	customSticker := widget.NewButtonWithIcon("Add Custom Sticker", theme.ContentAddIcon(), func() {
		entry := widget.NewEntry()
		entry.SetText("🧽")
		dialog.ShowForm("Add custom sticker", "Add", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Sticker", entry)},
			func(ok bool) {
				if ok && entry.Text != "" {
					addSticker(entry.Text)
				}
			}, win)
	})

	// --- Assemble everything ---
	return container.NewVBox(
		container.NewHBox(actions, layout.NewSpacer()),
		container.NewHBox(widget.NewLabel("Brush:"), thin, thick, custom, sliderContainer, sizeLabel),
		container.NewHBox(widget.NewLabel("Color:"), colorBox),
		container.NewHBox(widget.NewLabel("Stickers:"), stickerBox, customSticker),
	)
}

func showExportDialog(board *BoardWidget, win fyne.Window, name string, write func(fyne.URIWriteCloser)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			board.SetStatus("Export failed: " + err.Error())
			return
		}
		if writer == nil {
			return
		}
		write(writer)
	}, win)
	d.SetFileName(name)
	d.Show()
}
