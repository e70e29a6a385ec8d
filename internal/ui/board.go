package ui

import (
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalSketchpad/internal/config"
	"LocalSketchpad/internal/export"
	"LocalSketchpad/internal/raster"
	"LocalSketchpad/internal/state"
)

// BoardWidget shows the sketch and turns pointer events into session
// operations. Tool selection lives here and never enters the history.
type BoardWidget struct {
	widget.BaseWidget
	session   *state.Session
	image     *canvas.Image
	exporter  *export.Exporter
	cfg       config.Config
	tool      state.ToolState
	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(cfg config.Config, fonts *raster.Fonts) *BoardWidget {
	bg, err := state.ParseColor(cfg.Canvas.Background)
	if err != nil {
		bg = color.White
	}
	surface := raster.New(cfg.Canvas.Width, cfg.Canvas.Height,
		raster.WithBackground(bg),
		raster.WithFonts(fonts),
	)
	b := &BoardWidget{
		session: state.NewSession(surface),
		exporter: &export.Exporter{
			LogicalWidth:  float64(cfg.Canvas.Width),
			LogicalHeight: float64(cfg.Canvas.Height),
			Fonts:         fonts,
			Background:    bg,
		},
		cfg: cfg,
		tool: state.ToolState{
			Mode:        state.ModeStroke,
			Thickness:   cfg.Tools.Thin,
			Color:       cfg.Tools.Colors[0],
			StickerSize: cfg.Tools.StickerSize,
		},
		statusBar: widget.NewLabel("Ready"),
	}
	b.image = canvas.NewImageFromImage(surface.Image())
	b.image.FillMode = canvas.ImageFillStretch
	b.image.ScaleMode = canvas.ImageScalePixels
	b.image.SetMinSize(fyne.NewSize(float32(cfg.Canvas.Width), float32(cfg.Canvas.Height)))
	b.session.OnRedraw(b.image.Refresh)
	b.session.Subscribe(b.historyChanged)
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Session() *state.Session    { return b.session }
func (b *BoardWidget) Exporter() *export.Exporter { return b.exporter }
func (b *BoardWidget) Tool() state.ToolState      { return b.tool }
func (b *BoardWidget) StatusBar() *widget.Label   { return b.statusBar }

func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

func (b *BoardWidget) historyChanged(c state.Change) {
	if !c.Changed {
		return
	}
	l := b.session.Log()
	b.SetStatus(fmt.Sprintf("%s: %d drawn, %d redoable", c.Op, l.Len(), len(l.RedoCommands())))
}

// SetThickness selects the brush with the given width.
func (b *BoardWidget) SetThickness(t float64) {
	b.tool.Mode = state.ModeStroke
	b.tool.Thickness = t
	b.tool.Glyph = ""
}

// SetSticker selects the sticker tool with glyph.
func (b *BoardWidget) SetSticker(glyph string) {
	b.tool.Mode = state.ModeSticker
	b.tool.Glyph = glyph
}

func (b *BoardWidget) SetColor(name string) {
	b.tool.Color = name
}

func (b *BoardWidget) Undo()  { b.session.Undo() }
func (b *BoardWidget) Redo()  { b.session.Redo() }
func (b *BoardWidget) Clear() { b.session.Clear() }

// logical maps a widget position to canvas coordinates.
func (b *BoardWidget) logical(pos fyne.Position) (float64, float64) {
	size := b.Size()
	x, y := float64(pos.X), float64(pos.Y)
	if size.Width > 0 && size.Height > 0 {
		x *= float64(b.cfg.Canvas.Width) / float64(size.Width)
		y *= float64(b.cfg.Canvas.Height) / float64(size.Height)
	}
	return x, y
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	x, y := b.logical(e.Position)
	if err := b.session.PointerDown(x, y, b.tool); err != nil {
		b.SetStatus(fmt.Sprintf("Cannot draw: %v", err))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.session.PointerUp()
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	x, y := b.logical(e.Position)
	b.session.PointerMove(x, y, b.tool)
}

func (b *BoardWidget) MouseOut() {
	b.session.PointerLeave()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	x, y := b.logical(e.Position)
	b.session.PointerMove(x, y, b.tool)
}

func (b *BoardWidget) DragEnd() {
	b.session.PointerUp()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.image)
}

// ExportPNG writes committed history at the configured export size.
func (b *BoardWidget) ExportPNG(writer fyne.URIWriteCloser) {
	b.exportTo(writer, "PNG", func() error {
		return b.exporter.WritePNG(writer, b.session.Log(), b.cfg.Export.Width, b.cfg.Export.Height)
	})
}

func (b *BoardWidget) ExportPDF(writer fyne.URIWriteCloser) {
	b.exportTo(writer, "PDF", func() error {
		return b.exporter.WritePDF(writer, b.session.Log())
	})
}

func (b *BoardWidget) exportTo(writer fyne.URIWriteCloser, kind string, write func() error) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[EXPORT] error closing %s: %v", writer.URI(), err)
		}
	}()

	if err := write(); err != nil {
		log.Printf("[EXPORT] %s to %s failed: %v", kind, writer.URI(), err)
		b.SetStatus("Error exporting " + kind)
		return
	}
	b.SetStatus(fmt.Sprintf("Exported %d drawings to %s", b.session.Log().Len(), writer.URI().Name()))
}
