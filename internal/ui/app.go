package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

const AppName = "Sketchpad"

// RunApp shows the sketchpad window and blocks until it is closed.
// shareLink, when set, is shown in the status bar.
func RunApp(board *BoardWidget, shareLink string) {
	myApp := app.New()
	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(720, 560))

	toolbar := NewToolbar(board, myWindow)
	if shareLink != "" {
		board.StatusBar().SetText("Mirror: " + shareLink)
	}

	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, container.NewCenter(board))
	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
