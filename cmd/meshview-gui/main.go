package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/meshio"
	"github.com/philipparndt/meshview/pkg/viewer"
	"github.com/philipparndt/meshview/pkg/watcher"
)

const loadTimeout = 30 * time.Second

type App struct {
	window    fyne.Window
	model     *mesh.Model
	options   viewer.Options
	image     *canvas.Image
	infoLabel *widget.Label
	files     []string
	reloader  *watcher.Reloader
	stopWatch context.CancelFunc
}

func main() {
	a := app.New()
	w := a.NewWindow("Mesh Viewer")

	appInstance := &App{
		window:  w,
		model:   mesh.NewModel(mesh.UnitCube()),
		options: viewer.DefaultOptions(),
	}
	appInstance.setupMainUI()

	if len(os.Args) > 1 {
		appInstance.loadFiles(os.Args[1:])
	}

	w.SetOnClosed(appInstance.stopWatching)
	w.Resize(fyne.NewSize(float32(appInstance.options.Width)+260, float32(appInstance.options.Height)+60))
	w.ShowAndRun()
}

func (a *App) setupMainUI() {
	a.image = canvas.NewImageFromImage(nil)
	a.image.FillMode = canvas.ImageFillContain
	a.image.SetMinSize(fyne.NewSize(float32(a.options.Width), float32(a.options.Height)))

	a.infoLabel = widget.NewLabel("")

	openButton := widget.NewButton("Open", a.showFileDialog)

	viewButton := func(label string, view viewer.View) *widget.Button {
		return widget.NewButton(label, func() {
			a.options.View = view
			a.render()
		})
	}

	modeSelect := widget.NewSelect(viewer.Modes, func(selected string) {
		mode, err := viewer.ParseMode(selected)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.options.Mode = mode
		a.render()
	})
	modeSelect.SetSelected(a.options.Mode.String())

	watchCheck := widget.NewCheck("Reload on change", func(checked bool) {
		if checked {
			a.startWatching()
		} else {
			a.stopWatching()
		}
	})

	toolbar := container.NewHBox(
		openButton,
		widget.NewSeparator(),
		viewButton("XY", viewer.ViewXY),
		viewButton("XZ", viewer.ViewXZ),
		viewButton("YZ", viewer.ViewYZ),
		viewButton("Reset", viewer.ViewReset),
		widget.NewSeparator(),
		modeSelect,
	)

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		a.infoLabel,
		widget.NewSeparator(),
		watchCheck,
	)
	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(240, 0))

	content := container.NewBorder(
		toolbar,
		nil,
		nil,
		infoScroll,
		a.image,
	)

	a.window.SetContent(content)
	a.render()
}

func (a *App) showFileDialog() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFiles([]string{reader.URI().Path()})
	}, a.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".stl", ".stla", ".obj"}))
	open.Show()
}

// loadFiles replaces the model's meshes. On failure the previous meshes stay.
func (a *App) loadFiles(files []string) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	if err := meshio.LoadInto(ctx, a.model, true, files...); err != nil {
		dialog.ShowError(fmt.Errorf("failed to load %s: %w", strings.Join(files, ", "), err), a.window)
		return
	}

	a.files = files
	if a.reloader != nil {
		a.stopWatching()
		a.startWatching()
	}
	a.render()
}

func (a *App) startWatching() {
	if a.reloader != nil || len(a.files) == 0 {
		return
	}

	reloader, err := watcher.New(a.model, 500*time.Millisecond, nil)
	if err == nil {
		err = reloader.Watch(a.files...)
	}
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	reloader.OnReload(func(err error) {
		fyne.Do(func() {
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.render()
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	a.reloader, a.stopWatch = reloader, cancel
	go reloader.Run(ctx)
}

func (a *App) stopWatching() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	a.reloader, a.stopWatch = nil, nil
}

func (a *App) render() {
	if a.image == nil {
		return
	}

	opts := a.options
	opts.Caption = a.caption()
	img, err := viewer.Render(context.Background(), a.model, opts)
	if err != nil {
		a.infoLabel.SetText(err.Error())
		return
	}
	a.image.Image = img
	a.image.Refresh()
	a.updateInfo()
}

func (a *App) caption() string {
	if len(a.files) == 0 {
		return fmt.Sprintf("unit cube [%s]", a.options.View)
	}
	names := make([]string, len(a.files))
	for i, file := range a.files {
		names[i] = filepath.Base(file)
	}
	return fmt.Sprintf("%s [%s]", strings.Join(names, ", "), a.options.View)
}

func (a *App) updateInfo() {
	result, err := analysis.AnalyzeModel(a.model)
	if err != nil {
		a.infoLabel.SetText(err.Error())
		return
	}

	eye := viewer.EyeOffset(a.options.View, result.BoundingBox)
	a.infoLabel.SetText(fmt.Sprintf(
		"Meshes: %d\nVertices: %d\nFaces: %d\nEdges: %d\nSurface Area: %.2f\n\nBounds:\n  X: %s\n  Y: %s\n  Z: %s\n\nView: %s\nEye offset:\n  %s",
		result.MeshCount,
		result.VertexCount,
		result.FaceCount,
		result.EdgeCount,
		result.SurfaceArea,
		analysis.FormatRange(result.BoundingBox.Min.X, result.BoundingBox.Max.X),
		analysis.FormatRange(result.BoundingBox.Min.Y, result.BoundingBox.Max.Y),
		analysis.FormatRange(result.BoundingBox.Min.Z, result.BoundingBox.Max.Z),
		a.options.View,
		analysis.FormatVector(eye),
	))
}
