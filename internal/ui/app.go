package ui

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"inspector/internal/config"
	"inspector/internal/logging"
	"inspector/internal/models"
	"inspector/internal/ui/cwidget"
	"inspector/processing/annotate"
	"inspector/processing/dataset"
	"inspector/processing/render"
)

type ViewerApp struct {
	fyneApp fyne.App
	mainWin fyne.Window

	config *config.Config

	imageView *cwidget.ImageView

	dataset *dataset.Dataset
	watcher *dataset.Watcher

	// Base image with annotation boxes burned in; exported together with
	// the strokes held by the image view.
	composed *image.RGBA

	imageEntry   *widget.Entry
	labelEntry   *widget.Entry
	classesEntry *widget.Entry
	folderEntry  *widget.Entry

	prevButton   *widget.Button
	nextButton   *widget.Button
	goButton     *widget.Button
	navEntry     *widget.Entry
	counterLabel *widget.Label

	statusLabel *widget.Label
	zoomLabel   *widget.Label

	isFullscreen bool
}

func CreateApp(cfg *config.Config) *ViewerApp {
	a := app.New()
	w := a.NewWindow("Annotation Inspector")

	w.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	return &ViewerApp{
		fyneApp: a,
		mainWin: w,
		config:  cfg,
	}
}

func (a *ViewerApp) Run() {
	a.imageView = cwidget.NewImageView(cwidget.ViewOptions{
		MinZoom:        a.config.MinZoom,
		MaxZoom:        a.config.MaxZoom,
		ZoomStep:       a.config.GetZoomStep(),
		StrokeColor:    render.ColorByName(a.config.StrokeColor),
		StrokeWidth:    a.config.GetStrokeWidth(),
		EraseTolerance: a.config.GetEraseTolerance(),
	})

	a.statusLabel = widget.NewLabel("Ready")
	a.zoomLabel = widget.NewLabel("Zoom: -")
	a.imageView.OnViewChanged = func(zoom float64) {
		a.zoomLabel.SetText(fmt.Sprintf("Zoom: %.2fx", zoom))
	}

	sidebar := container.NewVBox(
		widget.NewLabelWithStyle("Manual File Selection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.buildManualSection(),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Folder Processing", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.buildFolderSection(),
		widget.NewSeparator(),
		a.buildNavigationSection(),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Tools", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.buildToolsSection(),
	)

	viewContainer := container.NewBorder(
		container.NewHBox(a.zoomLabel),
		nil, nil, nil,
		a.imageView,
	)

	split := container.NewHSplit(
		container.NewVScroll(container.NewPadded(sidebar)),
		container.NewPadded(viewContainer),
	)
	split.SetOffset(0.3)

	a.mainWin.SetContent(container.NewBorder(nil, a.statusLabel, nil, nil, split))

	a.mainWin.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		switch e.Name {
		case fyne.KeyF11:
			a.toggleFullscreen()
		case fyne.KeyEscape:
			if a.isFullscreen {
				a.toggleFullscreen()
			}
		case fyne.KeyLeft:
			a.showPrev()
		case fyne.KeyRight:
			a.showNext()
		}
	})

	a.mainWin.SetCloseIntercept(func() {
		size := a.mainWin.Canvas().Size()
		a.config.WindowWidth = int(size.Width)
		a.config.WindowHeight = int(size.Height)
		a.config.SaveByDefault()
		a.stopWatcher()
		a.mainWin.Close()
	})

	a.mainWin.CenterOnScreen()
	a.mainWin.ShowAndRun()
}

func (a *ViewerApp) buildManualSection() fyne.CanvasObject {
	a.imageEntry = widget.NewEntry()
	a.imageEntry.SetPlaceHolder("/path/to/image.jpg")
	a.labelEntry = widget.NewEntry()
	a.labelEntry.SetPlaceHolder("/path/to/labels.txt")
	a.classesEntry = widget.NewEntry()
	a.classesEntry.SetPlaceHolder("optional classes.txt for YOLO")

	imageBrowse := a.browseButton(a.imageEntry, []string{".jpg", ".jpeg", ".png"})
	labelBrowse := a.browseButton(a.labelEntry, []string{".xml", ".json", ".txt"})
	classesBrowse := a.browseButton(a.classesEntry, []string{".txt", ".names"})

	loadBtn := widget.NewButtonWithIcon("Load Image", theme.MediaPlayIcon(), a.loadManual)

	return container.NewVBox(
		widget.NewLabel("Image File:"),
		container.NewBorder(nil, nil, nil, imageBrowse, a.imageEntry),
		widget.NewLabel("Label File:"),
		container.NewBorder(nil, nil, nil, labelBrowse, a.labelEntry),
		widget.NewLabel("Classes File:"),
		container.NewBorder(nil, nil, nil, classesBrowse, a.classesEntry),
		loadBtn,
	)
}

func (a *ViewerApp) buildFolderSection() fyne.CanvasObject {
	a.folderEntry = widget.NewEntry()
	a.folderEntry.SetPlaceHolder("/path/to/dataset")
	a.folderEntry.SetText(a.config.GetLastFolder())

	folderBtn := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
			if err == nil && list != nil {
				a.folderEntry.SetText(list.Path())
			}
		}, a.mainWin)
	})

	scanBtn := widget.NewButtonWithIcon("Scan Folder", theme.SearchIcon(), func() {
		a.scanFolder(a.folderEntry.Text)
	})

	return container.NewVBox(
		widget.NewLabel("Dataset Folder:"),
		container.NewBorder(nil, nil, nil, folderBtn, a.folderEntry),
		scanBtn,
	)
}

func (a *ViewerApp) buildNavigationSection() fyne.CanvasObject {
	a.prevButton = widget.NewButtonWithIcon("Previous", theme.NavigateBackIcon(), a.showPrev)
	a.nextButton = widget.NewButtonWithIcon("Next", theme.NavigateNextIcon(), a.showNext)
	a.counterLabel = widget.NewLabel("0/0")
	a.counterLabel.Alignment = fyne.TextAlignCenter

	a.navEntry = widget.NewEntry()
	a.navEntry.OnSubmitted = func(string) { a.goToIndex() }
	a.goButton = widget.NewButton("Go", a.goToIndex)

	a.setNavigationEnabled(false)

	return container.NewVBox(
		container.NewGridWithColumns(3, a.prevButton, a.counterLabel, a.nextButton),
		container.NewBorder(nil, nil, widget.NewLabel("Go to:"), a.goButton, a.navEntry),
	)
}

func (a *ViewerApp) buildToolsSection() fyne.CanvasObject {
	modeSelect := widget.NewRadioGroup([]string{"Pan", "Draw", "Erase"}, func(s string) {
		switch s {
		case "Draw":
			a.imageView.SetMode(cwidget.ModeDraw)
		case "Erase":
			a.imageView.SetMode(cwidget.ModeErase)
		default:
			a.imageView.SetMode(cwidget.ModePan)
		}
		a.setStatus(fmt.Sprintf("Mode: %s (scroll to zoom)", a.imageView.Mode()))
	})
	modeSelect.Horizontal = true
	modeSelect.SetSelected("Pan")

	strokeWidthInput := cwidget.NewIntInput(
		"Stroke Width",
		"Enter integer",
		a.config.GetStrokeWidth(),
		func(i int) {
			a.config.SetStrokeWidth(i)
			a.imageView.SetStrokeWidth(i)
		},
	)

	eraseTolInput := cwidget.NewIntInput(
		"Erase Tolerance",
		"Enter pixels",
		int(a.config.GetEraseTolerance()),
		func(i int) {
			a.config.SetEraseTolerance(float64(i))
			a.imageView.SetEraseTolerance(float64(i))
		},
	)

	clearBtn := widget.NewButtonWithIcon("Clear Markup", theme.ContentClearIcon(), func() {
		a.imageView.ClearStrokes()
	})

	fitBtn := widget.NewButtonWithIcon("Fit to Window", theme.ZoomFitIcon(), func() {
		a.imageView.FitToView()
	})

	fullscreenBtn := widget.NewButtonWithIcon("Fullscreen (F11)", theme.ViewFullScreenIcon(), a.toggleFullscreen)

	exportBtn := widget.NewButtonWithIcon("Export Annotated Image", theme.DocumentSaveIcon(), a.exportImage)

	return container.NewVBox(
		modeSelect,
		strokeWidthInput,
		eraseTolInput,
		clearBtn,
		fitBtn,
		fullscreenBtn,
		exportBtn,
	)
}

func (a *ViewerApp) browseButton(target *widget.Entry, exts []string) *widget.Button {
	return widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err == nil && reader != nil {
				target.SetText(reader.URI().Path())
				_ = reader.Close()
			}
		}, a.mainWin)
		fileDialog.SetFilter(storage.NewExtensionFileFilter(exts))
		fileDialog.Show()
	})
}

func (a *ViewerApp) setNavigationEnabled(enabled bool) {
	widgets := []fyne.Disableable{a.prevButton, a.nextButton, a.goButton, a.navEntry}
	for _, w := range widgets {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

func (a *ViewerApp) setStatus(text string) {
	a.statusLabel.SetText(text)
}

// loadManual displays the manually selected image/label/classes triple.
func (a *ViewerApp) loadManual() {
	if a.imageEntry.Text == "" {
		dialog.ShowInformation("Missing Input", "Please select an image file.", a.mainWin)
		return
	}

	classes := annotate.LoadClasses(a.classesEntry.Text)
	a.loadEntry(a.imageEntry.Text, a.labelEntry.Text, classes)
}

// loadEntry loads an image, parses its annotation file and displays the
// composed result. Annotation problems degrade to a warning; a missing
// image is an error dialog.
func (a *ViewerApp) loadEntry(imagePath, labelPath string, classes []string) {
	img, err := render.LoadImage(imagePath)
	if err != nil {
		logging.Logger.Error("failed to load image", zap.String("image", imagePath), zap.Error(err))
		dialog.ShowError(err, a.mainWin)
		a.setStatus(fmt.Sprintf("Could not load %s", filepath.Base(imagePath)))
		return
	}

	bounds := img.Bounds()
	var annotations []models.Annotation
	switch {
	case labelPath == "":
		a.setStatus(fmt.Sprintf("%s: no annotation file", filepath.Base(imagePath)))
	default:
		annotations, err = annotate.ParseFile(labelPath, bounds.Dx(), bounds.Dy(), classes)
		if err != nil {
			logging.Logger.Warn("failed to parse annotations",
				zap.String("label", labelPath), zap.Error(err))
			a.setStatus(fmt.Sprintf("Warning: could not parse %s: %v", filepath.Base(labelPath), err))
		} else {
			a.setStatus(fmt.Sprintf("Viewing %s (%d boxes)", filepath.Base(imagePath), len(annotations)))
		}
	}

	a.composed = render.Compose(img, annotations, render.Options{
		Thickness:   a.config.BoxThickness,
		LabelColors: a.config.LabelColors,
	})
	a.imageView.SetImage(a.composed)
}

// scanFolder builds the dataset from root and starts watching it.
func (a *ViewerApp) scanFolder(root string) {
	if root == "" {
		dialog.ShowInformation("Missing Input", "Please select a dataset folder.", a.mainWin)
		return
	}

	ds, err := dataset.Scan(root)
	if err != nil {
		dialog.ShowError(err, a.mainWin)
		return
	}
	if ds.Len() == 0 {
		dialog.ShowInformation("Empty Folder", "No images found in the selected folder.", a.mainWin)
		return
	}

	a.stopWatcher()
	a.dataset = ds
	a.config.SetLastFolder(root)
	a.setNavigationEnabled(true)

	dirs := []string{ds.ImagesDir}
	if ds.LabelsDir != ds.ImagesDir {
		dirs = append(dirs, ds.LabelsDir)
	}
	watcher, err := dataset.Watch(dirs, func() {
		fyne.Do(a.rescan)
	})
	if err != nil {
		logging.Logger.Warn("folder watching unavailable", zap.Error(err))
	} else {
		a.watcher = watcher
	}

	a.showCurrent()
}

// rescan rebuilds the dataset after the watcher reported changes, keeping
// the cursor position when possible.
func (a *ViewerApp) rescan() {
	if a.dataset == nil {
		return
	}

	oldIndex := a.dataset.Index()
	ds, err := dataset.Scan(a.dataset.Root)
	if err != nil {
		logging.Logger.Warn("rescan failed", zap.String("root", a.dataset.Root), zap.Error(err))
		return
	}

	a.dataset = ds
	if ds.Len() == 0 {
		a.setNavigationEnabled(false)
		a.counterLabel.SetText("0/0")
		a.setStatus("Dataset folder is now empty")
		return
	}

	if oldIndex >= ds.Len() {
		oldIndex = ds.Len() - 1
	}
	_ = ds.Goto(oldIndex)
	a.showCurrent()
}

func (a *ViewerApp) stopWatcher() {
	if a.watcher != nil {
		_ = a.watcher.Close()
		a.watcher = nil
	}
}

func (a *ViewerApp) showCurrent() {
	entry, err := a.dataset.Current()
	if err != nil {
		return
	}

	a.counterLabel.SetText(fmt.Sprintf("%d/%d", a.dataset.Index()+1, a.dataset.Len()))
	a.navEntry.SetText(strconv.Itoa(a.dataset.Index() + 1))
	a.loadEntry(entry.ImagePath, entry.LabelPath, a.dataset.Classes)
}

func (a *ViewerApp) showNext() {
	if a.dataset == nil {
		return
	}
	a.dataset.Next()
	a.showCurrent()
}

func (a *ViewerApp) showPrev() {
	if a.dataset == nil {
		return
	}
	a.dataset.Prev()
	a.showCurrent()
}

func (a *ViewerApp) goToIndex() {
	if a.dataset == nil {
		return
	}

	target, err := strconv.Atoi(a.navEntry.Text)
	if err != nil {
		dialog.ShowInformation("Invalid Input", "Please enter a valid number.", a.mainWin)
		return
	}
	if err := a.dataset.Goto(target - 1); err != nil {
		dialog.ShowError(err, a.mainWin)
		a.navEntry.SetText(strconv.Itoa(a.dataset.Index() + 1))
		return
	}

	a.showCurrent()
}

func (a *ViewerApp) toggleFullscreen() {
	a.isFullscreen = !a.isFullscreen
	a.mainWin.SetFullScreen(a.isFullscreen)
}

// exportImage saves a copy of the displayed image, boxes and strokes burned
// in. The annotation source files are never written.
func (a *ViewerApp) exportImage() {
	if a.composed == nil {
		dialog.ShowInformation("Nothing Loaded", "No image loaded to export.", a.mainWin)
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()

		err = render.Export(path, a.composed, a.imageView.Strokes(),
			a.config.GetStrokeWidth(), render.ColorByName(a.config.StrokeColor))
		if err != nil {
			dialog.ShowError(err, a.mainWin)
			return
		}

		logging.Logger.Info("exported annotated image", zap.String("path", path))
		a.setStatus(fmt.Sprintf("Saved %s", filepath.Base(path)))
	}, a.mainWin)
	saveDialog.SetFileName("annotated.png")
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	saveDialog.Show()
}
