package main

import (
	"context"
	"fmt"
	"os"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"battlepets/petlookup"
)

const (
	petButtonLabel     = "Get Pet By ID"
	counterButtonLabel = "Find Double Counters"
)

type App struct {
	app      *tview.Application
	ctrl     *petlookup.Controller
	ctx      context.Context
	endpoint string

	// coalesced redraw requests from the controller
	changes chan struct{}

	form      *tview.Form
	petButton *tview.Button
	ctrButton *tview.Button
	details   *tview.TextView
	errors    *tview.TextView
	status    *tview.TextView
}

func NewApp(ctx context.Context, ctrl *petlookup.Controller, endpoint string) *App {
	a := &App{
		app:      tview.NewApplication(),
		ctrl:     ctrl,
		ctx:      ctx,
		endpoint: endpoint,
		changes:  make(chan struct{}, 1),
	}

	a.buildUI()
	return a
}

func (a *App) buildUI() {
	a.status = tview.NewTextView().SetDynamicColors(true)

	state := a.ctrl.Snapshot()

	names := make([]string, 0, len(petlookup.PetTypes()))
	selected := 0
	for i, pt := range petlookup.PetTypes() {
		names = append(names, string(pt))
		if pt == state.PetTypeInput {
			selected = i
		}
	}

	a.form = tview.NewForm().
		AddInputField("Pet ID", state.PetIDInput, 14, acceptDigits, func(text string) {
			a.ctrl.SetPetIDInput(text)
		}).
		AddButton(petButtonLabel, a.submitPet).
		AddDropDown("Pet type", names, selected, func(option string, _ int) {
			if pt, err := petlookup.ParsePetType(option); err == nil {
				a.ctrl.SetPetTypeInput(pt)
			}
		}).
		AddButton(counterButtonLabel, a.submitCounters)
	a.form.SetBorder(true).
		SetTitle("Lookup").
		SetTitleAlign(tview.AlignLeft)
	a.petButton = a.form.GetButton(0)
	a.ctrButton = a.form.GetButton(1)

	a.details = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	a.details.SetBorder(true).
		SetTitle("Results").
		SetTitleAlign(tview.AlignLeft)

	a.errors = tview.NewTextView().SetDynamicColors(true)

	grid := tview.NewGrid().
		SetRows(1, 9, 0, 1, 1).
		SetColumns(0).
		AddItem(a.status, 0, 0, 1, 1, 0, 0, false).
		AddItem(a.form, 1, 0, 1, 1, 0, 0, true).
		AddItem(a.details, 2, 0, 1, 1, 0, 0, false).
		AddItem(a.errors, 3, 0, 1, 1, 0, 0, false).
		AddItem(a.makeHelpBar(), 4, 0, 1, 1, 0, 0, false)

	grid.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlR:
			// Swap focus between the form and the results panel
			if a.details.HasFocus() {
				a.app.SetFocus(a.form)
			} else {
				a.app.SetFocus(a.details)
			}
			return nil
		case tcell.KeyEscape:
			a.app.Stop()
			return nil
		}
		return event
	})

	a.render(state)
	a.app.SetRoot(grid, true).SetFocus(a.form)
}

func (a *App) makeHelpBar() *tview.TextView {
	return tview.NewTextView().
		SetDynamicColors(true).
		SetText("[gray]Tab:next field | Enter:press/select | Ctrl-R:results | j/k:scroll | Esc:quit[-]")
}

func acceptDigits(text string, last rune) bool {
	return unicode.IsDigit(last)
}

func (a *App) submitPet() {
	s := a.ctrl.Snapshot()
	if !s.CanFetchPet() {
		return
	}
	pending := a.ctrl.BeginPetLookup(s.PetIDInput)
	go pending(a.ctx)
}

func (a *App) submitCounters() {
	s := a.ctrl.Snapshot()
	if !s.CanFetchCounters() {
		return
	}
	pending := a.ctrl.BeginCounterLookup(s.PetTypeInput)
	go pending(a.ctx)
}

// render copies a snapshot into the widgets. Must run on the UI goroutine.
func (a *App) render(s petlookup.LookupState) {
	a.status.SetText(statusText(s, a.endpoint))
	a.details.SetText(detailsText(s))
	a.details.ScrollToBeginning()
	a.errors.SetText(errorText(s))

	a.petButton.SetLabel(buttonLabel(petButtonLabel, s.Loading))
	a.ctrButton.SetLabel(buttonLabel(counterButtonLabel, s.Loading))
}

// signal records that the state changed. It never blocks, so the
// controller is not held up by a busy UI.
func (a *App) signal(petlookup.LookupState) {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// redraw renders the latest snapshot once per signal until ctx ends
func (a *App) redraw(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.changes:
			a.app.QueueUpdateDraw(func() {
				a.render(a.ctrl.Snapshot())
			})
		}
	}
}

func (a *App) Run() error {
	unsubscribe := a.ctrl.Subscribe(a.signal)
	defer unsubscribe()

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()
	go a.redraw(ctx)

	return a.app.Run()
}

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: petform [CONFIG_FILE]")
		os.Exit(1)
	}

	var configPath string
	if len(os.Args) == 2 {
		configPath = os.Args[1]
	}

	session, err := petlookup.OpenSession(configPath, nil)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := NewApp(ctx, session.Controller, session.Config.Endpoint)
	if err := app.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
