package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/fatih/color"
	"golang.org/x/term"

	"battlepets/petlookup"
)

// Colors for output
var (
	colorCyan     = color.New(color.FgCyan)
	colorGreen    = color.New(color.FgGreen)
	colorBlue     = color.New(color.FgBlue)
	colorYellow   = color.New(color.FgYellow)
	colorRed      = color.New(color.FgRed, color.Bold)
	colorGray     = color.New(color.FgHiBlack)
	colorBold     = color.New(color.Bold)
	colorBoldBlue = color.New(color.FgBlue, color.Bold)
)

// Shell runs lookup commands against a controller and prints the results
type Shell struct {
	ctx  context.Context
	ctrl *petlookup.Controller
	out  io.Writer

	wasLoading  bool
	unsubscribe func()
}

// NewShell creates a shell writing to out
func NewShell(ctx context.Context, ctrl *petlookup.Controller, out io.Writer) *Shell {
	s := &Shell{ctx: ctx, ctrl: ctrl, out: out}
	s.unsubscribe = ctrl.Subscribe(s.onChange)
	return s
}

// Close detaches the shell from the controller
func (s *Shell) Close() {
	s.unsubscribe()
}

func (s *Shell) onChange(st petlookup.LookupState) {
	if st.Loading && !s.wasLoading {
		colorGray.Fprintln(s.out, "Loading...")
	}
	s.wasLoading = st.Loading
}

// Prompt shows the selected pet type
func (s *Shell) Prompt() string {
	st := s.ctrl.Snapshot()
	return fmt.Sprintf("%s> ", colorBoldBlue.Sprint(st.PetTypeInput))
}

// Execute runs one command
func (s *Shell) Execute(cmd string, args []string) error {
	switch cmd {
	case "get", "id":
		if len(args) != 1 {
			return fmt.Errorf("usage: get <id>")
		}
		s.ctrl.FetchPetByID(s.ctx, args[0])
		s.showPet()

	case "counters", "c":
		t := s.ctrl.Snapshot().PetTypeInput
		if len(args) > 0 {
			pt, err := petlookup.ParsePetType(args[0])
			if err != nil {
				return err
			}
			t = pt
		}
		s.ctrl.FetchDoubleCounters(s.ctx, t)
		s.showCounters()

	case "type":
		if len(args) == 0 {
			fmt.Fprintln(s.out, s.ctrl.Snapshot().PetTypeInput)
			return nil
		}
		pt, err := petlookup.ParsePetType(args[0])
		if err != nil {
			return err
		}
		return s.ctrl.SetPetTypeInput(pt)

	case "types":
		items := make([]string, 0, len(petlookup.PetTypes()))
		for _, pt := range petlookup.PetTypes() {
			items = append(items, colorCyan.Sprint(pt))
		}
		fmt.Fprintln(s.out, formatColumns(items))

	case "chart":
		t := s.ctrl.Snapshot().PetTypeInput
		if len(args) > 0 {
			pt, err := petlookup.ParsePetType(args[0])
			if err != nil {
				return err
			}
			t = pt
		}
		s.showChart(t)

	case "state":
		s.showState()

	case "clear":
		fmt.Fprint(s.out, "\033[H\033[2J")

	case "help", "?":
		printHelp(s.out)

	case "exit", "quit", "q":
		// Handled in main loop
		return nil

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for commands)", cmd)
	}

	return nil
}

func (s *Shell) showPet() {
	st := s.ctrl.Snapshot()
	if st.Err != nil {
		s.showError(st)
		return
	}
	if st.SelectedPet == nil {
		return
	}
	colorBold.Fprintln(s.out, "Pet Details")
	jsonparser.ObjectEach(st.SelectedPet.Raw, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		fmt.Fprintf(s.out, "  %s: %s\n", colorYellow.Sprint(string(key)), formatValue(value, dataType))
		return nil
	})
}

func (s *Shell) showCounters() {
	st := s.ctrl.Snapshot()
	if st.Err != nil {
		s.showError(st)
		return
	}
	// an empty result prints no list
	if len(st.CounterResults) == 0 {
		colorGray.Fprintf(s.out, "No double counters for %s\n", st.PetTypeInput)
		return
	}
	colorBold.Fprintf(s.out, "Double Counter Pets (%s)\n", st.PetTypeInput)
	for _, pet := range st.CounterResults {
		fmt.Fprintf(s.out, "  %s (%s)  %s\n",
			colorBold.Sprint(pet.Name),
			colorCyan.Sprint(pet.Type),
			colorBlue.Sprint(petlookup.ReferenceURL(pet.ID)))
	}
}

func (s *Shell) showError(st petlookup.LookupState) {
	colorRed.Fprintf(s.out, "Error: %s\n", st.ErrorMessage())
}

func (s *Shell) showChart(t petlookup.PetType) {
	fmt.Fprintf(s.out, "%s\n", colorBold.Sprint(t))
	fmt.Fprintf(s.out, "  strong against: %s\n", joinTypes(petlookup.StrongAgainst(t)))
	fmt.Fprintf(s.out, "  weak against:   %s\n", joinTypes(petlookup.WeakAgainst(t)))
	fmt.Fprintf(s.out, "  countered by:   %s\n", joinTypes(petlookup.CounterTypes(t)))
}

func (s *Shell) showState() {
	st := s.ctrl.Snapshot()
	fmt.Fprintf(s.out, "pet id input:   %q\n", st.PetIDInput)
	fmt.Fprintf(s.out, "pet type input: %s\n", st.PetTypeInput)
	fmt.Fprintf(s.out, "pet lookup:     %s\n", st.PetPhase)
	fmt.Fprintf(s.out, "counter lookup: %s\n", st.CounterPhase)
	if st.SelectedPet != nil {
		fmt.Fprintf(s.out, "selected pet:   %s\n", st.SelectedPet)
	}
	if st.CountersLoaded() {
		fmt.Fprintf(s.out, "counters:       %d\n", len(st.CounterResults))
	}
	if st.Err != nil {
		fmt.Fprintf(s.out, "error:          %s\n", st.ErrorMessage())
	}
}

func joinTypes(types []petlookup.PetType) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = colorCyan.Sprint(t)
	}
	return strings.Join(names, ", ")
}

// formatValue renders a JSON value with color coding
func formatValue(value []byte, dataType jsonparser.ValueType) string {
	switch dataType {
	case jsonparser.String:
		str, err := jsonparser.ParseString(value)
		if err != nil {
			str = string(value)
		}
		return colorGreen.Sprint(str)
	case jsonparser.Number:
		return colorBlue.Sprint(string(value))
	case jsonparser.Boolean, jsonparser.Null:
		return colorYellow.Sprint(string(value))
	default:
		return strings.Join(strings.Fields(petlookup.PrettyJSON(value)), " ")
	}
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `
petsh - Battle Pet Lookup Commands:

Lookup:
  get <id>          Look up a pet by numeric ID
  counters [type]   List pets that deal double damage to a type
                    (default: the selected type)

Pet types:
  type [name]       Show or select the pet type
  types             List all pet types
  chart [type]      Show strengths and weaknesses of a type

Session:
  state             Show lookup state
  clear             Clear screen
  help              Show help
  exit/quit         Exit shell

Examples:
  get 42            Show Mini Tyrael
  counters Dragonkin
  type beast        Select Beast, then 'counters'
`)
}

// formatColumns formats items in columns like ls
func formatColumns(items []string) string {
	if len(items) == 0 {
		return ""
	}

	// Get terminal width
	width := 100 // default
	if fd := int(os.Stdout.Fd()); term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	maxLen := 0
	for _, item := range items {
		if n := len(stripAnsi(item)); n > maxLen {
			maxLen = n
		}
	}

	colWidth := maxLen + 2
	numCols := width / colWidth
	if numCols < 1 {
		numCols = 1
	}

	var result strings.Builder
	for i, item := range items {
		result.WriteString(item)
		if (i+1)%numCols == 0 {
			if i < len(items)-1 {
				result.WriteString("\n")
			}
		} else if i < len(items)-1 {
			result.WriteString(strings.Repeat(" ", colWidth-len(stripAnsi(item))))
		}
	}

	return result.String()
}

// stripAnsi removes ANSI escape codes from text
func stripAnsi(text string) string {
	var result strings.Builder
	inCode := false
	for _, ch := range text {
		if ch == '\033' {
			inCode = true
		} else if inCode {
			if ch == 'm' {
				inCode = false
			}
		} else {
			result.WriteRune(ch)
		}
	}
	return result.String()
}
