package main

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/rivo/tview"

	"battlepets/petlookup"
)

func statusText(s petlookup.LookupState, endpoint string) string {
	text := fmt.Sprintf("[yellow::b]Battle Pet Lookup[-:-:-] | [cyan]%s[-]", tview.Escape(endpoint))
	if s.Loading {
		text += " | [gray::i]Loading...[-:-:-]"
	}
	return text
}

func buttonLabel(label string, loading bool) string {
	if loading {
		return "Loading..."
	}
	return label
}

func errorText(s petlookup.LookupState) string {
	if s.Err == nil {
		return ""
	}
	return "[red::b]Error: " + tview.Escape(s.ErrorMessage()) + "[-:-:-]"
}

// detailsText renders the selected pet and the counter list
func detailsText(s petlookup.LookupState) string {
	var b strings.Builder

	if s.SelectedPet != nil {
		b.WriteString("[::bu]Pet Details[::-]\n")
		jsonparser.ObjectEach(s.SelectedPet.Raw, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
			fmt.Fprintf(&b, "  [yellow]%s[-]: %s\n", tview.Escape(string(key)), formatValue(value, dataType))
			return nil
		})
	}

	if len(s.CounterResults) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[::bu]Double Counter Pets[::-]\n")
		for _, pet := range s.CounterResults {
			fmt.Fprintf(&b, "  • [::b]%s[::-] (%s)  [blue::u]%s[-::-]\n",
				tview.Escape(pet.Name), pet.Type, petlookup.ReferenceURL(pet.ID))
		}
	}

	return b.String()
}

// formatValue renders a JSON value with color tags
func formatValue(value []byte, dataType jsonparser.ValueType) string {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			s = string(value)
		}
		return "[green]" + tview.Escape(fmt.Sprintf("%q", s)) + "[-]"
	case jsonparser.Number:
		return "[blue]" + string(value) + "[-]"
	case jsonparser.Boolean:
		if string(value) == "true" {
			return "[lime]true[-]"
		}
		return "[red]false[-]"
	case jsonparser.Null:
		return "[gray]null[-]"
	default:
		return tview.Escape(strings.Join(strings.Fields(petlookup.PrettyJSON(value)), " "))
	}
}
