package main

import (
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"battlepets/petlookup"
)

// renderResults builds the scrollable results panel.
// cursor < 0 means the counter list is not focused.
func renderResults(s petlookup.LookupState, cursor int) string {
	var b strings.Builder

	if s.SelectedPet != nil {
		b.WriteString(sectionStyle.Render("Pet Details"))
		b.WriteString("\n")
		renderRecord(&b, s.SelectedPet.Raw)
	}

	// an empty successful lookup renders nothing, same as no lookup
	if len(s.CounterResults) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render("Double Counter Pets"))
		b.WriteString("\n")
		for i, pet := range s.CounterResults {
			b.WriteString(renderCounter(pet, i == cursor))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderCounter(pet petlookup.PetRecord, selected bool) string {
	label := fmt.Sprintf("%s (%s)", pet.Name, pet.Type)
	if selected {
		label = cursorStyle.Render(label)
	} else {
		label = nameStyle.Render(pet.Name) + " (" + renderType(pet.Type) + ")"
	}
	url := petlookup.ReferenceURL(pet.ID)
	return "  • " + label + "  " + hyperlink(url, urlStyle.Render(url))
}

// renderRecord prints every top-level field in document order
func renderRecord(b *strings.Builder, raw []byte) {
	err := jsonparser.ObjectEach(raw, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		b.WriteString("  ")
		b.WriteString(keyStyle.Render(string(key)))
		b.WriteString(": ")
		if string(key) == "type" && dataType == jsonparser.String {
			b.WriteString(renderType(petlookup.PetType(value)))
		} else {
			b.WriteString(formatValue(value, dataType))
		}
		b.WriteString("\n")
		return nil
	})
	if err != nil {
		// fall back to the raw text
		b.WriteString(petlookup.PrettyJSON(raw))
		b.WriteString("\n")
	}
}

// formatValue renders a JSON value with color coding
func formatValue(value []byte, dataType jsonparser.ValueType) string {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			s = string(value)
		}
		return stringStyle.Render(fmt.Sprintf("%q", s))
	case jsonparser.Number:
		return numberStyle.Render(string(value))
	case jsonparser.Boolean:
		if string(value) == "true" {
			return trueStyle.Render("true")
		}
		return falseStyle.Render("false")
	case jsonparser.Null:
		return nullStyle.Render("null")
	default:
		return compact(value)
	}
}

// compact collapses nested objects and arrays onto one line
func compact(value []byte) string {
	return strings.Join(strings.Fields(petlookup.PrettyJSON(value)), " ")
}

// hyperlink wraps text in an OSC 8 terminal hyperlink
func hyperlink(url, text string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
