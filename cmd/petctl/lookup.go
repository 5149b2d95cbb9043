package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"battlepets/petlookup"
)

var (
	colorKey  = color.New(color.FgYellow)
	colorName = color.New(color.Bold)
	colorType = color.New(color.FgCyan)
	colorLink = color.New(color.FgBlue, color.Underline)
)

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Look up a battle pet by ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := opts.session(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			session.Controller.FetchPetByID(cmd.Context(), args[0])
			st := session.Controller.Snapshot()
			if st.Err != nil {
				return st.Err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				fmt.Fprintln(out, petlookup.PrettyJSON(st.SelectedPet.Raw))
				return nil
			}
			printRecord(out, st.SelectedPet)
			return nil
		},
	}
}

func newCountersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "counters <type>",
		Short:     "List pets that deal double damage to a pet type.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: typeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			pt, err := petlookup.ParsePetType(args[0])
			if err != nil {
				return err
			}

			session, err := opts.session(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			session.Controller.FetchDoubleCounters(cmd.Context(), pt)
			st := session.Controller.Snapshot()
			if st.Err != nil {
				return st.Err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				raws := make([][]byte, len(st.CounterResults))
				for i, pet := range st.CounterResults {
					raws[i] = pet.Raw
				}
				list := append(append([]byte("["), bytes.Join(raws, []byte(","))...), ']')
				fmt.Fprintln(out, petlookup.PrettyJSON(list))
				return nil
			}
			for _, pet := range st.CounterResults {
				fmt.Fprintf(out, "%-8d %s (%s)  %s\n",
					pet.ID,
					colorName.Sprint(pet.Name),
					colorType.Sprint(pet.Type),
					colorLink.Sprint(petlookup.ReferenceURL(pet.ID)))
			}
			return nil
		},
	}
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List pet types with their strengths and weaknesses.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, pt := range petlookup.PetTypes() {
				fmt.Fprintf(out, "%-11s strong: %-11s weak: %-11s countered by: %s\n",
					colorType.Sprint(pt),
					joinTypes(petlookup.StrongAgainst(pt)),
					joinTypes(petlookup.WeakAgainst(pt)),
					joinTypes(petlookup.CounterTypes(pt)))
			}
		},
	}
}

func printRecord(out io.Writer, pet *petlookup.PetRecord) {
	fmt.Fprintf(out, "%s (%s)\n", colorName.Sprint(pet.Name), colorType.Sprint(pet.Type))
	jsonparser.ObjectEach(pet.Raw, func(key []byte, value []byte, dataType jsonparser.ValueType, offset int) error {
		v := string(value)
		switch dataType {
		case jsonparser.String:
			if s, err := jsonparser.ParseString(value); err == nil {
				v = s
			}
		case jsonparser.Object, jsonparser.Array:
			v = strings.Join(strings.Fields(petlookup.PrettyJSON(value)), " ")
		}
		fmt.Fprintf(out, "  %s: %s\n", colorKey.Sprint(string(key)), v)
		return nil
	})
	fmt.Fprintln(out, colorLink.Sprint(petlookup.ReferenceURL(pet.ID)))
}

func typeNames() []string {
	types := petlookup.PetTypes()
	names := make([]string, len(types))
	for i, pt := range types {
		names[i] = string(pt)
	}
	return names
}

func joinTypes(types []petlookup.PetType) string {
	if len(types) == 0 {
		return "-"
	}
	names := make([]string, len(types))
	for i, pt := range types {
		names[i] = string(pt)
	}
	return strings.Join(names, ", ")
}
