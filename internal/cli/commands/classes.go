package commands

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zenpack-tools/zplc/internal/cli/ui"
	"github.com/zenpack-tools/zplc/internal/diagram"
	"github.com/zenpack-tools/zplc/internal/model"
)

// ErrClassNotFound is returned by the class command for unknown ids
var ErrClassNotFound = errors.New("class not found")

// NewClassesCommand creates the classes command
func NewClassesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List extracted classes",
		Long:  "List every extracted class with its labels and property and relationship counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runExtraction(cmd, opts)
			if err != nil {
				return err
			}

			relCount := relationCounts(res.model.Relations)

			table := ui.NewTable(cmd.OutOrStdout(),
				[]string{"Class", "Label", "Plural", "Properties", "Relations"}, opts.noColor)
			for _, class := range res.model.Classes {
				table.AddRow(class.ID, class.Label, class.PluralLabel,
					strconv.Itoa(len(class.Properties)), strconv.Itoa(relCount[class.ID]))
			}
			table.Render()
			return nil
		},
	}
}

// NewClassCommand creates the class command
func NewClassCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "class <id>",
		Short: "Show one extracted class",
		Long:  "Show the labels, properties and relationships extracted for one class",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runExtraction(cmd, opts)
			if err != nil {
				return err
			}

			class, ok := res.model.Class(args[0])
			if !ok {
				ids := make([]string, 0, len(res.model.Classes))
				for _, c := range res.model.Classes {
					ids = append(ids, c.ID)
				}
				fmt.Fprint(cmd.ErrOrStderr(), ui.ClassNotFoundError(args[0], ui.Suggest(args[0], ids), opts.noColor))
				return fmt.Errorf("%w: %s", ErrClassNotFound, args[0])
			}

			out := cmd.OutOrStdout()
			summary := ui.NewKeyValueTable(out, opts.noColor)
			summary.AddRow("Class", class.ID)
			if class.Label != "" {
				summary.AddRow("Label", class.Label)
			}
			if class.PluralLabel != "" {
				summary.AddRow("Plural", class.PluralLabel)
			}
			if class.MonitoringTemplate != "" {
				summary.AddRow("Template", class.MonitoringTemplate)
			}
			summary.Render()
			fmt.Fprintln(out)

			props := ui.NewTable(out, []string{"Property", "Attributes"}, opts.noColor)
			for _, id := range class.PropertyIDs() {
				props.AddRow(id, formatAttributes(class.Properties[id]))
			}
			props.Render()

			lines := make([]string, 0)
			for _, r := range res.model.Relations {
				if r.LeftClass == class.ID || r.RightClass == class.ID {
					lines = append(lines, diagram.Line(r))
				}
			}
			if len(lines) > 0 {
				sort.Strings(lines)
				fmt.Fprintln(out)
				for _, line := range lines {
					fmt.Fprintln(out, line)
				}
			}
			return nil
		},
	}
}

func relationCounts(rels []model.Relation) map[string]int {
	counts := make(map[string]int)
	for _, r := range rels {
		counts[r.LeftClass]++
		if r.RightClass != r.LeftClass {
			counts[r.RightClass]++
		}
	}
	return counts
}

// formatAttributes renders "k=v" pairs in key order
func formatAttributes(prop model.PropertyModel) string {
	parts := make([]string, 0, len(prop))
	for _, k := range prop.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, prop[k]))
	}
	return strings.Join(parts, " ")
}
