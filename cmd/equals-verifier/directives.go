package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"equals-verifier/internal/analyze"
	"equals-verifier/internal/common"
)

var (
	typeFmt  = color.New(color.FgCyan, color.Bold).SprintFunc()
	fieldFmt = color.New(color.FgCyan).SprintFunc()
	dirFmt   = color.New(color.FgYellow).SprintFunc()
)

func newDirectivesCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "directives <packages...>",
		Aliases: []string{"annotations"},
		Short:   "List the //verify: directives of Go packages",
		Example: `  equals-verifier directives ./store
  equals-verifier directives --dir ../shop ./...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := analyze.NewAnalyzer(dir).LoadPackages(args...)
			if err != nil {
				return err
			}

			return writeDirectives(cmd.OutOrStdout(), index)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to resolve package patterns from")
	return cmd
}

func writeDirectives(w io.Writer, index *analyze.DirectiveIndex) error {
	types, vars := index.SortedTypes(), index.SortedVars()
	if common.IsEmpty(types) && common.IsEmpty(vars) {
		_, err := fmt.Fprintln(w, "no directives found")
		return err
	}

	var sb strings.Builder
	for _, id := range types {
		info := index.GetType(id)
		fmt.Fprintf(&sb, "%s%s\n", typeFmt(id.String()), directiveList(info.Type))
		for _, name := range info.FieldNames() {
			fmt.Fprintf(&sb, "  %s%s\n", fieldFmt(name), directiveList(info.Fields[name]))
		}
	}

	for _, id := range vars {
		fmt.Fprintf(&sb, "var %s%s\n", typeFmt(id.String()), directiveList(index.Vars[id].Directives))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func directiveList(d analyze.Directives) string {
	if len(d) == 0 {
		return ""
	}

	return " " + dirFmt(strings.Join(d, ","))
}
