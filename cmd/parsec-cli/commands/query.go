package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"parsecquery/lib/parsec"
	"parsecquery/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const previewRows = 25

var (
	queryAge     []float64
	queryLogAge  []float64
	queryZ       []float64
	queryMeH     []float64
	queryAv      float64
	querySet     []string
	queryNoTable bool
	queryOutput  string
)

func init() {
	queryCmd.Flags().Float64SliceVar(&queryAge, "age", nil, "linear age(s) in years, evenly spaced when multiple")
	queryCmd.Flags().Float64SliceVar(&queryLogAge, "log-age", nil, "log10 age(s), evenly spaced when multiple")
	queryCmd.Flags().Float64SliceVar(&queryZ, "z", nil, "metal abundance(s), evenly spaced when multiple")
	queryCmd.Flags().Float64SliceVar(&queryMeH, "meh", nil, "[M/H] value(s), evenly spaced when multiple")
	queryCmd.Flags().Float64Var(&queryAv, "av", 0, "total extinction in magnitudes")
	queryCmd.Flags().StringArrayVar(&querySet, "set", nil, "raw form field override, key=value, repeatable")
	queryCmd.Flags().BoolVar(&queryNoTable, "no-table", false, "print the raw artifact text instead of a table")
	queryCmd.Flags().StringVarP(&queryOutput, "output", "o", "", "write the raw artifact text to a file")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query --age 1e9 --z 0.0152",
	Short: "Queries isochrones and prints the result.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		client := createClient(ctx)

		extra := map[string]string{}
		for _, kv := range querySet {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				serviceutil.Fatal("invalid --set flag", fmt.Errorf("expected key=value, got %q", kv))
			}
			extra[key] = value
		}

		req := parsec.IsochroneRequest{
			Age:          queryAge,
			LogAge:       queryLogAge,
			Z:            queryZ,
			MeH:          queryMeH,
			ExtinctionAv: queryAv,
			Extra:        extra,
		}

		if queryNoTable || queryOutput != "" {
			out, err := client.QueryIsochronesRaw(ctx, req)
			if err != nil {
				serviceutil.Fatal("query failed", err)
			}
			if queryOutput != "" {
				err = os.WriteFile(queryOutput, []byte(out), 0644)
				if err != nil {
					serviceutil.Fatal("failed to write output file", err)
				}
				slog.Info("wrote output artifact", "path", queryOutput)
				return
			}
			fmt.Print(out)
			return
		}

		tab, err := client.QueryIsochrones(ctx, req)
		if err != nil {
			serviceutil.Fatal("query failed", err)
		}
		renderTable(tab)
	},
}

func renderTable(tab *parsec.Table) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)

	header := table.Row{}
	for _, name := range tab.Names {
		header = append(header, name)
	}
	w.AppendHeader(header)

	rows := tab.Len()
	shown := rows
	if shown > previewRows {
		shown = previewRows
	}
	for i := 0; i < shown; i++ {
		row := table.Row{}
		for _, col := range tab.Columns {
			row = append(row, col.Strings[i])
		}
		w.AppendRow(row)
	}
	w.Render()

	if rows > shown {
		fmt.Printf("... %d of %d rows shown, use --output to save the full table\n", shown, rows)
	}
	if len(tab.Comments) > 0 {
		slog.Debug("artifact comments", "last", tab.Comments[len(tab.Comments)-1])
	}
}
