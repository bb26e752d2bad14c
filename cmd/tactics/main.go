package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/lugo-striker/internal/bot"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tactics", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", "", "tactics file (yaml or json); empty renders the defaults")
	cols := fs.Int("cols", 10, "mapper columns")
	rows := fs.Int("rows", 6, "mapper rows")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"})

	tactics := bot.DefaultTactics()
	if *file != "" {
		t, err := bot.LoadTactics(*file)
		if err != nil {
			log.Error().Err(err).Msg("Failed to load tactics")
			return 1
		}
		tactics = t
	}

	if err := tactics.Validate(*cols, *rows); err != nil {
		log.Error().Err(err).Int("cols", *cols).Int("rows", *rows).Msg("Invalid tactics")
		return 1
	}

	tables := []struct {
		name string
		f    bot.Formation
	}{
		{"initial", tactics.Initial},
		{bot.Defensive.String(), tactics.Defensive},
		{bot.Normal.String(), tactics.Normal},
		{bot.Offensive.String(), tactics.Offensive},
	}
	for _, tb := range tables {
		fmt.Fprintf(stdout, "%s\n%s\n", tb.name, renderFormation(tb.f, *cols, *rows))
	}
	return 0
}

// renderFormation draws the grid with the highest row on top. Each cell lists
// its jerseys in ascending order joined by '+', or '.' when empty.
func renderFormation(f bot.Formation, cols, rows int) string {
	cells := make(map[bot.Cell][]int)
	for _, n := range f.Numbers() {
		c := f[n]
		cells[c] = append(cells[c], n)
	}

	const width = 6
	var b strings.Builder
	for row := rows - 1; row >= 0; row-- {
		fmt.Fprintf(&b, "%2d |", row)
		for col := range cols {
			label := "."
			if nums, ok := cells[bot.Cell{Col: col, Row: row}]; ok {
				parts := make([]string, len(nums))
				for i, n := range nums {
					parts[i] = strconv.Itoa(n)
				}
				label = strings.Join(parts, "+")
			}
			fmt.Fprintf(&b, "%*s", width, label)
		}
		b.WriteByte('\n')
	}
	b.WriteString("   +")
	b.WriteString(strings.Repeat("-", cols*width))
	b.WriteString("\n    ")
	for col := range cols {
		fmt.Fprintf(&b, "%*d", width, col)
	}
	b.WriteByte('\n')
	return b.String()
}
