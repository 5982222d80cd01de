package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
)

const usage = `usage: jobcatalog <command> [flags]

commands:
  serve     run the HTTP engine
  view      print the filtered, sorted view of a JSON file
  detail    print one job's detail block
  filters   print the distinct level/type/skill values
  export    write the view to xlsx, csv or sqlite
  password  store or delete the web password in the OS keychain
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cmds := map[string]func([]string) error{
		"serve":    runServe,
		"view":     runView,
		"detail":   runDetail,
		"filters":  runFilters,
		"export":   runExport,
		"password": runPassword,
	}
	run, ok := cmds[os.Args[1]]
	if !ok {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err := run(os.Args[2:]); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
