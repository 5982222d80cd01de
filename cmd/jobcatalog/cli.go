package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"jobcatalog-engine/internal/catalog"
	"jobcatalog-engine/internal/domain"
	"jobcatalog-engine/internal/export"
	"jobcatalog-engine/internal/render"
	"jobcatalog-engine/internal/store"
)

// viewFlags are the selectors shared by view, detail and export.
type viewFlags struct {
	file    string
	level   string
	typ     string
	skill   string
	sortKey string
	debug   bool
}

func (v *viewFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&v.file, "f", "", "JSON file of job postings (required)")
	fs.StringVar(&v.level, "level", "", "only jobs with this level")
	fs.StringVar(&v.typ, "type", "", "only jobs with this type")
	fs.StringVar(&v.skill, "skill", "", "only jobs with this skill")
	fs.StringVar(&v.sortKey, "sort", "time", "sort key: time|title|none")
	fs.BoolVar(&v.debug, "debug", false, "log engine events to stderr")
}

// controller loads the file and applies the selectors.
func (v *viewFlags) controller() (*catalog.Controller, error) {
	if v.file == "" {
		return nil, errors.New("-f is required")
	}
	level := slog.LevelError
	if v.debug {
		level = slog.LevelDebug
	}
	c := catalog.NewController(newLogger(os.Stderr, level))

	b, err := os.ReadFile(v.file)
	if err != nil {
		return nil, err
	}
	if err := c.Load(b); err != nil {
		return nil, fmt.Errorf("%s: %w", v.file, err)
	}
	if err := c.SetFilter(catalog.Criteria{
		domain.AttrLevel: v.level,
		domain.AttrType:  v.typ,
		domain.AttrSkill: v.skill,
	}); err != nil {
		return nil, err
	}
	key, err := catalog.ParseSortKey(v.sortKey)
	if err != nil {
		return nil, err
	}
	return c, c.SetSort(key)
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	var vf viewFlags
	vf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := vf.controller()
	if err != nil {
		return err
	}

	jobs := c.View()
	if len(jobs) == 0 {
		pterm.Info.Println("No jobs match the selected criteria.")
		return nil
	}

	data := pterm.TableData{{"#", "Title", "Posted", "Age", "Type", "Level", "Skill"}}
	for i, j := range jobs {
		data = append(data, []string{strconv.Itoa(i + 1), j.Title, j.Posted, render.Age(j), j.Type, j.Level, j.Skill})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	pterm.Printfln("%d of %d jobs", len(jobs), c.Len())
	return nil
}

func runDetail(args []string) error {
	fs := flag.NewFlagSet("detail", flag.ContinueOnError)
	var vf viewFlags
	vf.register(fs)
	n := fs.Int("n", 1, "1-based position in the view")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := vf.controller()
	if err != nil {
		return err
	}
	jobs := c.View()
	if *n < 1 || *n > len(jobs) {
		return fmt.Errorf("-n %d out of range (view has %d jobs)", *n, len(jobs))
	}
	fmt.Println(jobs[*n-1].DetailHTML())
	return nil
}

func runFilters(args []string) error {
	fs := flag.NewFlagSet("filters", flag.ContinueOnError)
	var vf viewFlags
	vf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := vf.controller()
	if err != nil {
		return err
	}

	data := pterm.TableData{{"Attribute", "Values"}}
	for _, attr := range catalog.Attributes {
		vals, err := c.DistinctValues(attr)
		if err != nil {
			return err
		}
		data = append(data, []string{attr, strings.Join(vals, ", ")})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var vf viewFlags
	vf.register(fs)
	format := fs.String("format", export.FormatXLSX, "xlsx|csv|sqlite")
	out := fs.String("o", "", "output path (default jobs.<format>)")
	sheet := fs.String("sheet", "Jobs", "xlsx sheet name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := vf.controller()
	if err != nil {
		return err
	}
	if *out == "" {
		*out = "jobs." + *format
	}
	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	snap := c.Snapshot()
	bar := pb.Full.Start(len(snap.View))
	svc := export.NewService(*sheet, nil, export.WithProgress(func() { bar.Increment() }))

	switch *format {
	case export.FormatXLSX:
		b, err := svc.XLSX(snap.View)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, b, 0o644); err != nil {
			return err
		}
	case export.FormatCSV:
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		if err := svc.CSV(f, snap.View); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case export.FormatSQLite:
		if _, err := store.ExportFile(context.Background(), *out, snap); err != nil {
			return err
		}
		bar.SetCurrent(int64(len(snap.View)))
	default:
		return fmt.Errorf("unknown format %q", *format)
	}

	bar.Finish()
	pterm.Success.Printfln("wrote %d jobs to %s", len(snap.View), *out)
	return nil
}
