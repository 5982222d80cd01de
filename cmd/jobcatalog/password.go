package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"jobcatalog-engine/internal/config"
	"jobcatalog-engine/internal/secrets"
)

// runPassword stores the basic-auth password for http.auth_user. The
// password is read from stdin so it stays out of shell history.
func runPassword(args []string) error {
	fs := flag.NewFlagSet("password", flag.ContinueOnError)
	del := fs.Bool("delete", false, "remove the stored password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dataDir := os.Getenv("JOBCATALOG_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	cfg, err := config.Load(filepath.Join(dataDir, "config.yml"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if cfg.HTTP.AuthUser == "" {
		return errors.New("http.auth_user is not set in config.yml")
	}
	account := secrets.WebKeyringAccount(cfg)

	if *del {
		if err := secrets.DeleteWebPassword(account); err != nil {
			return err
		}
		pterm.Success.Printfln("deleted password for %s", cfg.HTTP.AuthUser)
		return nil
	}

	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return err
	}
	if err := secrets.SetWebPassword(account, strings.TrimRight(line, "\r\n")); err != nil {
		return err
	}
	pterm.Success.Printfln("stored password for %s", cfg.HTTP.AuthUser)
	return nil
}
