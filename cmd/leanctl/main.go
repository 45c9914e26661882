package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/joho/godotenv"

	"github.com/tradeops/leanctl/internal/api"
	lerrors "github.com/tradeops/leanctl/internal/errors"
	"github.com/tradeops/leanctl/internal/logging"
	"github.com/tradeops/leanctl/internal/session"
)

const version = "0.1.0"

func main() {
	app := kingpin.New("leanctl", "Run trading algorithms in a local engine container.")
	app.Version(version)
	app.HelpFlag.Short('h')

	leanConfig := app.Flag("lean-config", "Path to the configuration file to use instead of searching parent directories").String()
	verbose := app.Flag("verbose", "Enable debug logging").Bool()
	envFile := app.Flag("env-file", "Path to a dotenv file with API credentials").String()

	live := newLiveCommand(app)
	config := newConfigCommand(app)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := loadEnvFile(*envFile); err != nil {
		renderError(err)
		os.Exit(1)
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := api.NewClient(os.Getenv("QC_USER_ID"), os.Getenv("QC_API_TOKEN"))
	sess := session.New(logger, *leanConfig, client)

	ctx := context.Background()
	switch command {
	case live.cmd.FullCommand():
		err = live.run(ctx, sess)
	case config.get.FullCommand():
		err = config.runGet(sess)
	case config.set.FullCommand():
		err = config.runSet(sess)
	case config.unset.FullCommand():
		err = config.runUnset(sess)
	case config.list.FullCommand():
		err = config.runList(sess)
	}

	if err != nil {
		renderError(err)
		os.Exit(1)
	}
}

// loadEnvFile loads dotenv variables. An explicit file must exist; the
// default .env is loaded only when present.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return lerrors.Wrap(err, lerrors.CategoryConfig, "env", fmt.Sprintf("load %s", path))
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

func renderError(err error) {
	fmt.Fprintln(os.Stderr, text.FgRed.Sprintf("Error: %v", err))
	var linked lerrors.DocsLinked
	if errors.As(err, &linked) && linked.Docs() != "" {
		fmt.Fprintln(os.Stderr, text.FgCyan.Sprintf("See %s", linked.Docs()))
	}
}
