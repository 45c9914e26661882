package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kingpin/v2"

	lerrors "github.com/tradeops/leanctl/internal/errors"
	"github.com/tradeops/leanctl/internal/project"
	"github.com/tradeops/leanctl/internal/registry"
	"github.com/tradeops/leanctl/internal/runner"
	"github.com/tradeops/leanctl/internal/session"
	"github.com/tradeops/leanctl/internal/validate"
	"github.com/tradeops/leanctl/internal/wizard"
	"github.com/tradeops/leanctl/pkg/leanconfig"
)

// liveEnvironmentName is the environment the live command writes when the
// user does not target a hand-written environment with --environment.
const liveEnvironmentName = "lean-cli"

type liveCommand struct {
	cmd *kingpin.CmdClause

	project     *string
	environment *string
	brokerage   *string
	dataFeed    *string
	output      *string
	image       *string
	debugPort   *int
	update      *bool
	release     *bool
	detach      *bool

	// credentials maps a registry option flag name to its parsed value.
	credentials map[string]*string
}

func newLiveCommand(app *kingpin.Application) *liveCommand {
	cmd := app.Command("live", "Start live trading for a project locally using Docker.")
	c := &liveCommand{
		cmd:         cmd,
		project:     cmd.Arg("project", "Path to the project directory or algorithm file").Required().String(),
		environment: cmd.Flag("environment", "The environment to use, as declared in the configuration file").String(),
		brokerage:   cmd.Flag("brokerage", "The brokerage to use").String(),
		dataFeed:    cmd.Flag("data-feed", "The data feed to use").String(),
		output:      cmd.Flag("output", "Directory to store results in (defaults to PROJECT/live/TIMESTAMP)").String(),
		image:       cmd.Flag("image", "The engine image to run").String(),
		debugPort:   cmd.Flag("debug-port", "Publish a debugger port on localhost").Int(),
		update:      cmd.Flag("update", "Pull the latest engine image before running").Bool(),
		release:     cmd.Flag("release", "Compile C# projects in release configuration").Bool(),
		detach:      cmd.Flag("detach", "Leave the container running and return immediately").Short('d').Bool(),
		credentials: make(map[string]*string),
	}

	for _, opt := range credentialOptions() {
		if _, ok := c.credentials[opt.Flag]; ok {
			continue
		}
		c.credentials[opt.Flag] = cmd.Flag(opt.Flag, opt.Help).String()
	}
	return c
}

// credentialOptions lists every credential option of every brokerage and data
// queue handler, so the live command exposes one flag per configuration key.
func credentialOptions() []registry.Option {
	var options []registry.Option
	for _, b := range registry.Brokerages() {
		options = append(options, b.Options()...)
	}
	for _, d := range registry.DataQueueHandlers() {
		options = append(options, d.Options()...)
	}
	return options
}

func (c *liveCommand) run(ctx context.Context, sess *session.Session) error {
	store, err := sess.Config()
	if err != nil {
		return err
	}
	doc := store.Document()

	envName := *c.environment
	if envName != "" {
		if *c.brokerage != "" || *c.dataFeed != "" {
			return lerrors.New(lerrors.CategoryConfig, "live",
				"--environment cannot be combined with --brokerage or --data-feed")
		}
	} else {
		result, err := c.resolveHandlers(sess)
		if err != nil {
			return err
		}
		if err := c.resolveOrganizations(ctx, sess, &result); err != nil {
			return err
		}
		envName = liveEnvironmentName
		err = leanconfig.BuildEnvironment(doc, envName, leanconfig.LiveSkeleton(),
			result.BrokerageConfig, result.FeedConfig)
		if err != nil {
			return err
		}
	}

	if err := validate.Validate(doc, envName, store.Path()); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return err
	}

	algorithmFile, err := project.FindAlgorithmFile(*c.project)
	if err != nil {
		return err
	}
	outputDir := *c.output
	if outputDir == "" {
		outputDir = project.DefaultOutputDir(algorithmFile, time.Now())
	}

	if err := runner.StartIQConnectIfNeeded(doc, envName, sess.Log); err != nil {
		return lerrors.Wrap(err, lerrors.CategoryConfig, "live", "start IQConnect")
	}

	docker, err := runner.NewDockerManager()
	if err != nil {
		return err
	}
	defer docker.Close()

	return runner.New(docker, sess.Log).Run(ctx, runner.Options{
		Image:           *c.image,
		Config:          doc,
		EnvironmentName: envName,
		AlgorithmFile:   algorithmFile,
		OutputDir:       outputDir,
		DebuggingPort:   *c.debugPort,
		Release:         *c.release,
		Detach:          *c.detach,
		Update:          *c.update,
	})
}

// resolveHandlers determines the brokerage and data feed pair, either from
// the --brokerage/--data-feed flags or interactively.
func (c *liveCommand) resolveHandlers(sess *session.Session) (wizard.Result, error) {
	if *c.brokerage == "" && *c.dataFeed == "" {
		prompter := wizard.NewTerminalPrompter(os.Stdin, os.Stdout)
		return wizard.New(prompter, sess.DefaultValue).Run()
	}
	if *c.brokerage == "" || *c.dataFeed == "" {
		return wizard.Result{}, lerrors.New(lerrors.CategoryConfig, "live",
			"--brokerage and --data-feed must be given together")
	}

	b, ok := registry.BrokerageByName(*c.brokerage)
	if !ok {
		return wizard.Result{}, lerrors.New(lerrors.CategoryConfig, "live",
			fmt.Sprintf("unknown brokerage '%s'", *c.brokerage))
	}
	d, ok := registry.DataQueueHandlerByName(*c.dataFeed)
	if !ok {
		return wizard.Result{}, lerrors.New(lerrors.CategoryConfig, "live",
			fmt.Sprintf("unknown data feed '%s'", *c.dataFeed))
	}
	if feed, hasFeed := b.LiveFeed(); hasFeed && feed != d {
		return wizard.Result{}, lerrors.New(lerrors.CategoryConfig, "live",
			fmt.Sprintf("the %s brokerage only supports the %s data feed", b.DisplayName(), feed.DisplayName()))
	}

	result := wizard.Result{Brokerage: b, Feed: d}
	result.BrokerageConfig = leanconfig.HandlerConfig{
		ID:         b.ID(),
		Properties: c.collectEntries(sess, b.Options()),
	}
	feedOpts := d.Options()
	if counterpart, ok := d.Brokerage(); ok && counterpart != b {
		feedOpts = append(counterpart.Options(), feedOpts...)
	}
	result.FeedConfig = leanconfig.HandlerConfig{
		ID:         d.ID(),
		Properties: c.collectEntries(sess, feedOpts),
	}
	return result, nil
}

// collectEntries builds the properties for a handler from its credential
// flags, falling back to persisted configuration values. Keys the user gave
// no value for are omitted so existing values are not clobbered.
func (c *liveCommand) collectEntries(sess *session.Session, options []registry.Option) []leanconfig.Entry {
	var entries []leanconfig.Entry
	for _, opt := range options {
		value := ""
		if flag, ok := c.credentials[opt.Flag]; ok {
			value = *flag
		}
		if value == "" {
			value, _ = sess.DefaultValue(opt.Key)
		}
		if value == "" {
			continue
		}
		entries = append(entries, leanconfig.Entry{Key: opt.Key, Value: coerceScalar(value)})
	}
	return entries
}

// resolveOrganizations replaces organization names in handler properties with
// organization ids through the API.
func (c *liveCommand) resolveOrganizations(ctx context.Context, sess *session.Session, result *wizard.Result) error {
	for _, properties := range [][]leanconfig.Entry{
		result.BrokerageConfig.Properties,
		result.FeedConfig.Properties,
	} {
		for i, entry := range properties {
			if entry.Key != "job-organization-id" {
				continue
			}
			name, ok := entry.Value.(string)
			if !ok || name == "" {
				continue
			}
			id, err := sess.ResolveOrganization(ctx, name)
			if err != nil {
				return err
			}
			properties[i].Value = id
		}
	}
	return nil
}

// coerceScalar turns flag text into the document value it represents, so
// booleans and numbers are not stored as quoted strings.
func coerceScalar(s string) any {
	if s == "true" {
		return true
	}
	if s == "false" {
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}
