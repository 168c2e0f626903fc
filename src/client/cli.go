// Package client wires the weather-cli command line: flags, configuration,
// logging and exit codes around the request dispatcher.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/apimgr/weather-cli/src/api"
	"github.com/apimgr/weather-cli/src/dispatcher"
	"github.com/apimgr/weather-cli/src/renderer"
	"github.com/apimgr/weather-cli/src/session"
)

// Execute runs the CLI for args (including the program name) and returns an
// *ExitError on failure
func Execute(ctx context.Context, args []string) error {
	return run(ctx, NewApp(os.Stdout, os.Stderr), args)
}

func run(ctx context.Context, app *cli.App, args []string) error {
	if err := app.RunContext(ctx, args); err != nil {
		return AsExitError(err)
	}
	return nil
}

// NewApp builds the command tree writing to stdout and stderr
func NewApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "weather-cli",
		Usage:     "Weather lookups and account management for the weather service",
		UsageText: "weather-cli [global options] <command> [arguments]",
		Version:   Version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags(),
		Commands:  commands(),
		Action: func(c *cli.Context) error {
			if c.Args().Present() {
				if err := cli.ShowAppHelp(c); err != nil {
					return err
				}
				return NewUsageError(fmt.Sprintf("unknown command: %s", c.Args().First()))
			}
			return cli.ShowAppHelp(c)
		},
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return NewUsageError(err.Error())
		},
		// Errors are turned into exit codes by the caller
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// globalFlags returns the flags available to every command
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "service base URL (overrides config)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "config file path or profile name in the config directory",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: plain, table, json, oneline (overrides config)",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable coloured output",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log requests and session events to stderr",
		},
		&cli.StringFlag{
			Name:  "token-file",
			Usage: "session token file (overrides config)",
		},
	}
}

// cliEnv is everything a command needs, built from flags and config
type cliEnv struct {
	config     *CLIConfig
	configPath string
	logger     *slog.Logger
	closer     io.Closer
	session    *session.Manager
	api        *api.Client
	dispatcher *dispatcher.Dispatcher
}

// loadConfig resolves the config file and applies flag overrides
func loadConfig(c *cli.Context) (*CLIConfig, string, error) {
	path := ResolveConfigPath(c.String("config"))

	config, err := LoadConfig(path)
	if err != nil {
		return nil, "", err
	}

	if v := c.String("server"); v != "" {
		config.Server.Primary = v
	}
	if v := c.String("output"); v != "" {
		if !renderer.ValidFormat(v) {
			return nil, "", NewUsageError(fmt.Sprintf("unknown output format: %s", v))
		}
		config.Output.Format = v
	}
	if v := c.String("token-file"); v != "" {
		config.Auth.TokenFile = v
	}
	if c.Bool("no-color") {
		config.Output.Color = "never"
	}
	if c.Bool("debug") {
		config.Debug = true
	}

	return config, path, nil
}

// newEnv builds the logger, session, transport and dispatcher
func newEnv(c *cli.Context) (*cliEnv, error) {
	config, path, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, closer, err := newLogger(config, c.App.ErrWriter)
	if err != nil {
		return nil, err
	}

	logger.Debug("configuration loaded", "path", path, "server", config.Server.Primary)

	sess := session.Open(session.NewFileStore(config.TokenFile()), logger.With("component", "session"))

	client := api.NewClient(config.Server.Primary,
		api.WithTimeout(config.Timeout()),
		api.WithUserAgent(UserAgent()),
		api.WithLogger(logger.With("component", "api")),
	)

	out, _ := c.App.Writer.(*os.File)
	noColor := !ColorEnabled(config.Output.Color, false, out)
	formatter := renderer.NewFormatter(config.Output.Format, noColor)

	return &cliEnv{
		config:     config,
		configPath: path,
		logger:     logger,
		closer:     closer,
		session:    sess,
		api:        client,
		dispatcher: dispatcher.New(client, sess, formatter, c.App.Writer, logger.With("component", "dispatcher")),
	}, nil
}

// withEnv runs fn with a fresh environment and releases it afterwards
func withEnv(c *cli.Context, fn func(env *cliEnv) error) error {
	env, err := newEnv(c)
	if err != nil {
		return err
	}
	defer env.closer.Close()

	return fn(env)
}
