package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// commands returns the command tree
func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "register",
			Usage:     "Create an account",
			ArgsUsage: "<username> [password]",
			Action:    registerAction,
		},
		{
			Name:      "login",
			Usage:     "Log in and store the session token",
			ArgsUsage: "<username> [password]",
			Action:    loginAction,
		},
		{
			Name:   "logout",
			Usage:  "End the session and remove the stored token",
			Action: logoutAction,
		},
		{
			Name:      "weather",
			Usage:     "Show current weather for a location",
			ArgsUsage: "<location>",
			Action:    weatherAction(false),
		},
		{
			Name:      "forecast",
			Usage:     "Show the 5-day forecast for a location",
			ArgsUsage: "<location>",
			Action:    weatherAction(true),
		},
		{
			Name:   "history",
			Usage:  "List your past searches",
			Action: historyAction,
		},
		{
			Name:      "delete-history",
			Usage:     "Delete one search history entry",
			ArgsUsage: "<search_id>",
			Action:    deleteHistoryAction,
		},
		{
			Name:      "update-profile",
			Usage:     "Change your username and/or password",
			ArgsUsage: "[new_username] [new_password]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Usage: "new username"},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "new password"},
			},
			Action: updateProfileAction,
		},
		{
			Name:   "status",
			Usage:  "Show the server and session state",
			Action: statusAction,
		},
		configCommand(),
		{
			Name:   "setup",
			Usage:  "Interactively choose and test the server",
			Action: setupAction,
		},
		{
			Name:  "version",
			Usage: "Show version information",
			Action: func(c *cli.Context) error {
				printVersion(c.App.Writer)
				return nil
			},
		},
	}
}

// credentials reads <username> [password], prompting for the password when
// it was not given
func credentials(c *cli.Context) (string, string, error) {
	if c.NArg() < 1 || c.NArg() > 2 {
		return "", "", NewUsageError(fmt.Sprintf("usage: weather-cli %s <username> [password]", c.Command.Name))
	}

	username := c.Args().Get(0)
	if c.NArg() == 2 {
		return username, c.Args().Get(1), nil
	}

	password, err := promptPassword(c.App.ErrWriter, "Password")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func registerAction(c *cli.Context) error {
	username, password, err := credentials(c)
	if err != nil {
		return err
	}
	return withEnv(c, func(env *cliEnv) error {
		return env.dispatcher.Register(c.Context, username, password)
	})
}

func loginAction(c *cli.Context) error {
	username, password, err := credentials(c)
	if err != nil {
		return err
	}
	return withEnv(c, func(env *cliEnv) error {
		return env.dispatcher.Login(c.Context, username, password)
	})
}

func logoutAction(c *cli.Context) error {
	return withEnv(c, func(env *cliEnv) error {
		return env.dispatcher.Logout(c.Context)
	})
}

// weatherAction joins all arguments so unquoted multi-word locations work
func weatherAction(forecast bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		location := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
		if location == "" {
			return NewUsageError(fmt.Sprintf("usage: weather-cli %s <location>", c.Command.Name))
		}
		return withEnv(c, func(env *cliEnv) error {
			return env.dispatcher.Weather(c.Context, location, forecast)
		})
	}
}

func historyAction(c *cli.Context) error {
	return withEnv(c, func(env *cliEnv) error {
		return env.dispatcher.History(c.Context)
	})
}

func deleteHistoryAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return NewUsageError("usage: weather-cli delete-history <search_id>")
	}
	return withEnv(c, func(env *cliEnv) error {
		return env.dispatcher.DeleteHistory(c.Context, c.Args().First())
	})
}

func updateProfileAction(c *cli.Context) error {
	if c.NArg() > 2 {
		return NewUsageError("usage: weather-cli update-profile [new_username] [new_password]")
	}

	newUsername := c.Args().Get(0)
	newPassword := c.Args().Get(1)
	if v := c.String("username"); v != "" {
		newUsername = v
	}
	if v := c.String("password"); v != "" {
		newPassword = v
	}

	return withEnv(c, func(env *cliEnv) error {
		return env.dispatcher.UpdateProfile(c.Context, newUsername, newPassword)
	})
}

func statusAction(c *cli.Context) error {
	return withEnv(c, func(env *cliEnv) error {
		fmt.Fprintf(c.App.Writer, "Server: %s\n", env.api.BaseURL())
		fmt.Fprintf(c.App.Writer, "Token file: %s\n", env.config.TokenFile())
		return env.dispatcher.Status(time.Now())
	})
}

// configCommand manages the config file
func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration (init, show, get, set)",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a default config file",
				Action: func(c *cli.Context) error {
					return InitConfig(ResolveConfigPath(c.String("config")), c.App.Writer)
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Action: func(c *cli.Context) error {
					config, path, err := loadConfig(c)
					if err != nil {
						return err
					}
					data, err := yamlv3.Marshal(config)
					if err != nil {
						return NewConfigError(fmt.Sprintf("failed to marshal config: %v", err))
					}
					fmt.Fprintf(c.App.Writer, "# %s\n%s", path, data)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "Print one configuration value",
				ArgsUsage: "<key>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return NewUsageError("config get requires a key")
					}
					config, _, err := loadConfig(c)
					if err != nil {
						return err
					}
					value, err := GetConfigValue(config, c.Args().First())
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, value)
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Set one configuration value in the config file",
				ArgsUsage: "<key> <value>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return NewUsageError("config set requires a key and value")
					}
					key := c.Args().First()
					value := strings.Join(c.Args().Tail(), " ")
					if err := SetConfigValue(ResolveConfigPath(c.String("config")), key, value); err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "Configuration updated: %s = %s\n", key, value)
					return nil
				},
			},
		},
	}
}
