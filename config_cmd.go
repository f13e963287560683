package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/postfmt/ansi"
	"github.com/charmbracelet/postfmt/format"
	"github.com/charmbracelet/x/editor"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# style name or JSON path (default "auto")
style: "auto"
# default board for posts
board: ""
# mouse support (view only)
mouse: false
# word-wrap at width
width: 80
# hide posts containing any of these; /expr/ entries are regular expressions
filter: []
# HTTP service (postfmt serve)
server:
  addr: ":8080"
  read_timeout: 10s
  write_timeout: 30s
  idle_timeout: 60s
  max_body_bytes: 1048576
  style: "dark"
  width: 80
`

func defaultConfigFile() string {
	scope := gap.NewScope(gap.User, "postfmt")
	path, _ := scope.ConfigPath("postfmt.yml")
	return path
}

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the postfmt config file",
	Long:    paragraph(fmt.Sprintf("\n%s the postfmt config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("postfmt config\npostfmt config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("postfmt", configFile)
		if err != nil {
			return err
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return err
		}

		fmt.Println("Wrote config file to:", configFile)
		return checkConfigFile(configFile)
	},
}

// checkConfigFile reports settings in path that would fail at startup.
func checkConfigFile(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not parse config file: %w", err)
	}
	if _, err := format.NewKeywordFilter(v.GetStringSlice("filter")); err != nil {
		return fmt.Errorf("invalid filter in %s: %w", path, err)
	}
	for _, key := range []string{"style", "server.style"} {
		name := v.GetString(key)
		if name == "" || name == ansi.AutoStyle {
			continue
		}
		if _, err := ansi.StyleFor(name); err != nil {
			return fmt.Errorf("invalid %s in %s: %w", key, path, err)
		}
	}
	return nil
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = defaultConfigFile()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil {
			return fmt.Errorf("Could not write config file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported config type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return err
		}

		f, err := os.Create(configFile)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return err
		}
	} else if err != nil { // some other error occurred
		return err
	}
	return nil
}
