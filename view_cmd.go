package main

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/postfmt/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var viewCmd = &cobra.Command{
	Use:     "view FILE",
	Short:   "Read a post in an interactive viewer",
	Long:    paragraph(fmt.Sprintf("\n%s a post in the terminal. Spoilers can be toggled with the number keys and the post is reloaded when the file changes.", keyword("Read"))),
	Example: paragraph("postfmt view 12345.txt\npostfmt view -b g --reveal thread/12345.html"),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		return runTUI(p)
	},
}

func runTUI(path string) error {
	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	cfg.Path = path
	cfg.Board = board
	cfg.Post = post
	cfg.RevealAll = reveal
	cfg.MaxWidth = width
	cfg.EnableMouse = mouse
	cfg.Style = style
	if filter := viper.GetStringSlice("filter"); len(filter) > 0 {
		cfg.Filter = filter
	}

	f, err := newFormatterFrom(cfg.Filter)
	if err != nil {
		return err
	}
	return ui.Run(cfg, f)
}
