package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/postfmt/ansi"
	"github.com/charmbracelet/postfmt/format"
	"github.com/charmbracelet/postfmt/links"
	"github.com/charmbracelet/postfmt/utils"
	gap "github.com/muesli/go-app-paths"
	"github.com/muesli/termenv"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

const maxWidth = 120

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	board      string
	post       string
	reveal     bool
	style      string
	width      uint
	asJSON     bool
	showLinks  bool
	mouse      bool

	rootCmd = &cobra.Command{
		Use:   "postfmt [SOURCE]",
		Short: "Render imageboard posts on the CLI",
		Long: paragraph(
			fmt.Sprintf("\nRender imageboard posts on the CLI, %s.", keyword("spoilers and all")),
		),
		Example:          paragraph("postfmt 12345.txt\npostfmt -b g -p 12345 post.html\ncurl -s ... | postfmt -b sci --json -"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

// source is a readable post body.
type source struct {
	reader io.ReadCloser
	path   string
}

// sourceFromArg opens the post named by arg. "-" reads from stdin.
func sourceFromArg(arg string) (*source, error) {
	if arg == "-" {
		return &source{reader: os.Stdin}, nil
	}

	st, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", arg)
	}
	r, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	return &source{r, arg}, nil
}

func validateOptions(cmd *cobra.Command) error {
	// grab config values from Viper
	width = viper.GetUint("width")
	mouse = viper.GetBool("mouse")
	board = viper.GetString("board")

	// validate the style
	style = viper.GetString("style")
	if style != ansi.AutoStyle && ansi.DefaultStyles[style] == nil {
		style = utils.ExpandPath(style)
		if _, err := os.Stat(style); errors.Is(err, fs.ErrNotExist) {
			if s := suggestStyle(style); s != "" {
				return fmt.Errorf("Specified style does not exist: %s (did you mean %q?)", style, s)
			}
			return fmt.Errorf("Specified style does not exist: %s", style)
		} else if err != nil {
			return err
		}
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	// We want to use a special no-TTY style, when stdout is not a terminal
	// and there was no specific style passed by arg
	if !isTerminal && !cmd.Flags().Changed("style") {
		style = ansi.NoTTYStyle
	}

	// Detect terminal width
	if isTerminal && width == 0 && !cmd.Flags().Changed("width") {
		w, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err == nil {
			width = uint(w)
		}

		if width > maxWidth {
			width = maxWidth
		}
	}
	if width == 0 {
		width = 80
	}
	return nil
}

// suggestStyle returns the built-in style closest to name, if any is close.
func suggestStyle(name string) string {
	names := make([]string, 0, len(ansi.DefaultStyles))
	for k := range ansi.DefaultStyles {
		names = append(names, k)
	}
	sort.Strings(names)

	matches := fuzzy.Find(filepath.Base(name), names)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, err
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(cmd *cobra.Command, args []string) error {
	// if stdin is a pipe then use stdin for input. note that you can also
	// explicitly use a - to read from stdin.
	if len(args) == 0 {
		yes, err := stdinIsPipe()
		if err != nil {
			return err
		}
		if !yes {
			return cmd.Help()
		}
		args = []string{"-"}
	}
	return executeArg(cmd, args[0], os.Stdout)
}

func executeArg(cmd *cobra.Command, arg string, w io.Writer) error {
	src, err := sourceFromArg(arg)
	if err != nil {
		return err
	}
	defer src.reader.Close() //nolint:errcheck
	return executeCLI(cmd, src, w)
}

func executeCLI(cmd *cobra.Command, src *source, w io.Writer) error {
	b, err := io.ReadAll(src.reader)
	if err != nil {
		return fmt.Errorf("unable to read post: %w", err)
	}
	raw := string(b)

	if showLinks {
		return printLinks(w, raw)
	}

	f, err := newFormatter()
	if err != nil {
		return err
	}
	id := post
	if id == "" {
		id = utils.PostFromPath(src.path)
	}
	segs := f.FormatText(raw, board, id, reveal)

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(format.NewDocument(raw, segs))
	}

	styles, err := ansi.StyleFor(style)
	if err != nil {
		return fmt.Errorf("unable to load style: %w", err)
	}
	profile := lipgloss.ColorProfile()
	if style == ansi.NoTTYStyle {
		profile = termenv.Ascii
	}
	r, err := ansi.NewRenderer(ansi.Options{
		WordWrap:     int(width),
		Styles:       styles,
		ColorProfile: profile,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(w, r.Render(segs)) //nolint: errcheck
	return nil
}

// printLinks writes one line per link found in the post's text.
func printLinks(w io.Writer, raw string) error {
	found := links.Extract(format.PlainText(raw))
	if asJSON {
		if found == nil {
			found = []links.Link{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(found)
	}
	for _, l := range found {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", l.Kind, l.DisplayText, l.URL); err != nil {
			return err
		}
	}
	return nil
}

// newFormatter builds a formatter with the configured content filter.
func newFormatter() (*format.Formatter, error) {
	return newFormatterFrom(viper.GetStringSlice("filter"))
}

func newFormatterFrom(filter []string) (*format.Formatter, error) {
	kf, err := format.NewKeywordFilter(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid content filter: %w", err)
	}
	return format.New(format.WithContentFilter(kf)), nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&board, "board", "b", "", "board the post belongs to")
	rootCmd.PersistentFlags().StringVarP(&post, "post", "p", "", "post id (default: file name)")
	rootCmd.PersistentFlags().BoolVarP(&reveal, "reveal", "r", false, "reveal all spoilers")
	rootCmd.PersistentFlags().StringVarP(&style, "style", "s", ansi.AutoStyle, "style name or JSON path")
	rootCmd.PersistentFlags().UintVarP(&width, "width", "w", 0, "word-wrap at width")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "print segments as JSON")
	rootCmd.Flags().BoolVar(&showLinks, "links", false, "print the links found in the post")
	rootCmd.PersistentFlags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel (view only)")
	_ = rootCmd.PersistentFlags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	_ = viper.BindPFlag("width", rootCmd.PersistentFlags().Lookup("width"))
	_ = viper.BindPFlag("board", rootCmd.PersistentFlags().Lookup("board"))
	_ = viper.BindPFlag("mouse", rootCmd.PersistentFlags().Lookup("mouse"))

	viper.SetDefault("style", ansi.AutoStyle)
	viper.SetDefault("width", 0)
	viper.SetDefault("filter", []string{})

	rootCmd.AddCommand(viewCmd, serveCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "postfmt")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "postfmt")}, dirs...)
	}

	if c := os.Getenv("POSTFMT_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("postfmt")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("postfmt")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "postfmt.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
