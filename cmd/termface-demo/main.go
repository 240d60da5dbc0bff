package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jask/termface/dpi"
	"github.com/jask/termface/internal/config"
	"github.com/jask/termface/internal/tui"
	"github.com/jask/termface/lang"
	"github.com/jask/termface/widget"
)

type options struct {
	configPath  string
	logFile     string
	theme       string
	locale      string
	scale       string
	hourFormat  string
	showSeconds bool
}

func newRootCommand() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "termface-demo",
		Short: "Pick times from popup spinners in the terminal.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load(cmd)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "config file (default $TERMFACE_CONFIG or the user config dir)")
	f.StringVar(&o.logFile, "log-file", "", "write logs to this file")
	f.StringVar(&o.theme, "theme", "", "palette: dark or light")
	f.StringVar(&o.locale, "locale", "", "label locale, e.g. ja")
	f.StringVar(&o.scale, "scale", "", `scaling factor, e.g. "1.5" or "150%"`)
	f.StringVar(&o.hourFormat, "hour-format", "", `"12" or "24"`)
	f.BoolVar(&o.showSeconds, "seconds", true, "show the seconds field")
	return cmd
}

// load reads the config file and applies flags the user set explicitly.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = o.theme
	}
	if flags.Changed("locale") {
		cfg.UI.Locale = o.locale
	}
	if flags.Changed("scale") {
		v, err := dpi.Parse(o.scale)
		if err != nil {
			return config.Config{}, fmt.Errorf("--scale: %w", err)
		}
		cfg.UI.Scale = v
	}
	if flags.Changed("hour-format") {
		cfg.Picker.HourFormat = o.hourFormat
	}
	if flags.Changed("seconds") {
		cfg.Picker.ShowSeconds = o.showSeconds
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger writes to the configured file; the terminal belongs to the UI.
func newLogger(cfg config.Config) (*log.Logger, func(), error) {
	var (
		out     io.Writer = io.Discard
		closeFn           = func() {}
	)
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           cfg.Level(),
		ReportTimestamp: true,
		Prefix:          "termface",
	})
	return logger, closeFn, nil
}

func run(cfg config.Config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log.SetDefault(logger)
	dpi.SetLogger(logger.WithPrefix("dpi"))

	if cfg.Lang.Dir != "" {
		if err := lang.LoadDir(cfg.Lang.Dir); err != nil {
			return fmt.Errorf("load labels: %w", err)
		}
	}
	if err := lang.Default().Check(cfg.UI.Locale); err != nil {
		logger.Warn("no labels for locale, using English", "locale", cfg.UI.Locale)
	}

	d := widget.NewDisplay(80, 24)
	d.SetLogger(logger.WithPrefix("widget"))
	d.SetLocale(cfg.UI.Locale)
	d.SetScalingFactor(cfg.UI.Scale)
	host := d.NewWindow(widget.WindowOptions{Name: "form", Bounds: widget.Rect{W: 80, H: 24}, Decorated: true})

	pc := cfg.TimePicker()
	pc.Logger = logger.WithPrefix("timepicker")
	form, err := buildForm(host, pc)
	if err != nil {
		return err
	}
	logger.Info("starting", "theme", cfg.UI.Theme, "locale", cfg.UI.Locale, "hour_format", cfg.Picker.HourFormat)

	m := tui.New(d, host, tui.Options{Theme: cfg.UI.Theme, Status: form.Status, Logger: logger.WithPrefix("tui")})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
