// Command quickersfv is QuickerSFV's headless CLI: verify an existing
// checksum file, create a new one from a folder, list the checksum
// formats currently registered (built-in plus plugin-supplied), and —
// for scripts still invoking it the way the original Windows GUI
// binary was invoked — a hidden legacy entry point that accepts a
// single Win32-quoted command-line string.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/quickersfv/cmd/quickersfv/cmdline"
	"github.com/standardbeagle/quickersfv/internal/config"
	"github.com/standardbeagle/quickersfv/internal/diag"
	"github.com/standardbeagle/quickersfv/internal/hash/digest"
	"github.com/standardbeagle/quickersfv/internal/pluginabi"
	"github.com/standardbeagle/quickersfv/internal/pluginregistry"
	"github.com/standardbeagle/quickersfv/internal/provider"
	"github.com/standardbeagle/quickersfv/internal/provider/md5format"
	"github.com/standardbeagle/quickersfv/internal/provider/sfv"
	"github.com/standardbeagle/quickersfv/internal/scheduler"
	"github.com/standardbeagle/quickersfv/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "quickersfv",
		Usage:                  "create and verify SFV/MD5 checksum files",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "directory to look for .quickersfv.kdl in",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "enable operation trace output on stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("trace") {
				diag.SetOutput(os.Stderr)
				diag.Enable(true)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "verify",
				Usage:     "verify every entry in a checksum file",
				ArgsUsage: "<checksum-file>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "cache", Usage: "remember Ok results across repeated runs in this process"},
				},
				Action: runVerify,
			},
			{
				Name:      "create",
				Usage:     "hash every file under a folder into a new checksum file",
				ArgsUsage: "<folder>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "checksum file to write", Required: true},
					&cli.StringFlag{Name: "format", Usage: "provider to use (by file extension, e.g. .sfv or .md5); inferred from --output when omitted"},
				},
				Action: runCreate,
			},
			{
				Name:  "plugins",
				Usage: "inspect the registered checksum providers",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "list every registered provider, built-in and plugin-supplied",
						Action: runPluginsList,
					},
				},
			},
			{
				Name:   "legacy",
				Usage:  "run the Win32-quoted legacy command line (DOALL, OUTPUT:<path>)",
				Hidden: true,
				Action: runLegacy,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "quickersfv:", err)
		os.Exit(1)
	}
}

// loadRegistry resolves configuration for dir and builds a provider
// registry holding the built-in SFV/MD5 providers plus any plugins the
// configuration names.
func loadRegistry(dir string) (*provider.Registry, *config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	reg := provider.NewRegistry()
	reg.Register(sfv.New())
	reg.Register(md5format.New())

	if cfg.Providers.RegistryPath != "" {
		host := pluginabi.NewHost()
		if err := pluginregistry.RegisterAll(host, reg, cfg.Providers.RegistryPath); err != nil {
			return nil, nil, err
		}
	}

	return reg, cfg, nil
}

// resolveProvider returns the provider named by format (matched
// against FileExtensions glob patterns as "*.<format>" or "*<format>")
// if set, otherwise the provider registered for path's extension.
func resolveProvider(reg *provider.Registry, path, format string) (provider.ChecksumProvider, error) {
	if format != "" {
		needle := strings.TrimPrefix(strings.ToLower(format), ".")
		for _, p := range reg.All() {
			for _, pattern := range strings.Split(p.FileExtensions(), ";") {
				pattern = strings.ToLower(strings.TrimSpace(pattern))
				if strings.TrimPrefix(strings.TrimPrefix(pattern, "*"), ".") == needle {
					return p, nil
				}
			}
		}
		return nil, fmt.Errorf("no registered provider matches format %q", format)
	}
	p := reg.ForPath(path)
	if p == nil {
		return nil, fmt.Errorf("no registered provider understands %q", path)
	}
	return p, nil
}

// cliEventHandler renders a scheduler.EventHandler's event stream as
// one line per file on w, closing done once the operation reaches a
// terminal state (completed or errored).
type cliEventHandler struct {
	w      *os.File
	result scheduler.Result
	err    error
	done   chan struct{}
}

func newCLIEventHandler(w *os.File) *cliEventHandler {
	return &cliEventHandler{w: w, done: make(chan struct{})}
}

func (h *cliEventHandler) OperationStarted(nFiles uint32) {}
func (h *cliEventHandler) FileStarted(file, absoluteFilePath string) {}
func (h *cliEventHandler) Progress(percentage, bandwidthMiBs uint32) {}

func (h *cliEventHandler) FileCompleted(file string, checksum digest.Digest, absoluteFilePath string, status scheduler.CompletionStatus) {
	fmt.Fprintf(h.w, "%-8s %s\n", strings.ToUpper(status.String()), file)
}

func (h *cliEventHandler) OperationCompleted(r scheduler.Result) {
	h.result = r
	close(h.done)
}

func (h *cliEventHandler) Canceled() {}

func (h *cliEventHandler) Error(err error) {
	h.err = err
	close(h.done)
}

// runWithSignalCancel starts sched, posts op, and blocks until h
// reaches a terminal state, canceling the running operation if the
// process receives an interrupt.
func runWithSignalCancel(sched *scheduler.Scheduler, op any, h *cliEventHandler) {
	sched.Start()
	defer sched.Shutdown()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	sched.Post(op)

	select {
	case <-h.done:
	case <-sigCh:
		sched.Cancel()
		<-h.done
	}
}

func runVerify(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one checksum file argument", 2)
	}
	path := c.Args().First()

	reg, cfg, err := loadRegistry(c.String("config"))
	if err != nil {
		return err
	}
	p, err := resolveProvider(reg, path, "")
	if err != nil {
		return err
	}

	var cache *scheduler.VerifyCache
	if c.Bool("cache") {
		cache = scheduler.NewVerifyCache()
	}

	h := newCLIEventHandler(os.Stdout)
	sched := scheduler.New()
	runWithSignalCancel(sched, scheduler.VerifyOp{
		EventHandler: h,
		Options:      provider.HasherOptions{UseSSE42: cfg.Hasher.UseSSE42, UseAVX512: cfg.Hasher.UseAVX512},
		SourceFile:   path,
		Provider:     p,
		Cache:        cache,
	}, h)

	if h.err != nil {
		return h.err
	}
	return summarize(h.result)
}

func runCreate(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one folder argument", 2)
	}
	folder := c.Args().First()
	out := c.String("output")

	reg, cfg, err := loadRegistry(c.String("config"))
	if err != nil {
		return err
	}
	p, err := resolveProvider(reg, out, c.String("format"))
	if err != nil {
		return err
	}

	h := newCLIEventHandler(os.Stdout)
	sched := scheduler.New()
	runWithSignalCancel(sched, scheduler.CreateOp{
		EventHandler: h,
		Options:      provider.HasherOptions{UseSSE42: cfg.Hasher.UseSSE42, UseAVX512: cfg.Hasher.UseAVX512},
		TargetFile:   out,
		FolderPath:   folder,
		Provider:     p,
	}, h)

	if h.err != nil {
		return h.err
	}
	return summarize(h.result)
}

func runPluginsList(c *cli.Context) error {
	reg, _, err := loadRegistry(c.String("config"))
	if err != nil {
		return err
	}
	for _, p := range reg.All() {
		fmt.Printf("%-20s %-10s %s\n", p.FileDescription(), p.FileExtensions(), capabilityLabel(p.Capabilities()))
	}
	return nil
}

func capabilityLabel(capability provider.Capability) string {
	if capability == provider.VerifyOnly {
		return "verify-only"
	}
	return "verify+create"
}

// runLegacy reinterprets the process's argument vector as a single
// Win32-quoted command line, the invocation shape the original
// Windows binary's no-window mode accepted.
func runLegacy(c *cli.Context) error {
	opts, err := cmdline.Parse(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return err
	}
	if len(opts.FilesToCheck) == 0 {
		return errors.New("legacy: no checksum file given")
	}

	reg, cfg, err := loadRegistry(c.String("config"))
	if err != nil {
		return err
	}

	out := os.Stdout
	if opts.OutFile != "" {
		f, err := os.Create(opts.OutFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	path := opts.FilesToCheck[0]
	p, err := resolveProvider(reg, path, "")
	if err != nil {
		return err
	}

	h := newCLIEventHandler(out)
	sched := scheduler.New()
	runWithSignalCancel(sched, scheduler.VerifyOp{
		EventHandler: h,
		Options:      provider.HasherOptions{UseSSE42: cfg.Hasher.UseSSE42, UseAVX512: cfg.Hasher.UseAVX512},
		SourceFile:   path,
		Provider:     p,
	}, h)

	if h.err != nil {
		return h.err
	}
	fmt.Fprintf(out, "%d ok, %d bad, %d missing, %d total\n", h.result.Ok, h.result.Bad, h.result.Missing, h.result.Total)
	return nil
}

func summarize(r scheduler.Result) error {
	fmt.Printf("%d ok, %d bad, %d missing, %d total\n", r.Ok, r.Bad, r.Missing, r.Total)
	if r.WasCanceled {
		return cli.Exit("canceled", 130)
	}
	if r.Bad > 0 || r.Missing > 0 {
		return cli.Exit("", 1)
	}
	return nil
}
