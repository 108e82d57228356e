// Command llamacpp-bindings inspects and serves the llama.cpp bindings.
//
//	llamacpp-bindings [-config file] [-log-level level] <command> [args]
//
// Commands:
//
//	sysinfo                   print the inference library's system info
//	greet [-name N] [who...]  construct a greeter named N and greet each who
//	describe                  print the export table and wire schemas
//	run module.wasm [args]    run a wasip1 guest with the bindings imported
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	llamacpp "github.com/modelfusion/llamacpp-bindings"
	"github.com/modelfusion/llamacpp-bindings/application/bindings"
	"github.com/modelfusion/llamacpp-bindings/application/config"
	"github.com/modelfusion/llamacpp-bindings/application/schema"
	"github.com/modelfusion/llamacpp-bindings/domain/entities"
	"github.com/modelfusion/llamacpp-bindings/host"
	"github.com/modelfusion/llamacpp-bindings/hostfuncs"
	"github.com/modelfusion/llamacpp-bindings/infrastructure/llama"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// app carries what every command needs.
type app struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("llamacpp-bindings", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML config file")
	logLevel := fs.String("log-level", "", "Override log level (debug, info, warn, error)")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		printError(stderr, err)
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
		if err := cfg.Validate(); err != nil {
			printError(stderr, err)
			return 1
		}
	}
	slog.SetDefault(cfg.NewLogger(stderr))

	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}

	a := &app{cfg: cfg, stdout: stdout, stderr: stderr}
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "sysinfo":
		err = a.sysinfo(ctx)
	case "greet":
		err = a.greet(ctx, rest)
	case "describe":
		err = a.describe()
	case "run":
		err = a.runGuest(ctx, rest)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	if err != nil {
		var exitErr *host.ExitError
		if errors.As(err, &exitErr) {
			return int(exitErr.Code)
		}
		printError(stderr, err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render("llamacpp-bindings"))
	fmt.Fprintln(w, "Usage: llamacpp-bindings [-config file] [-log-level level] <command> [args]")
	fmt.Fprintln(w, helpStyle.Render("  sysinfo                   print system info"))
	fmt.Fprintln(w, helpStyle.Render("  greet [-name N] [who...]  construct a greeter and greet"))
	fmt.Fprintln(w, helpStyle.Render("  describe                  print exports and schemas"))
	fmt.Fprintln(w, helpStyle.Render("  run module.wasm [args]    run a wasip1 guest"))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
}

// registry builds a fresh registry whose greeter diagnostics go to stdout.
func (a *app) registry() (*hostfuncs.HandlerRegistry, error) {
	shim := bindings.New(llama.NewProvider(), bindings.WithStdout(a.stdout))
	return llamacpp.NewRegistry(shim)
}

func (a *app) sysinfo(ctx context.Context) error {
	reg, err := a.registry()
	if err != nil {
		return err
	}
	res, err := reg.Call(ctx, bindings.ExportSystemInfo, entities.Invocation{})
	if err != nil {
		return err
	}
	var info string
	if err := res.Decode(&info); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, info)
	return nil
}

func (a *app) greet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("greet", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	name := fs.String("name", "Alice", "Label for the constructed greeter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	visitors := fs.Args()
	if len(visitors) == 0 {
		visitors = []string{"Bob"}
	}

	reg, err := a.registry()
	if err != nil {
		return err
	}

	inv, err := entities.NewInvocation(nil, *name)
	if err != nil {
		return err
	}
	res, err := reg.Call(ctx, bindings.ExportConstructor, inv)
	if err != nil {
		return err
	}
	var self entities.BoundObject
	if err := res.Decode(&self); err != nil {
		return err
	}

	for _, who := range visitors {
		inv, err := entities.NewInvocation(&self, who)
		if err != nil {
			return err
		}
		res, err := reg.Call(ctx, bindings.ExportGreet, inv)
		if err != nil {
			return err
		}
		var label string
		if err := res.Decode(&label); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, resultStyle.Render("=> "+label))
	}
	return nil
}

func (a *app) describe() error {
	reg, err := a.registry()
	if err != nil {
		return err
	}
	desc, err := schema.Describe(a.cfg.ModuleName, reg)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}
	fmt.Fprintln(a.stdout, string(out))
	return nil
}

func (a *app) runGuest(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("run: missing module path")
	}
	wasm, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read module: %w", err)
	}

	reg, err := a.registry()
	if err != nil {
		return err
	}
	exec, err := host.NewExecutor(ctx,
		host.WithHostFunctions(reg),
		host.WithModuleName(a.cfg.ModuleName),
		host.WithMaxRequestSize(a.cfg.MaxRequestSize),
		host.WithStdout(a.stdout),
		host.WithStderr(a.stderr),
		host.WithLogger(slog.Default()),
	)
	if err != nil {
		return err
	}
	defer exec.Close(ctx)

	return exec.Run(ctx, wasm, args[1:]...)
}
