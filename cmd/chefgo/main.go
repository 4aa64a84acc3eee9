package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/l-hoang/chefgo/internal/builder"
	"github.com/l-hoang/chefgo/internal/config"
	"github.com/l-hoang/chefgo/internal/interp"
	"github.com/l-hoang/chefgo/internal/parser"
	"github.com/l-hoang/chefgo/internal/pipeline"
	"github.com/l-hoang/chefgo/pkg/logger"
)

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func printErr(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(os.Stderr, msg)
}

func fatalf(format string, args ...interface{}) {
	printErr(format, args...)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "path to a chefgo.yaml options file")
	seed := flag.Int64("seed", 0, "shuffle seed for Mix (0 = from the clock)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file%s>\n", os.Args[0], config.SourceFileExt)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	path := flag.Arg(0)
	if !isSourceFile(path) {
		fatalf("Error: %s is not a recipe file (expected %s)", path, strings.Join(config.SourceFileExtensions, ", "))
	}

	opts := &config.Options{LogLevel: "info"}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fatalf("Error loading config: %s", err)
		}
		opts = loaded
	}
	if *seed != 0 {
		opts.Seed = *seed
	}
	if *logLevel != "" {
		opts.LogLevel = *logLevel
	}
	if err := logger.Init(opts.LogLevel, os.Stderr); err != nil {
		fatalf("Error: %s", err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fatalf("Error reading %s: %s", path, err)
	}

	ctx := &pipeline.PipelineContext{FilePath: path, SourceCode: string(source)}
	ctx = pipeline.New(&parser.ParserProcessor{}, &builder.BuilderProcessor{}).Run(ctx)
	if ctx.Failed() {
		for _, diag := range ctx.Errors {
			printErr("- %s", diag.Error())
		}
		os.Exit(1)
	}

	var in interp.InputSource
	if len(opts.Inputs) > 0 {
		in = interp.Inputs(opts.Inputs...)
	} else {
		in = interp.NewScannerInput(os.Stdin)
	}

	runOpts := &interp.RunOptions{Seed: opts.Seed, Logger: logger.Get()}
	if err := interp.Run(ctx.Program, in, os.Stdout, runOpts); err != nil {
		fatalf("%s", err)
	}
}
