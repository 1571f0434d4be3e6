// Copyright 2020 Carleton University Library.
// All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE.txt file.

// Command holdingstoolkit looks up library holdings in WorldCat and HathiTrust.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/cu-library/overridefromenv"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cu-library/holdingstoolkit/api"
	"github.com/cu-library/holdingstoolkit/auth"
	"github.com/cu-library/holdingstoolkit/config"
	"github.com/cu-library/holdingstoolkit/holdings"
	"github.com/cu-library/holdingstoolkit/subcommand"
	"github.com/cu-library/holdingstoolkit/subcommand/conf/dump"
	"github.com/cu-library/holdingstoolkit/subcommand/hathitrust/batch"
	"github.com/cu-library/holdingstoolkit/subcommand/holdings/get"
	"github.com/cu-library/holdingstoolkit/subcommand/holdings/lookup"
	"github.com/cu-library/holdingstoolkit/worldcat"
)

const (
	// ProjectName is the name of the executable, as displayed to the user in usage and version messages.
	ProjectName = "The Holdings Toolkit"

	// EnvPrefix is the prefix for environment variables which override unset flags.
	EnvPrefix = config.EnvPrefix
)

// A version flag, which should be overwritten when building using ldflags.
var version = "devel"

func main() {
	// Set the prefix of the default logger to the empty string.
	log.SetFlags(0)

	// Define the command line flags
	cfg := config.Config{}
	cfg.RegisterFlags(flag.CommandLine)
	configFile := flag.String("config", "", "A YAML file with values for any of the worldcat_, oclc_, and hathitrust_ flags which are not otherwise set.")
	logLevel := flag.String("loglevel", "info", "The minimum level of log messages: debug, info, warn, or error.")
	rps := flag.Float64("rps", api.DefaultRequestsPerSecond, "The maximum number of API requests per second, shared by all services. 0 or less for no limit.")
	workers := flag.Int("workers", 0, "The number of lookups to run at once. Defaults to the number of CPUs.")
	printVersion := flag.Bool("version", false, "Print the version then exit.")
	printHelp := flag.Bool("help", false, "Print help documentation then exit.")

	// Subcommands this tool understands.
	registry := subcommand.Registry{}
	registry.Register(lookup.Config())
	registry.Register(get.Config())
	registry.Register(batch.Config())
	registry.Register(dump.Config())

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "%v\n", ProjectName)
		fmt.Fprintf(flag.CommandLine.Output(), "Version %v\n", version)
		fmt.Fprintf(flag.CommandLine.Output(), "%v [FLAGS] subcommand [SUBCOMMAND FLAGS]\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  Environment variables read when flag is unset:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(flag.CommandLine.Output(), "  %v%v\n", EnvPrefix, strings.ToUpper(f.Name))
		})
		fmt.Fprintln(flag.CommandLine.Output(), "")
		fmt.Fprintln(flag.CommandLine.Output(), "Subcommands:")
		fmt.Fprintln(flag.CommandLine.Output(), "")
		names := make([]string, 0, len(registry))
		for name := range registry {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sub := registry[name]
			fmt.Fprintf(flag.CommandLine.Output(), "%v\n", name)
			sub.FlagSet.SetOutput(flag.CommandLine.Output())
			sub.FlagSet.Usage()
			fmt.Fprintln(flag.CommandLine.Output(), "  Environment variables read when flag is unset:")
			sub.FlagSet.VisitAll(func(f *flag.Flag) {
				fmt.Fprintf(flag.CommandLine.Output(), "  %v%v_%v\n", EnvPrefix, envName(name), strings.ToUpper(f.Name))
			})
			fmt.Fprintln(flag.CommandLine.Output(), "")
		}
	}

	// Process the flags.
	flag.Parse()

	// Quick exit for help and version flags
	if *printVersion {
		fmt.Printf("%v - Version %v.\n", ProjectName, version)
		os.Exit(0)
	}
	if *printHelp {
		flag.CommandLine.SetOutput(os.Stdout)
		flag.Usage()
		os.Exit(0)
	}

	// If any flags have not been set, see if there are
	// environment variables that set them.
	err := overridefromenv.Override(flag.CommandLine, EnvPrefix)
	if err != nil {
		log.Fatalln(err)
	}

	// Values from the config file only fill in what flags and the environment didn't.
	if *configFile != "" {
		fileCfg, err := config.LoadFile(*configFile)
		if err != nil {
			log.Fatalf("FATAL: %v.\n", err)
		}
		cfg.Merge(fileCfg)
	}
	err = cfg.Validate()
	if err != nil {
		log.Fatalf("FATAL: %v.\n", err)
	}

	logger, err := newLogger(*logLevel)
	if err != nil {
		log.Fatalf("FATAL: Unable to create logger, %v.\n", err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	// Was a subcommand provided? Was it valid?
	if len(flag.Args()) == 0 {
		log.Println("FATAL: A subcommand is required.")
		flag.Usage()
		os.Exit(1)
	}
	subName := flag.Args()[0]
	sub, valid := registry[subName]
	if !valid {
		log.Printf("FATAL: \"%v\" is not a valid subcommand.\n", subName)
		flag.Usage()
		os.Exit(1)
	}

	// Ignore errors; FlagSets are all set for ExitOnError.
	_ = sub.FlagSet.Parse(flag.Args()[1:])
	// If any flags have not been set, see if there are
	// environment variables that set them.
	err = overridefromenv.Override(sub.FlagSet, EnvPrefix+envName(subName)+"_")
	if err != nil {
		log.Fatalln(err)
	}
	if sub.ValidateFlags != nil {
		err = sub.ValidateFlags()
		if err != nil {
			log.Printf("FATAL: %v.\n", err)
			flag.Usage()
			os.Exit(1)
		}
	}

	// Keep track of child goroutines.
	var wg sync.WaitGroup

	// Our base context, used to derive all other contexts and propagate cancel signals.
	ctx, cancel := context.WithCancel(context.Background())

	// Cancel the base context if SIGINT or SIGTERM are received.
	wg.Add(1)
	go func() {
		defer wg.Done()
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-sigs:
			logger.Warn("cancelling")
			cancel()
		case <-ctx.Done():
		}
	}()

	exit := func(code int) {
		cancel()
		wg.Wait()
		_ = logger.Sync()
		os.Exit(code)
	}

	// Initialize the API client.
	c := &api.Client{
		Client:    &http.Client{},
		Limiter:   api.NewLimiter(*rps),
		UserAgent: "holdingstoolkit/" + version,
	}
	var tokens worldcat.TokenSource
	var authenticator *auth.Authenticator
	if cfg.Protocol() == config.ProtocolV2 {
		authenticator = auth.New(cfg, c)
		tokens = authenticator
	}
	resolver := holdings.NewResolver(cfg, c, tokens, logger)
	resolver.Workers = *workers

	// Ensure the credentials work before starting, when this run calls WorldCat.
	if sub.UsesWorldCat != nil && sub.UsesWorldCat() {
		err = checkWorldCat(ctx, cfg, authenticator)
		if err != nil {
			logger.Error("WorldCat credentials check failed", zap.Error(err))
			exit(1)
		}
	}

	// Run the subcommand.
	logger.Debug("running subcommand", zap.String("subcommand", subName), zap.String("protocol", cfg.Protocol()))
	err = sub.Run(ctx, subcommand.Env{Config: cfg, Resolver: resolver, Logger: logger, Out: os.Stdout})
	if err != nil {
		logger.Error("subcommand failed", zap.String("subcommand", subName), zap.Error(err))
		exit(1)
	}

	// No errors, cancel the context, wait on the WaitGroup, then exit with 0 status.
	exit(0)
}

// newLogger builds a production logger writing console formatted messages to stderr.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	zcfg.Encoding = "console"
	zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.DisableStacktrace = true
	return zcfg.Build()
}

// checkWorldCat fails fast when WorldCat can't be called. A v2 check fetches a token.
func checkWorldCat(ctx context.Context, cfg config.Provider, authenticator *auth.Authenticator) error {
	if cfg.APIKey() == "" {
		return errors.New("a WorldCat API key is required")
	}
	if authenticator == nil {
		return nil
	}
	_, err := authenticator.AccessToken(ctx)
	return err
}

// envName turns a subcommand name like holdings-lookup into HOLDINGS_LOOKUP.
func envName(subName string) string {
	return strings.ToUpper(strings.ReplaceAll(subName, "-", "_"))
}
