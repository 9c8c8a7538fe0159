package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/packetctl/internal/logging"
	"github.com/danmuck/packetctl/internal/packet"
	"github.com/rs/zerolog/log"
)

var errEmptyInput = errors.New("empty input")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal().Err(err).Msg("packetctl failed")
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("packetctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	input := fs.String("input", "-", "hex transmission file, - for stdin")
	tree := fs.Bool("tree", false, "print the decoded expression")
	reencode := fs.Bool("reencode", false, "print the packet re-encoded as hex")
	level := fs.String("log-level", "", "log level (trace, debug, info, warn, error, off)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := defaultRunConfig()
	if *configPath != "" {
		loaded, err := loadRunConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *input
		case "tree":
			cfg.PrintTree = *tree
		case "reencode":
			cfg.Reencode = *reencode
		case "log-level":
			if err := cfg.setLogLevel(*level); err != nil {
				flagErr = err
			}
		}
	})
	if flagErr != nil {
		return flagErr
	}

	logCfg := logging.DefaultConfig(logging.ProfileRuntime)
	logCfg.Out = stderr
	if cfg.LogLevelSet {
		logCfg.Level = cfg.LogLevel
	}
	logging.ApplyEnv(&logCfg)
	logger := logging.Install(logCfg)

	hex, err := readInput(cfg.Input, stdin)
	if err != nil {
		return err
	}
	logger.Debug().Str("input", cfg.Input).Int("digits", len(hex)).Msg("read transmission")

	dec := packet.NewDecoder(packet.WithLimits(cfg.Limits), packet.WithLogger(logger))
	p, err := dec.Decode(hex)
	if err != nil {
		return fmt.Errorf("decode %s: %w", cfg.Input, err)
	}
	value, err := packet.Evaluate(p)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", cfg.Input, err)
	}

	if cfg.PrintTree {
		fmt.Fprintf(stdout, "tree: %s\n", packet.Format(p))
	}
	if cfg.Reencode {
		out, err := packet.Encode(p)
		if err != nil {
			return fmt.Errorf("reencode %s: %w", cfg.Input, err)
		}
		fmt.Fprintf(stdout, "hex: %s\n", out)
	}
	fmt.Fprintf(stdout, "part 1: %d\n", packet.SumVersions(p))
	fmt.Fprintf(stdout, "part 2: %d\n", value)
	return nil
}

func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read input %s: %w", path, err)
	}
	hex := strings.TrimSpace(string(data))
	if hex == "" {
		return "", fmt.Errorf("read input %s: %w", path, errEmptyInput)
	}
	return hex, nil
}
