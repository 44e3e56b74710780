package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/cellseg-mcp/internal/imaging"
	"github.com/ironsheep/cellseg-mcp/internal/segment"
	"github.com/ironsheep/cellseg-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := configureLogging(os.Getenv("CELLSEG_LOG_LEVEL")); err != nil {
		fmt.Fprintf(os.Stderr, "cellseg-mcp: %v\n", err)
		os.Exit(2)
	}

	seed, err := parseSeed(os.Getenv("CELLSEG_SEED"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cellseg-mcp: CELLSEG_SEED: %v\n", err)
		os.Exit(2)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cellseg-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return
		case "segment":
			if err := runSegment(os.Args[2:], seed, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "cellseg-mcp: %v\n", err)
				os.Exit(1)
			}
			return
		default:
			fmt.Fprintf(os.Stderr, "cellseg-mcp: unknown command %q\n\n", os.Args[1])
			printUsage(os.Stderr)
			os.Exit(2)
		}
	}

	log.WithFields(log.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
	}).Debug("Cell segmentation MCP server")

	srv := server.New(server.WithVersion(Version), server.WithDefaultSeed(seed))
	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("Server error")
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "cellseg-mcp - MCP server for cell segmentation of microscope images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cellseg-mcp                                  Serve MCP over stdin/stdout")
	fmt.Fprintln(w, "  cellseg-mcp segment <input> <output.png> [seed]")
	fmt.Fprintln(w, "                                               Segment one image and save the regions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  CELLSEG_LOG_LEVEL=debug    Log level: debug, info, warn, error (default info)")
	fmt.Fprintln(w, "  CELLSEG_SEED=1             Default random seed for seed placement")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "In server mode the protocol runs on stdout; logs always go to stderr.")
}

// configureLogging sends logrus output to stderr at the given level. An
// empty level means info.
func configureLogging(level string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if level == "" {
		log.SetLevel(log.InfoLevel)
		return nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid CELLSEG_LOG_LEVEL: %w", err)
	}
	log.SetLevel(lvl)
	return nil
}

// parseSeed reads a seed value; empty means the default seed 1.
func parseSeed(s string) (uint64, error) {
	if s == "" {
		return 1, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

// runSegment implements the "segment" command: it runs the pipeline once
// with default parameters and prints the count and elapsed time.
func runSegment(args []string, seed uint64, out io.Writer) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("usage: cellseg-mcp segment <input> <output.png> [seed]")
	}
	if len(args) == 3 {
		s, err := parseSeed(args[2])
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", args[2], err)
		}
		seed = s
	}

	img, err := imaging.NewImageCache().Load(args[0])
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := imaging.RunSegmentation(img, segment.DefaultConfig(), seed)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := imaging.SavePNG(args[1], res.Regions); err != nil {
		return err
	}

	fmt.Fprintf(out, "Cell count: %d\n", res.Count)
	fmt.Fprintf(out, "Elapsed time: %v\n", elapsed)
	return nil
}
