package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-color-mcp/internal/colorstats"
	"github.com/ironsheep/image-color-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// EnvLogLevel enables debug logging when set to "debug".
const EnvLogLevel = "IMAGE_COLOR_MCP_LOG_LEVEL"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-color-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		default:
			fmt.Fprintf(os.Stderr, "unknown argument %q (try --help)\n", os.Args[1])
			os.Exit(2)
		}
	}

	// stdout carries the MCP protocol
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv(EnvLogLevel) == "debug"

	cfg, err := colorstats.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if debug {
		log.Printf("Image Color MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Defaults: dark=%d light=%d minfract=%g gradient=%d",
			cfg.DarkThresh, cfg.LightThresh, cfg.MinFract, cfg.GradientThresh)
	}

	srv := server.New(
		server.WithConfig(cfg),
		server.WithVersion(Version),
		server.WithDebug(debug),
	)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("image-color-mcp - MCP server for image color analysis")
	fmt.Println()
	fmt.Println("Usage: image-color-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s=debug       Enable debug logging\n", EnvLogLevel)
	fmt.Printf("  %s=N          Default dark threshold (%d)\n", colorstats.EnvDarkThresh, colorstats.DefaultDarkThresh)
	fmt.Printf("  %s=N         Default light threshold (%d)\n", colorstats.EnvLightThresh, colorstats.DefaultLightThresh)
	fmt.Printf("  %s=F            Default significant-level share (%g)\n", colorstats.EnvMinFract, colorstats.DefaultMinFract)
	fmt.Printf("  %s=N      Default gradient threshold (%d)\n", colorstats.EnvGradientThresh, colorstats.DefaultGradientThresh)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
