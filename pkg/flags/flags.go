package flags

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Config holds all command-line configuration. Empty fields were not given
// on the command line and fall back to the config file or environment.
type Config struct {
	Port       string
	ConfigPath string
	Storage    string
	Help       bool
}

// Parse parses os.Args, printing usage and exiting on --help or bad input
func Parse() Config {
	config, err := ParseArgs(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return config
}

// ParseArgs parses args without touching global state
func ParseArgs(args []string, output io.Writer) (Config, error) {
	var config Config

	fs := flag.NewFlagSet("cafe", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&config.Port, "port", "", "Port number")
	fs.StringVar(&config.ConfigPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&config.Storage, "storage", "", "Storage backend: postgres or memory")
	fs.BoolVar(&config.Help, "help", false, "Show this screen")

	fs.Usage = func() {
		fmt.Fprintf(output, "Cafe Order Service\n\n")
		fmt.Fprintf(output, "Usage:\n")
		fmt.Fprintf(output, "  cafe [--port <N>] [--config <file>] [--storage postgres|memory]\n")
		fmt.Fprintf(output, "  cafe --help\n\n")
		fmt.Fprintf(output, "Options:\n")
		fmt.Fprintf(output, "  --help       Show this screen.\n")
		fmt.Fprintf(output, "  --port N     Port number (1-65535).\n")
		fmt.Fprintf(output, "  --config F   YAML configuration file.\n")
		fmt.Fprintf(output, "  --storage S  Storage backend (default postgres).\n")
	}

	if err := fs.Parse(args); err != nil {
		return config, err
	}
	if config.Help {
		fs.Usage()
		return config, flag.ErrHelp
	}
	return config, config.Validate()
}

// validatePort validates the port number
func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number '%s': must be a number", port)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("port number %d is out of range: must be between 1 and 65535", portNum)
	}

	return nil
}

// Validate validates the parsed configuration
func (c Config) Validate() error {
	if c.Port != "" {
		if err := validatePort(c.Port); err != nil {
			return err
		}
	}
	switch c.Storage {
	case "", "postgres", "memory":
	default:
		return fmt.Errorf("invalid storage '%s': must be postgres or memory", c.Storage)
	}
	return nil
}
