package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pevans/gdeltpull/config"
	"github.com/pevans/gdeltpull/gdelt"
)

func main() {
	outputDir := flag.String("output", "output", "Output directory for result files")
	configPath := flag.String("config", "", "Path to a saved run configuration (default: <output>/input.json)")
	noSleep := flag.Bool("no-sleep", false, "Disable the 5 second rate-limit sleep (you will likely be rate limited)")
	flag.Parse()

	// Tool-level defaults from ~/.gdeltpull/config.yaml, if present.
	fileCfg, err := config.LoadConfigFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config file: %v\n", err)
		os.Exit(1)
	}

	dir := *outputDir
	if dir == "output" && fileCfg != nil && fileCfg.Output.Dir != "" {
		dir = fileCfg.Output.Dir
	}

	runConfigPath := *configPath
	if runConfigPath == "" {
		runConfigPath = filepath.Join(dir, config.RunConfigName)
	}

	p := newPrompter()

	// Reload the previous run configuration if the user wants it, otherwise
	// prompt for everything.
	params, err := config.LoadRun(runConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if params != nil {
		fmt.Println("The program detected a previous configuration:")
		fmt.Println()
		fmt.Print(formatParams(params))
		fmt.Println()
		if !p.confirm("If you would like to use this configuration, please type yes, otherwise leave blank.") {
			params = nil
		}
	}
	if params == nil {
		params = p.promptParams()
	}

	sleepDisabled := *noSleep
	if !sleepDisabled {
		sleepDisabled = p.confirmPhrase(
			"To disable 5 second waiting times (which prevent rate limiting) please type the phrase "+
				`"I KNOW WHAT I AM DOING!", otherwise leave blank.`,
			"I KNOW WHAT I AM DOING!")
	}

	// Validation happens before any network call.
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Start each run with an empty output directory.
	if err := os.RemoveAll(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to clear output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	// Persist the run configuration first so it can be reloaded later even
	// if the run is interrupted.
	if err := config.SaveRun(filepath.Join(dir, config.RunConfigName), params); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := newClient(fileCfg, sleepDisabled)

	if err := runPull(context.Background(), client, params, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClient builds the API client, applying overrides from the tool config
// file.
func newClient(fileCfg *config.FileConfig, sleepDisabled bool) *gdelt.Client {
	client := gdelt.NewClient()
	client.Progress = func(format string, args ...any) {
		fmt.Printf(format+"\n", args...)
	}

	if fileCfg != nil {
		if fileCfg.Fetch.Retries > 0 {
			client.Retries = fileCfg.Fetch.Retries
		}
		if fileCfg.Fetch.UserAgent != "" {
			client.UserAgent = fileCfg.Fetch.UserAgent
		}
		if fileCfg.Fetch.RateLimit != "" {
			d, err := time.ParseDuration(fileCfg.Fetch.RateLimit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: invalid rate_limit in config file: %v\n", err)
			} else {
				client.RateLimit = d
			}
		}
	}

	if sleepDisabled {
		client.RateLimit = 0
	}

	return client
}

// formatParams renders a run configuration for display, humanising the
// timestamps.
func formatParams(p *gdelt.Params) string {
	out := ""
	line := func(key, value string) {
		if value != "" {
			out += fmt.Sprintf("%s: %s\n", key, value)
		}
	}

	if len(p.Keywords) > 0 {
		line("Keywords", joinNonEmpty(p.Keywords))
	}
	line("Keyword Format", p.KeywordFormat)
	line("Language", p.Language)
	line("Country", p.Country)
	line("Domain", p.Domain)
	line("Theme", p.Theme)
	line("Custom", p.Custom)
	line("Start", gdelt.HumanTimestamp(p.Start))
	line("End", gdelt.HumanTimestamp(p.End))
	line("Translation", p.Translation)
	return out
}

func joinNonEmpty(values []string) string {
	out := ""
	for _, v := range values {
		if v == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += v
	}
	return out
}
