package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ferus-web/sanchar/browser"
	"github.com/ferus-web/sanchar/cliout"
	"github.com/ferus-web/sanchar/httpclient"
	"github.com/ferus-web/sanchar/logutil"
	"github.com/ferus-web/sanchar/parser"
	"github.com/ferus-web/sanchar/version"
)

var buildInfo = version.New("sanchar")

func newRootCommand() *cobra.Command {
	var outputFormat string
	var debug bool

	root := &cobra.Command{
		Use:           "sanchar",
		Short:         "Parse, validate and fetch URLs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logutil.Setup(debug, false)
			return cliout.SetFormat(outputFormat)
		},
	}

	root.PersistentFlags().StringVarP(&outputFormat, "output", "o", "default", "Output format (default, json)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newParseCommand(),
		newCheckCommand(),
		newTLDCommand(),
		newFetchCommand(),
		newOpenCommand(),
		version.NewCommand(buildInfo),
	)
	return root
}

// parseResult is the JSON shape of the parse command output.
type parseResult struct {
	Scheme   string `json:"scheme"`
	Hostname string `json:"hostname"`
	Port     uint16 `json:"port"`
	Path     string `json:"path"`
	Fragment string `json:"fragment"`
	Query    string `json:"query"`
	TLD      string `json:"tld"`
	String   string `json:"string"`
}

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>",
		Short: "Parse a URL and print its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parser.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing %q: %w", args[0], err)
			}

			result := parseResult{
				Scheme:   u.Scheme,
				Hostname: u.Hostname,
				Port:     u.Port,
				Path:     u.Path,
				Fragment: u.Fragment,
				Query:    u.Query,
				TLD:      u.TLD(),
				String:   u.String(),
			}
			return cliout.Print(result, func() {
				cliout.Header("URL Components")
				cliout.Label("Scheme", u.Scheme)
				cliout.Label("Hostname", u.Hostname)
				cliout.Label("Port", strconv.Itoa(int(u.Port)))
				cliout.Label("Path", u.Path)
				cliout.Label("Fragment", u.Fragment)
				cliout.Label("Query", u.Query)
				cliout.Label("TLD", u.TLD())
			})
		},
	}
}

// checkResult is the JSON shape of one check command entry.
type checkResult struct {
	URL    string `json:"url"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <url>...",
		Short: "Check whether URLs are valid",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]checkResult, 0, len(args))
			invalid := 0
			for _, arg := range args {
				ok, reason := parser.IsValid(arg)
				if !ok {
					invalid++
				}
				results = append(results, checkResult{URL: arg, Valid: ok, Reason: reason})
			}

			err := cliout.Print(results, func() {
				for _, r := range results {
					if r.Valid {
						cliout.Success("%s", r.URL)
					} else {
						cliout.Error("%s: %s", r.URL, r.Reason)
					}
				}
			})
			if err != nil {
				return err
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d URLs invalid", invalid, len(args))
			}
			return nil
		},
	}
}

func newTLDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tld <url>",
		Short: "Print the top-level-domain suffix of a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parser.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing %q: %w", args[0], err)
			}
			cliout.Plain("%s", u.TLD())
			return nil
		},
	}
}

func newFetchCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a URL and print the response status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parser.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing %q: %w", args[0], err)
			}

			cfg := httpclient.DefaultConfig()
			if configPath != "" {
				cfg, err = httpclient.LoadConfig(configPath)
				if err != nil {
					return err
				}
			}

			client := httpclient.New(cfg)
			resp, err := client.Fetch(cmd.Context(), u)
			if err != nil {
				return fmt.Errorf("fetching %s: %w", u.String(), err)
			}

			logutil.Debug("fetch complete", "url", resp.URL, "status", resp.StatusCode)
			return cliout.Print(
				map[string]any{"url": resp.URL, "status": resp.StatusCode, "bytes": len(resp.Body)},
				func() {
					cliout.Success("%s", u.String())
					cliout.Label("Status", strconv.Itoa(resp.StatusCode))
					cliout.Label("Bytes", strconv.Itoa(len(resp.Body)))
				},
			)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML client config file")
	return cmd
}

func newOpenCommand() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "open <url>",
		Short: "Open a URL in the system browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parser.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing %q: %w", args[0], err)
			}
			if err := browser.Launch(u, browser.Target(target)); err != nil {
				return err
			}
			cliout.Success("opened %s", u.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", string(browser.TargetSystem), "Browser target (default, system, none)")
	return cmd
}
