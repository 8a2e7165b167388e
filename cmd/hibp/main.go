package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hibp"
	"hibp/cfg"
	"hibp/pkg/domain"
	"hibp/svc/breach"
	"hibp/svc/util"
)

var (
	apiKey    string
	userAgent string

	fullResponse      bool
	domainFilter      string
	excludeUnverified bool
	useNTLM           bool
	addPadding        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "hibp",
		Short:         "Query the Have I Been Pwned API",
		Long:          "Look up breaches, pastes and stealer logs for accounts, and check password exposure via k-Anonymity.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (defaults to HIBP_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "User-Agent override")

	breachesCmd := &cobra.Command{
		Use:   "breaches <account>",
		Short: "List breaches for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			params := breach.DefaultAccountParams()
			params.TruncateResponse = !fullResponse
			params.Domain = domainFilter
			params.IncludeUnverified = !excludeUnverified
			out, err := client.GetAccountBreaches(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	breachesCmd.Flags().BoolVar(&fullResponse, "full", false, "return full breach records instead of names only")
	breachesCmd.Flags().StringVar(&domainFilter, "domain", "", "filter to breaches of one site")
	breachesCmd.Flags().BoolVar(&excludeUnverified, "exclude-unverified", false, "drop unverified breaches")
	rootCmd.AddCommand(breachesCmd)

	breachCmd := &cobra.Command{
		Use:   "breach <name>",
		Short: "Fetch a single breach by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetBreach(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(breachCmd)

	latestCmd := &cobra.Command{
		Use:   "latest",
		Short: "Fetch the most recently added breach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetLatestBreach(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(latestCmd)

	dataClassesCmd := &cobra.Command{
		Use:   "dataclasses",
		Short: "List all data class labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetDataClasses(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(dataClassesCmd)

	pastesCmd := &cobra.Command{
		Use:   "pastes <account>",
		Short: "List pastes for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetAccountPastes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(pastesCmd)

	stealerCmd := &cobra.Command{
		Use:   "stealer",
		Short: "Stealer-log lookups",
	}
	stealerCmd.AddCommand(&cobra.Command{
		Use:   "email <email>",
		Short: "Website domains where the email was captured",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetStealerLogsByEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	stealerCmd.AddCommand(&cobra.Command{
		Use:   "website <domain>",
		Short: "Captured email addresses for a website domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetStealerLogsByWebsite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	stealerCmd.AddCommand(&cobra.Command{
		Use:   "emaildomain <domain>",
		Short: "Aliases on an email domain and where they were captured",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetStealerLogsByEmailDomain(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	})
	rootCmd.AddCommand(stealerCmd)

	subscriptionCmd := &cobra.Command{
		Use:   "subscription",
		Short: "Show the API key's subscription status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.GetSubscriptionStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rootCmd.AddCommand(subscriptionCmd)

	pwnedCmd := &cobra.Command{
		Use:   "pwned <password>",
		Short: "Check password exposure via k-Anonymity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			count, err := client.IsPasswordPwned(cmd.Context(), args[0], useNTLM, addPadding)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Println("not found in any known breach")
				return nil
			}
			fmt.Printf("seen %d times\n", count)
			return nil
		},
	}
	pwnedCmd.Flags().BoolVar(&useNTLM, "ntlm", false, "use NTLM hashing instead of SHA-1")
	pwnedCmd.Flags().BoolVar(&addPadding, "padding", false, "request padded responses")
	rootCmd.AddCommand(pwnedCmd)

	rangeCmd := &cobra.Command{
		Use:   "range <prefix>",
		Short: "Dump all digest suffixes for a 5-hex-character prefix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			out, err := client.SearchPasswordHashes(cmd.Context(), args[0], useNTLM, addPadding)
			if err != nil {
				return err
			}
			return printJSON(out)
		},
	}
	rangeCmd.Flags().BoolVar(&useNTLM, "ntlm", false, "use NTLM mode")
	rangeCmd.Flags().BoolVar(&addPadding, "padding", false, "request padded responses")
	rootCmd.AddCommand(rangeCmd)

	reportCmd := &cobra.Command{
		Use:   "report <account>",
		Short: "Combined breach, paste and stealer-log report for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			return runReport(cmd.Context(), client, args[0])
		},
	}
	rootCmd.AddCommand(reportCmd)

	if err := rootCmd.Execute(); err != nil {
		util.Error().Err(err).Msg("command failed")
		if ra, ok := domain.RetryAfter(err); ok {
			fmt.Fprintf(os.Stderr, "rate limited, retry after %d seconds\n", ra)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

type accountReport struct {
	Account     string          `json:"account"`
	Breaches    []domain.Breach `json:"breaches"`
	Pastes      []domain.Paste  `json:"pastes"`
	StealerLogs []string        `json:"stealer_logs"`
}

// runReport fans the three account lookups out concurrently; the shared
// client is safe for that, and pacing (if configured) still serializes
// the wire traffic.
func runReport(ctx context.Context, client *hibp.Client, account string) error {
	report := accountReport{Account: account}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.Breaches, err = client.GetAccountBreaches(ctx, account, breach.DefaultAccountParams())
		return err
	})
	g.Go(func() error {
		var err error
		report.Pastes, err = client.GetAccountPastes(ctx, account)
		return err
	})
	g.Go(func() error {
		var err error
		report.StealerLogs, err = client.GetStealerLogsByEmail(ctx, account)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return printJSON(report)
}

func newClient() (*hibp.Client, error) {
	_ = godotenv.Load()
	c, err := cfg.Load()
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		c.APIKey = cfg.NewSecret(apiKey)
	}
	if userAgent != "" {
		c.UserAgent = userAgent
	}
	util.InitLog(c.LogLevel, c.Environment == "development")
	return hibp.New(c)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
