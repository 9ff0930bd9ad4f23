package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	postgresRepo "github.com/fundhost/ledger/internal/adapter/repository/postgres"
	"github.com/fundhost/ledger/internal/domain"
	"github.com/fundhost/ledger/internal/infrastructure/config"
	"github.com/fundhost/ledger/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fundhost-cli",
		Short: "Fundhost ledger CLI tool",
		Long:  `A command line interface for operating the fundhost ledger service.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(ledgerCmd())
	rootCmd.AddCommand(fxCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func migrateCmd() *cobra.Command {
	var migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}
	cmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Path to migration files")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, migrationsPath)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, migrationsPath)
		},
	})

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export [account-id]",
		Short: "Export an account's ledger as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportLedger(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "balance [account-id]",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showBalance(args[0])
		},
	})

	return cmd
}

func fxCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "fx",
		Short: "FX rate operations",
	}

	pin := &cobra.Command{
		Use:   "pin [base] [quote] [rate]",
		Short: "Pin an FX rate for a date so conversions stay deterministic",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid rate %q: %w", args[2], err)
			}
			at := time.Now().UTC()
			if asOf != "" {
				at, err = time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", asOf, err)
				}
			}
			return pinRate(cmd.Context(), args[0], args[1], rate, at)
		},
	}
	pin.Flags().StringVar(&asOf, "date", "", "Rate date (YYYY-MM-DD, defaults to today)")
	cmd.AddCommand(pin)

	return cmd
}

func pinRate(ctx context.Context, base, quote string, rate decimal.Decimal, at time.Time) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, 2, 1)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgresRepo.NewFxRateRepository(pool)
	if err := repo.Put(ctx, &domain.FxRate{Base: base, Quote: quote, Rate: rate, AsOf: at}); err != nil {
		return err
	}

	fmt.Printf("Pinned %s/%s = %s for %s\n", base, quote, rate.String(), at.Format("2006-01-02"))
	return nil
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if checked, ok := result["groups_checked"].(float64); ok {
		fmt.Printf("Groups checked: %d\n", int(checked))
	}
}

func exportLedger(accountID string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/accounts/" + accountID + "/ledger.csv")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("export failed (status %d): %s", resp.StatusCode, string(body))
	}

	_, err = io.Copy(os.Stdout, resp.Body)
	return err
}

func showBalance(accountID string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/accounts/" + accountID + "/balance")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("balance lookup failed (status %d): %s", resp.StatusCode, string(body))
	}

	var balance struct {
		AccountID string `json:"account_id"`
		Currency  string `json:"currency"`
		Amount    int64  `json:"amount"`
	}
	if err := json.Unmarshal(body, &balance); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Printf("%s: %s %s\n", balance.AccountID, decimal.New(balance.Amount, -2).StringFixed(2), balance.Currency)
	return nil
}
