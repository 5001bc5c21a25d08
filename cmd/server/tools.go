package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kisankhidmat/khidmat/internal/auth"
	"github.com/kisankhidmat/khidmat/internal/billing"
)

func hashPasswordCmd() *cobra.Command {
	var cost int

	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for admin.password_hash",
		Long: `Print a bcrypt hash of the admin password for the config file.
The password is read from the first argument, or from the first line of stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && err != io.EOF {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			hash, err := auth.HashPassword(password, cost)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().IntVar(&cost, "cost", 0, "bcrypt cost (0 uses the library default)")
	return cmd
}

func billCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "bill <phone>",
		Short: "Generate a customer's bill and print its path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			bill, err := a.bills.Generate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d pages, due ₹%s)\n",
				bill.Path, len(bill.Document.Pages), bill.Record.TotalDue.String())
			return nil
		},
	}
}

func dashboardCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print total outstanding and the top customers by due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ledgers, err := a.ledgers.LoadAll()
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), billing.DashboardSummary(ledgers))
			return nil
		},
	}
}

func printSummary(w io.Writer, s billing.Summary) {
	fmt.Fprintf(w, "Customers: %d\nTotal outstanding: ₹%s\n\n", s.Customers, s.TotalOutstanding.String())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PHONE\tDUE")
	for _, c := range s.TopCustomers {
		fmt.Fprintf(tw, "%s\t₹%s\n", c.Phone, c.Due.String())
	}
	tw.Flush()
}
