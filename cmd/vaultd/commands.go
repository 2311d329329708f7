package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/swapvault"
	"github.com/iov-one/swapvault/app"
	"github.com/iov-one/swapvault/errors"
	"github.com/iov-one/swapvault/x/vault"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), swapvault.Version())
		},
	}
}

func hashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [secret]",
		Short: "Print the hash lock of a hex encoded secret, or of a new random secret",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := make([]byte, vault.SecretSize)
			if len(args) == 1 {
				raw, err := hex.DecodeString(args[0])
				if err != nil {
					return errors.Wrapf(errors.ErrInput, "secret: %s", err)
				}
				secret = raw
			} else if _, err := rand.Read(secret); err != nil {
				return errors.Wrapf(errors.ErrHuman, "random secret: %s", err)
			}
			if len(secret) != vault.SecretSize {
				return errors.Wrapf(errors.ErrInput, "secret must be %d bytes", vault.SecretSize)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "secret:    %x\n", secret)
			fmt.Fprintf(out, "hash_lock: %x\n", vault.HashSecret(secret))
			return nil
		},
	}
}

func addressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address <kind> <name>",
		Short: "Print the address of a contract originated with given kind and name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), swapvault.ContractAddress(args[0], args[1]))
			return nil
		},
	}
}

func initCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Load the genesis file into a new ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, v, func(cfg *config, l *app.Ledger) error {
				gen, err := app.LoadGenesis(cfg.Genesis)
				if err != nil {
					return err
				}
				if err := l.InitState(gen); err != nil {
					return err
				}
				id, err := l.Commit()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "initialized %s at version %d\n", gen.ChainID, id.Version)
				return nil
			})
		},
	}
}

func runCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.json>",
		Short: "Execute all transactions of a scenario file and commit the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := ioutil.ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "read scenario: %s", err)
			}
			scenario, err := app.LoadScenario(app.NewCodec(), raw)
			if err != nil {
				return err
			}
			return withLedger(cmd, v, func(cfg *config, l *app.Ledger) error {
				if l.ChainID() == "" {
					return errors.Wrap(errors.ErrPrecondition, "ledger not initialized, run init first")
				}
				results, err := l.Run(context.Background(), scenario)
				printResults(cmd.OutOrStdout(), results)
				if err != nil {
					return err
				}
				id, err := l.Commit()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "committed version %d\n", id.Version)
				return nil
			})
		},
	}
}

func printResults(w io.Writer, results []app.StepResult) {
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "step %d: failed: %s\n", i, r.Err)
			continue
		}
		fmt.Fprintf(w, "step %d: ok\n", i)
		for _, op := range r.Receipt.Operations {
			fmt.Fprintf(w, "  %s: %s\n", op.Source, op.Operation)
		}
	}
}

func balanceCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Print the native coin balance of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := swapvault.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return withLedger(cmd, v, func(cfg *config, l *app.Ledger) error {
				amount, err := l.Balance(addr)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), amount)
				return nil
			})
		},
	}
}

func swapCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <vault> <hash-lock>",
		Short: "Print the active swap of a vault, given the vault name and a hex hash lock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashLock, err := hex.DecodeString(args[1])
			if err != nil {
				return errors.Wrapf(errors.ErrInput, "hash lock: %s", err)
			}
			return withLedger(cmd, v, func(cfg *config, l *app.Ledger) error {
				c, err := l.Lookup(args[0])
				if err != nil {
					return err
				}
				swap, err := l.Swap(c.Address, hashLock)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "initiator:   %s\n", swap.Initiator)
				fmt.Fprintf(out, "participant: %s\n", swap.Participant)
				fmt.Fprintf(out, "refund_time: %s\n", swap.RefundTime)
				fmt.Fprintf(out, "total:       %d\n", swap.TotalAmount)
				fmt.Fprintf(out, "payoff:      %d\n", swap.PayoffAmount)
				if len(swap.TokenAddress) != 0 {
					fmt.Fprintf(out, "token:       %s #%d\n", swap.TokenAddress, swap.TokenID)
				}
				return nil
			})
		},
	}
}
