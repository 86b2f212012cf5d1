package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ignitedb/ignite/pkg/kv"
	"github.com/ignitedb/ignite/pkg/logger"
	"github.com/spf13/cobra"
)

// notFoundMsg is the literal string spec.md §6's CLI table requires on
// both the get-absent and rm-absent paths.
const notFoundMsg = "Key not found"

// errSilent marks an error whose message has already been written to
// stdout (the not-found case) — main should exit non-zero without
// printing it again to stderr.
var errSilent = errors.New(notFoundMsg)

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "ignite",
		Short:         "A small append-only key-value store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "dir", "", "store directory (defaults to the current working directory)")

	openDB := func() (*kv.DB, error) {
		dir := dataDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			dir = cwd
		}
		return kv.OpenWithLogger(dir, logger.Nop())
	}

	root.AddCommand(newGetCmd(openDB))
	root.AddCommand(newSetCmd(openDB))
	root.AddCommand(newRmCmd(openDB))
	return root
}

func newGetCmd(openDB func() (*kv.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "print the value stored under KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			value, ok, err := db.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), notFoundMsg)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newSetCmd(openDB func() (*kv.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "store VALUE under KEY",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			return db.Set(context.Background(), args[0], args[1])
		},
	}
}

func newRmCmd(openDB func() (*kv.DB, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "rm KEY",
		Short: "remove KEY",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close(context.Background())

			err = db.Delete(context.Background(), args[0])
			if errors.Is(err, kv.ErrKeyNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), notFoundMsg)
				return errSilent
			}
			return err
		},
	}
}
