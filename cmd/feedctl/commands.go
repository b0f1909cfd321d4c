package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"greenpatch/internal/feed"
	"greenpatch/internal/models"
	"greenpatch/internal/seed"
	"greenpatch/internal/storage"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type opener func(ctx context.Context) (storage.KV, error)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

func newRootCmd(open opener) *cobra.Command {
	var output string

	root := &cobra.Command{
		Use:   "feedctl",
		Short: "Inspect and manage persisted greenpatch collections",
		Long: `feedctl reads and writes the community feed and marketplace order
collections in the storage backend selected by STORAGE_BACKEND.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if output != outputYAML && output != outputJSON {
				return fmt.Errorf("unsupported output format %q (want yaml or json)", output)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&output, "output", "o", outputYAML, "output format: yaml or json")

	withKV := func(cmd *cobra.Command, fn func(ctx context.Context, kv storage.KV) error) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		kv, err := open(ctx)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer kv.Close(ctx)
		return fn(ctx, kv)
	}

	var sortMode string
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Print the persisted community feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKV(cmd, func(ctx context.Context, kv storage.KV) error {
				posts, _, err := storage.LoadJSON[[]models.Post](ctx, kv, storage.PostsKey)
				if err != nil {
					return err
				}
				if sortMode != "" {
					posts = feed.Sort(posts, feed.ParseSortMode(sortMode))
				}
				return render(cmd.OutOrStdout(), output, posts)
			})
		},
	}
	postsCmd.Flags().StringVar(&sortMode, "sort", "", "sort by hot, new or top (default: stored order)")

	ordersCmd := &cobra.Command{
		Use:   "orders",
		Short: "Print the persisted marketplace orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKV(cmd, func(ctx context.Context, kv storage.KV) error {
				orders, _, err := storage.LoadJSON[[]models.MarketplaceOrder](ctx, kv, storage.OrdersKey)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), output, orders)
			})
		},
	}

	var force bool
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the default feed and an empty order list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKV(cmd, func(ctx context.Context, kv storage.KV) error {
				if !force {
					if _, found, err := kv.Get(ctx, storage.PostsKey); err != nil {
						return err
					} else if found {
						return fmt.Errorf("%s already exists, use --force to overwrite", storage.PostsKey)
					}
				}
				if err := storage.SaveJSON(ctx, kv, storage.PostsKey, seed.Posts()); err != nil {
					return err
				}
				if err := storage.SaveJSON(ctx, kv, storage.OrdersKey, []models.MarketplaceOrder{}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts\n", len(seed.Posts()))
				return nil
			})
		},
	}
	seedCmd.Flags().BoolVar(&force, "force", false, "overwrite existing collections")

	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete both persisted collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withKV(cmd, func(ctx context.Context, kv storage.KV) error {
				for _, key := range []string{storage.PostsKey, storage.OrdersKey} {
					if err := kv.Delete(ctx, key); err != nil {
						return fmt.Errorf("delete %s: %w", key, err)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Collections removed")
				return nil
			})
		},
	}

	root.AddCommand(postsCmd, ordersCmd, seedCmd, resetCmd)
	return root
}

// render writes v in the requested format. YAML keys follow the JSON field
// names so both outputs read the same.
func render(w io.Writer, format string, v interface{}) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(generic)
}
