package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/treedec/treedec/pkg/cache"
)

func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the decomposition cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			printTitle("Cache")
			printKV("directory", cfg.cacheDir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached decompositions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			fileCache, err := cache.NewFileCache(cfg.cacheDir())
			if err != nil {
				return err
			}
			removed, err := fileCache.Purge()
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("removed %d cached decompositions", removed))
			return nil
		},
	})

	return cmd
}
