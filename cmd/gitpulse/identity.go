package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alimgiray/gitpulse/internal/identity"
	"github.com/alimgiray/gitpulse/pkg/config"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Manage developer identity mappings and exclusions for a repository",
}

var identityAddCmd = &cobra.Command{
	Use:   "add <repo> <name-or-email> <canonical>",
	Short: "Map an author name or email onto a canonical identity",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := identity.NewStore(config.AppConfig.Store.ConfigDir)
		if err := store.AddMapping(args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("Mapped %q to %q\n", args[1], args[2])
		return nil
	},
}

var identityRemoveCmd = &cobra.Command{
	Use:   "remove <repo> <name-or-email>",
	Short: "Remove an identity mapping",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := identity.NewStore(config.AppConfig.Store.ConfigDir)
		if err := store.RemoveMapping(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Removed mapping for %q\n", args[1])
		return nil
	},
}

var identityListCmd = &cobra.Command{
	Use:   "list <repo>",
	Short: "List identity mappings and exclusions for a repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := identity.NewStore(config.AppConfig.Store.ConfigDir)
		mappings := store.Load(args[0])

		if mappings.IsEmpty() {
			fmt.Printf("No identity mappings for %s\n", args[0])
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

		if len(mappings.Emails) > 0 {
			fmt.Fprintln(w, "EMAIL\tCANONICAL")
			for _, email := range sortedKeys(mappings.Emails) {
				fmt.Fprintf(w, "%s\t%s\n", email, mappings.Emails[email])
			}
			fmt.Fprintln(w)
		}

		if len(mappings.Names) > 0 {
			fmt.Fprintln(w, "NAME\tCANONICAL")
			for _, name := range sortedKeys(mappings.Names) {
				fmt.Fprintf(w, "%s\t%s\n", name, mappings.Names[name])
			}
			fmt.Fprintln(w)
		}

		if len(mappings.Excluded) > 0 {
			fmt.Fprintln(w, "EXCLUDED")
			for _, entry := range mappings.Excluded {
				fmt.Fprintf(w, "%s\n", entry)
			}
			fmt.Fprintln(w)
		}

		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("Stored in %s\n", store.FilePath(args[0]))
		return nil
	},
}

var identityExcludeCmd = &cobra.Command{
	Use:   "exclude <repo> <name-or-email>",
	Short: "Exclude a developer from statistics",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := identity.NewStore(config.AppConfig.Store.ConfigDir)
		if err := store.Exclude(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Excluded %q\n", args[1])
		return nil
	},
}

var identityIncludeCmd = &cobra.Command{
	Use:   "include <repo> <name-or-email>",
	Short: "Remove a developer from the exclusion list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := identity.NewStore(config.AppConfig.Store.ConfigDir)
		if err := store.Include(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Included %q\n", args[1])
		return nil
	},
}

func init() {
	identityCmd.AddCommand(identityAddCmd)
	identityCmd.AddCommand(identityRemoveCmd)
	identityCmd.AddCommand(identityListCmd)
	identityCmd.AddCommand(identityExcludeCmd)
	identityCmd.AddCommand(identityIncludeCmd)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
