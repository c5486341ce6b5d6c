// Command storefront serves the shop and manages its database.
//
//	storefront serve
//	storefront migrate
//	storefront migrate:rollback
//	storefront migrate:status
//	storefront seed
//	storefront route:list
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Migrations and seeders register themselves in init().
	_ "github.com/Eswaramoorthy-2004/my-ecom-store/database/migrations"
	_ "github.com/Eswaramoorthy-2004/my-ecom-store/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "My E-Com Store",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
