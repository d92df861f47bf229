package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/storefront/app/providers"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// application builds the kernel for a booted storefront. Local disks are
// served under /storage so image URLs resolve.
func application(sf *providers.Storefront, disk storage.Disk) *app.Application {
	a := app.New().Health(database.Ping).Routes(sf.Routes)
	if local, ok := disk.(interface{ FileServer() http.Handler }); ok {
		a.Files("/storage", local.FileServer())
	}
	return a
}

// storefront serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		sf, disk, cleanup, err := bootStorefront(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		a := application(sf, disk)
		logger.Info("storefront starting", "http_port", config.AppPort(), "grpc_port", config.GRPCPort(), "env", config.AppEnv())
		return a.Serve(ctx, app.ServeOptions{HTTPPort: config.AppPort(), GRPCPort: config.GRPCPort()})
	},
}

// storefront route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		sf, disk, cleanup, err := bootStorefront(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		infos, err := application(sf, disk).RouteTable()
		if err != nil {
			return err
		}

		// Sort by path then method.
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
