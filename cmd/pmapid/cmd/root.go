package cmd

import (
	"net/http"
	"os"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/project-mosaic/mosaic/pkg/authz"
	"github.com/project-mosaic/mosaic/pkg/config"
	"github.com/project-mosaic/mosaic/pkg/pmdb"
	"github.com/project-mosaic/mosaic/pkg/pmdb/stor"
	"github.com/spf13/cobra"
)

var dotenvPath string

// rootCmd runs the pmapid API server.
var rootCmd = &cobra.Command{
	Use:   "pmapid",
	Short: "Run the pmapid API server",
	Run: func(cmd *cobra.Command, args []string) {
		config.SetConfig(config.NewDotenvConfig(dotenvPath))
		if err := config.Load(); err != nil {
			log.Fatalf("Unable to load config: %v", err)
		}

		db := pmdb.MustConnectToDB()
		if err := pmdb.RunMigrations(db); err != nil {
			log.Fatalf("Unable to run migrations: %v", err)
		}

		stors := stor.NewGormStors(db)
		authorizer := authz.NewAuthorizer(stors.ProjectStor, stors.TeamStor, stors.TaskStor)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		e.GET("/healthz", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		setupRoutes(e, RouteOpts{
			Stors:      stors,
			Authorizer: authorizer,
		})

		port := config.GetKeyWithDefault("PMAPID_PORT", "1360")
		log.Infof("Starting pmapid on port %s", port)
		if err := e.Start(":" + port); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&dotenvPath, "dotenv", "", "path to a dotenv file (default ~/.mosaic/.env)")
}
