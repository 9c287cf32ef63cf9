package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	_ "go-cv-backend/docs" // Important for Swagger
)

// @title           CV Backend API
// @version         1.0
// @description     Profiles, taxonomies, collections and saved filters for collaborator CVs.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

const (
	portFlag        = "port"
	databaseURLFlag = "database-url"
)

// serverFlags override PORT and DATABASE_URL when set. They are registered
// on every command that reads the configuration.
var serverFlags = map[string]cobraflags.Flag{
	portFlag: &cobraflags.StringFlag{
		Name:  portFlag,
		Value: "",
		Usage: "HTTP listen port (overrides PORT)",
	},
	databaseURLFlag: &cobraflags.StringFlag{
		Name:  databaseURLFlag,
		Value: "",
		Usage: "Postgres connection string (overrides DATABASE_URL)",
	},
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cv-backend",
		Short:         "CV and profile management API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newHashPasswordCommand())
	return root
}
