package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/pkoskela/airboard/cmd/serve"
	"github.com/pkoskela/airboard/cmd/sync"
	"github.com/pkoskela/airboard/internal/config"
)

var (
	runSync  = sync.Run
	runServe = serve.Run
)

// CLI represents the complete command structure for the airboard application
type CLI struct {
	// Global flags
	DB string `help:"Path to the SQLite store file" default:""`

	Sync  SyncCmd  `cmd:"" help:"Fetch all Airtable records into the local store, replacing prior contents"`
	Serve ServeCmd `cmd:"" help:"Serve the local dashboard over the synced store"`
}

// SyncCmd represents the sync command
type SyncCmd struct{}

// ServeCmd represents the serve command
type ServeCmd struct {
	Listen string `help:"Dashboard listen address" default:""`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("airboard"),
		kong.Description("Sync Airtable application data into a local SQLite store and browse it on a local dashboard."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// .env first so AIRTABLE_API_KEY can live next to the binary
	_ = godotenv.Load()

	viper.SetDefault("dbfile", config.DefaultDBFile)
	viper.SetDefault("listenaddr", config.DefaultListenAddr)
	viper.SetDefault("airtable.baseid", config.DefaultBaseID)
	viper.SetDefault("airtable.tables", config.DefaultTables)

	viper.AutomaticEnv()
	if err := viper.BindEnv("airtable.apikey", "AIRTABLE_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
		// No config file is fine, built-in defaults cover everything
		// except the API key.
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetDBFile(cli.DB)
	config.SetListenAddr(cli.Serve.Listen)
}

// Run methods for each command

func (s *SyncCmd) Run() error {
	if config.AirtableAPIKey == "" {
		return fmt.Errorf("Airtable API key is required (set the AIRTABLE_API_KEY environment variable or airtable.apikey in config)")
	}

	return runSync(sync.Options{
		APIKey: config.AirtableAPIKey,
		BaseID: config.BaseID,
		Tables: config.Tables,
		DBFile: config.DBFile,
	})
}

func (s *ServeCmd) Run() error {
	return runServe(serve.Options{
		DBFile:     config.DBFile,
		ListenAddr: config.ListenAddr,
	})
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}
