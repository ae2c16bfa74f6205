package config

import (
	"github.com/spf13/viper"
)

// Default values mirror the Accelerate Africa base this tool was built for.
// All of them can be overridden via config.yaml or flags.
const (
	DefaultDBFile     = "./airboard.db"
	DefaultListenAddr = "127.0.0.1:8050"
	DefaultBaseID     = "appfVXnWdI41HoytO"
)

// DefaultTables lists the cohort tables fetched on each sync run, oldest
// cohort first. The first whitespace-separated token of each name becomes
// the row's cohort label.
var DefaultTables = []string{
	"AA1 Application Responses_closed",
	"AA2 Application Responses_closed",
	"AA3 Application Responses_closed",
	"AA4 Application Responses",
}

// Global configuration variables
var (
	// AirtableAPIKey is the bearer token for the Airtable API, from AIRTABLE_API_KEY
	AirtableAPIKey string
	// BaseID is the Airtable base to sync from
	BaseID string
	// Tables are the Airtable tables fetched on each sync run
	Tables []string
	// DBFile is the path to the local SQLite store
	DBFile string
	// ListenAddr is the dashboard listen address
	ListenAddr string
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	viper.SetDefault("dbfile", DefaultDBFile)
	viper.SetDefault("listenaddr", DefaultListenAddr)
	viper.SetDefault("airtable.baseid", DefaultBaseID)
	viper.SetDefault("airtable.tables", DefaultTables)

	AirtableAPIKey = viper.GetString("airtable.apikey")
	BaseID = viper.GetString("airtable.baseid")
	Tables = viper.GetStringSlice("airtable.tables")
	DBFile = viper.GetString("dbfile")
	ListenAddr = viper.GetString("listenaddr")
}

// SetDBFile overrides the store path (CLI flag).
func SetDBFile(path string) {
	if path != "" {
		DBFile = path
	}
}

// SetListenAddr overrides the dashboard listen address (CLI flag).
func SetListenAddr(addr string) {
	if addr != "" {
		ListenAddr = addr
	}
}
