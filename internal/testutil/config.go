package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/pkoskela/airboard/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	AirtableAPIKey string
	BaseID         string
	Tables         []string
	DBFile         string
	ListenAddr     string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		AirtableAPIKey: config.AirtableAPIKey,
		BaseID:         config.BaseID,
		Tables:         append([]string(nil), config.Tables...),
		DBFile:         config.DBFile,
		ListenAddr:     config.ListenAddr,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.AirtableAPIKey = state.AirtableAPIKey
	config.BaseID = state.BaseID
	config.Tables = state.Tables
	config.DBFile = state.DBFile
	config.ListenAddr = state.ListenAddr
}

// ResetConfig saves the current config state, resets viper, and schedules
// restoration when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}
