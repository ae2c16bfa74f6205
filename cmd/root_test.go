package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkoskela/airboard/cmd/serve"
	"github.com/pkoskela/airboard/cmd/sync"
	"github.com/pkoskela/airboard/internal/config"
	"github.com/pkoskela/airboard/internal/testutil"
)

func TestSyncCmd_MissingAPIKey(t *testing.T) {
	testutil.ResetConfig(t)
	config.AirtableAPIKey = ""

	called := false
	orig := runSync
	runSync = func(opts sync.Options) error {
		called = true
		return nil
	}
	t.Cleanup(func() { runSync = orig })

	cmd := &SyncCmd{}
	err := cmd.Run()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AIRTABLE_API_KEY")
	assert.False(t, called, "sync must not start without an API key")
}

func TestSyncCmd_PassesConfig(t *testing.T) {
	testutil.ResetConfig(t)
	config.AirtableAPIKey = "patTESTKEY"
	config.BaseID = "appTESTBASE"
	config.Tables = []string{"AA1 Applications"}
	config.DBFile = "./test.db"

	var got sync.Options
	orig := runSync
	runSync = func(opts sync.Options) error {
		got = opts
		return nil
	}
	t.Cleanup(func() { runSync = orig })

	cmd := &SyncCmd{}
	require.NoError(t, cmd.Run())

	assert.Equal(t, "patTESTKEY", got.APIKey)
	assert.Equal(t, "appTESTBASE", got.BaseID)
	assert.Equal(t, []string{"AA1 Applications"}, got.Tables)
	assert.Equal(t, "./test.db", got.DBFile)
}

func TestServeCmd_PassesConfig(t *testing.T) {
	testutil.ResetConfig(t)
	config.DBFile = "./test.db"
	config.ListenAddr = "127.0.0.1:8050"

	var got serve.Options
	orig := runServe
	runServe = func(opts serve.Options) error {
		got = opts
		return errors.New("listener stopped")
	}
	t.Cleanup(func() { runServe = orig })

	cmd := &ServeCmd{}
	err := cmd.Run()

	require.Error(t, err)
	assert.Equal(t, "./test.db", got.DBFile)
	assert.Equal(t, "127.0.0.1:8050", got.ListenAddr)
}

func TestUpdateGlobalConfig(t *testing.T) {
	testutil.ResetConfig(t)
	config.InitConfig()

	cli := &CLI{DB: "./elsewhere.db"}
	cli.Serve.Listen = "127.0.0.1:9999"
	updateGlobalConfig(cli)

	assert.Equal(t, "./elsewhere.db", config.DBFile)
	assert.Equal(t, "127.0.0.1:9999", config.ListenAddr)
}

func TestUpdateGlobalConfig_EmptyFlagsKeepDefaults(t *testing.T) {
	testutil.ResetConfig(t)
	config.InitConfig()

	updateGlobalConfig(&CLI{})

	assert.Equal(t, config.DefaultDBFile, config.DBFile)
	assert.Equal(t, config.DefaultListenAddr, config.ListenAddr)
}
