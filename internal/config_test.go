package internal

import (
	"econ-lab/errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{EnvAdminPassword, EnvRestKey, "OTREE_AUTH_LEVEL", "OTREE_PRODUCTION", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func Test_LoadConfig_Reads_Secrets_From_Environment(t *testing.T) {
	req := require.New(t)
	clearEnv(t)
	t.Setenv(EnvRestKey, "signing-key")
	t.Setenv(EnvAdminPassword, "Sup3r$ecretPassword")
	t.Setenv("OTREE_AUTH_LEVEL", "study")

	config, err := LoadConfig("")
	req.NoError(err)
	req.Equal("signing-key", config.RestKey)
	req.Equal("Sup3r$ecretPassword", config.AdminPassword)
	req.Equal(AuthLevelStudy, config.Level())
	req.Equal("INFO", config.LogLevel)
	req.False(config.Production)
}

func Test_LoadConfig_Fails_Without_Signing_Key(t *testing.T) {
	req := require.New(t)
	clearEnv(t)

	_, err := LoadConfig("")
	req.ErrorIs(err, errors.ErrMissingSecret)
	req.ErrorContains(err, EnvRestKey)
}

func Test_LoadConfig_Requires_Admin_Password_When_Protected(t *testing.T) {
	req := require.New(t)
	clearEnv(t)
	t.Setenv(EnvRestKey, "signing-key")
	t.Setenv("OTREE_AUTH_LEVEL", "DEMO")

	_, err := LoadConfig("")
	req.ErrorIs(err, errors.ErrMissingSecret)
	req.ErrorContains(err, EnvAdminPassword)
}

func Test_LoadConfig_Allows_Open_Admin_Without_Password(t *testing.T) {
	req := require.New(t)
	clearEnv(t)
	t.Setenv(EnvRestKey, "signing-key")

	config, err := LoadConfig("")
	req.NoError(err)
	req.Empty(config.AdminPassword)
	req.Equal(AuthLevelNone, config.Level())
}

func Test_LoadConfig_Rejects_Unknown_Auth_Level(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRestKey, "signing-key")
	t.Setenv("OTREE_AUTH_LEVEL", "PUBLIC")

	_, err := LoadConfig("")
	require.ErrorIs(t, err, errors.ErrInvalidAuthLevel)
}

func Test_LoadSecretsFile_Does_Not_Override_Environment(t *testing.T) {
	req := require.New(t)
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.env")
	content := "OTREE_REST_KEY=from-file\nOTREE_ADMIN_PASSWORD=file-password\n"
	req.NoError(os.WriteFile(path, []byte(content), 0o600))
	t.Setenv(EnvAdminPassword, "from-env")

	config, err := LoadConfig(path)
	req.NoError(err)
	req.Equal("from-file", config.RestKey)
	req.Equal("from-env", config.AdminPassword)
}

func Test_LoadSecretsFile_Ignores_Missing_File(t *testing.T) {
	err := LoadSecretsFile(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
}
