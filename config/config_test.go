package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("explicit values are kept, gaps are defaulted", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: 9090
calendar:
  id: team-calendar@group.calendar.google.com
  search_days_forward: 60
mail:
  host: smtp.example.com
  to: hr@example.com
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "team-calendar@group.calendar.google.com", cfg.Calendar.ID)
		assert.Equal(t, 60, cfg.Calendar.SearchDaysForward)
		assert.Equal(t, "smtp.example.com", cfg.Mail.Host)

		assert.Equal(t, "Asia/Tokyo", cfg.Calendar.Timezone)
		assert.Equal(t, 1, cfg.Calendar.SearchDaysBack)
		assert.Equal(t, "0 9,17 * * *", cfg.Job.Schedule)
		assert.Equal(t, 587, cfg.Mail.Port)
		assert.Equal(t, "【勤怠連絡】", cfg.Mail.SubjectPrefix)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "server: [not a mapping"))
		assert.Error(t, err)
	})
}
