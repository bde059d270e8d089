package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {

	cfg, err := Load(New(""))
	require.NoError(t, err)

	assert.Equal(t, "default_seed_for_testing", cfg.Harness.Seed)
	assert.Equal(t, 3, cfg.Harness.Count)
	assert.Equal(t, 10*time.Second, cfg.Harness.Timeout)
	assert.Equal(t, "reference", cfg.Harness.Candidate)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.Harness.Candidates)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyderive.yaml")
	content := `
harness:
  seed: classroom
  count: 5
  timeout: 2s
  candidate: python
  candidates:
    - name: python
      command: python3
      args: ["solution/python/main.py"]
    - name: go
      command: go
      args: ["run", "solution/go/main.go"]
      dir: /tmp
    - name: cpp
      command: ./main
      dir: solution/cpp
      build: ["g++", "-O2", "-o", "main", "main.cpp"]
      build_timeout: 45s
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(New(path))
	require.NoError(t, err)

	assert.Equal(t, "classroom", cfg.Harness.Seed)
	assert.Equal(t, 5, cfg.Harness.Count)
	assert.Equal(t, 2*time.Second, cfg.Harness.Timeout)
	assert.Equal(t, "python", cfg.Harness.Candidate)
	require.Len(t, cfg.Harness.Candidates, 3)
	assert.Equal(t, []string{"run", "solution/go/main.go"}, cfg.Harness.Candidates[1].Args)
	assert.Equal(t, "/tmp", cfg.Harness.Candidates[1].Dir)
	assert.Empty(t, cfg.Harness.Candidates[1].Build)
	assert.Equal(t, []string{"g++", "-O2", "-o", "main", "main.cpp"}, cfg.Harness.Candidates[2].Build)
	assert.Equal(t, 45*time.Second, cfg.Harness.Candidates[2].BuildTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KEYDERIVE_HARNESS_SEED", "from-env")
	t.Setenv("KEYDERIVE_HARNESS_COUNT", "7")

	cfg, err := Load(New(""))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Harness.Seed)
	assert.Equal(t, 7, cfg.Harness.Count)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative count", Config{Harness: HarnessConfig{Count: -1}}},
		{"negative timeout", Config{Harness: HarnessConfig{Timeout: -time.Second}}},
		{"negative workers", Config{Harness: HarnessConfig{Workers: -2}}},
		{"unnamed candidate", Config{Harness: HarnessConfig{Candidates: []CandidateConfig{{Command: "x"}}}}},
		{"no command", Config{Harness: HarnessConfig{Candidates: []CandidateConfig{{Name: "x"}}}}},
		{"negative build timeout", Config{Harness: HarnessConfig{Candidates: []CandidateConfig{
			{Name: "x", Command: "a", Build: []string{"make"}, BuildTimeout: -time.Second},
		}}}},
		{"build timeout without build", Config{Harness: HarnessConfig{Candidates: []CandidateConfig{
			{Name: "x", Command: "a", BuildTimeout: time.Second},
		}}}},
		{"duplicate", Config{Harness: HarnessConfig{Candidates: []CandidateConfig{
			{Name: "x", Command: "a"}, {Name: "x", Command: "b"},
		}}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Error(t, test.cfg.Validate())
		})
	}

	assert.NoError(t, (&Config{}).Validate())
}
