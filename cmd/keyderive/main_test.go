package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/keyderive/internal/vectors"
)

const keyOneHex = "0000000000000000000000000000000000000000000000000000000000000001"

const keyOneOutput = "Compressed PubKey: 0279BE667EF9DCBBAC55A06295CE870B07029BFCDB2DCE28D959F2815B16F81798\n" +
	"WIF: KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn\n" +
	"Address: 1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH\n"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_Derive(t *testing.T) {
	out, err := execute(t, keyOneHex+"\n")
	require.NoError(t, err)
	assert.Equal(t, keyOneOutput, out)
}

func TestRoot_OnlyFirstLineIsUsed(t *testing.T) {
	out, err := execute(t, keyOneHex+"\nnot a key\n")
	require.NoError(t, err)
	assert.Equal(t, keyOneOutput, out)
}

func TestRoot_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"short", keyOneHex[1:]},
		{"non hex", strings.Repeat("zz", 32)},
		{"zero", strings.Repeat("0", 64)},
		{"order", "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := execute(t, test.input)
			assert.Error(t, err)
			assert.Empty(t, out)
		})
	}
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, err := execute(t, keyOneHex, "extra")
	assert.Error(t, err)
}

func TestVectors_Text(t *testing.T) {
	out, err := execute(t, "", "vectors", "--seed", "s", "--count", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	want := vectors.Generate("s", 0)
	assert.Equal(t, want.String(), lines[0])
	for _, line := range lines {
		assert.Len(t, line, 64)
	}
}

func TestVectors_JSON(t *testing.T) {
	out, err := execute(t, "", "vectors", "--count", "3", "--format", "json")
	require.NoError(t, err)

	var entries []vectorEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "Test 1", entries[0].Name)
}

func TestVectors_YAML(t *testing.T) {
	out, err := execute(t, "", "vectors", "--count", "1", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "private_key:")
}

func TestVectors_BadFlags(t *testing.T) {
	_, err := execute(t, "", "vectors", "--format", "xml")
	assert.Error(t, err)

	_, err = execute(t, "", "vectors", "--count", "-1")
	assert.Error(t, err)
}

func TestDecode_WIF(t *testing.T) {
	out, err := execute(t, "", "decode", "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn")
	require.NoError(t, err)
	assert.Contains(t, out, "Type: WIF")
	assert.Contains(t, out, "Private Key: "+keyOneHex)
	assert.Contains(t, out, keyOneOutput)
}

func TestDecode_Address(t *testing.T) {
	out, err := execute(t, "", "decode", "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH")
	require.NoError(t, err)
	assert.Contains(t, out, "Hash160: 751E76E8199196D454941C45D1B3A323F1433BD6")
}

func TestDecode_Invalid(t *testing.T) {
	_, err := execute(t, "", "decode", "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMJ")
	assert.Error(t, err)

	_, err = execute(t, "", "decode", "0OIl")
	assert.Error(t, err)
}

func TestCheck_Reference(t *testing.T) {
	out, err := execute(t, "", "check", "--count", "2", "--seed", "cli")
	require.NoError(t, err)
	assert.Contains(t, out, "RESULTS: 2/2 tests passed")
}

func TestCheck_JSONReport(t *testing.T) {
	out, err := execute(t, "", "check", "--count", "1", "--output", "json")
	require.NoError(t, err)

	var report struct {
		Candidate string `json:"candidate"`
		Total     int    `json:"total"`
		Passed    int    `json:"passed"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "reference", report.Candidate)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Passed)
}

func TestCheck_VectorFile(t *testing.T) {
	out, err := execute(t, "", "check", "--vectors", "../../internal/vectors/testdata/vectors.csv", "--vectors-format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "tests passed")
}

func TestCheck_ConfiguredCandidateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyderive.yaml")
	content := `
harness:
  candidate: broken
  count: 2
  candidates:
    - name: broken
      command: /nonexistent/keyderive-candidate
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, "", "check", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0 of 2 cases passed")
	assert.Contains(t, out, "RESULTS: 0/2 tests passed")
}

func TestCheck_UnknownCandidate(t *testing.T) {
	_, err := execute(t, "", "check", "--candidate", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown candidate")
}

func TestCheck_BuildFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires sh")
	}

	path := filepath.Join(t.TempDir(), "keyderive.yaml")
	content := `
harness:
  candidate: cpp
  count: 2
  candidates:
    - name: cpp
      command: ./main
      build: ["sh", "-c", "echo 'compile error' >&2; exit 1"]
      build_timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, "", "check", "--config", path)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL build_failed")
	assert.Contains(t, out, "compile error")
}
