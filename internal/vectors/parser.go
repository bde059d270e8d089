package vectors

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/mahdiidarabi/keyderive/pkg/keyderive"
)

// Parser defines the interface for loading vectors from various sources.
type Parser interface {
	// ParseVectors parses vectors from a source and returns them.
	ParseVectors(source string) ([]Vector, error)
}

// Fields names the columns/keys a vector file uses.  Empty names fall back to
// the defaults.
type Fields struct {
	Name       string // default: "name"
	PrivateKey string // default: "private_key"
	PubKey     string // default: "pubkey"
	WIF        string // default: "wif"
	Address    string // default: "address"
}

func (f Fields) withDefaults() Fields {
	if f.Name == "" {
		f.Name = "name"
	}
	if f.PrivateKey == "" {
		f.PrivateKey = "private_key"
	}
	if f.PubKey == "" {
		f.PubKey = "pubkey"
	}
	if f.WIF == "" {
		f.WIF = "wif"
	}
	if f.Address == "" {
		f.Address = "address"
	}
	return f
}

// JSONParser parses vectors from JSON files.
type JSONParser struct {
	Fields Fields
}

// ParseVectors parses vectors from a JSON file.
//
// Expected format:
// [
//
//	{"name": "...", "private_key": "0000...0001"},
//	{"private_key": 12345, "pubkey": "02...", "wif": "K...", "address": "1..."}
//
// ]
func (p *JSONParser) ParseVectors(jsonFile string) ([]Vector, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads vectors from r.
func (p *JSONParser) Parse(r io.Reader) ([]Vector, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	fields := p.Fields.withDefaults()
	vectors := make([]Vector, 0, len(items))

	for i, item := range items {
		keyVal, ok := item[fields.PrivateKey]
		if !ok {
			return nil, fmt.Errorf("vector %d: missing %s field", i, fields.PrivateKey)
		}
		key, err := parseKey(keyVal)
		if err != nil {
			return nil, fmt.Errorf("vector %d: failed to parse private key: %w", i, err)
		}

		v := Vector{
			Name:       stringField(item, fields.Name),
			PrivateKey: key,
		}
		if v.Name == "" {
			v.Name = fmt.Sprintf("Vector %d", i+1)
		}

		exp := Expectation{
			PubKey:  stringField(item, fields.PubKey),
			WIF:     stringField(item, fields.WIF),
			Address: stringField(item, fields.Address),
		}
		if exp != (Expectation{}) {
			v.Expected = &exp
		}

		vectors = append(vectors, v)
	}

	return vectors, nil
}

// CSVParser parses vectors from CSV files with a header row.
type CSVParser struct {
	Fields Fields
}

// ParseVectors parses vectors from a CSV file.
func (p *CSVParser) ParseVectors(csvFile string) ([]Vector, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse reads vectors from r.
func (p *CSVParser) Parse(r io.Reader) ([]Vector, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := p.Fields.withDefaults()
	cols := map[string]int{}
	for i, col := range header {
		cols[strings.TrimSpace(col)] = i
	}

	keyIdx, ok := cols[fields.PrivateKey]
	if !ok {
		return nil, fmt.Errorf("missing required column: %s", fields.PrivateKey)
	}

	column := func(record []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	vectors := make([]Vector, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if keyIdx >= len(record) {
			return nil, fmt.Errorf("line %d: private key column index out of range", line)
		}
		key, err := parseKey(record[keyIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: failed to parse private key: %w", line, err)
		}

		v := Vector{
			Name:       column(record, fields.Name),
			PrivateKey: key,
		}
		if v.Name == "" {
			v.Name = fmt.Sprintf("Vector %d", line-1)
		}

		exp := Expectation{
			PubKey:  column(record, fields.PubKey),
			WIF:     column(record, fields.WIF),
			Address: column(record, fields.Address),
		}
		if exp != (Expectation{}) {
			v.Expected = &exp
		}

		vectors = append(vectors, v)
	}

	return vectors, nil
}

// NewParser picks a parser from a format name ("json" or "csv").
func NewParser(format string, fields Fields) (Parser, error) {
	switch strings.ToLower(format) {
	case "json", "":
		return &JSONParser{Fields: fields}, nil
	case "csv":
		return &CSVParser{Fields: fields}, nil
	default:
		return nil, fmt.Errorf("unsupported vector format: %s", format)
	}
}

func stringField(item map[string]interface{}, name string) string {
	s, _ := item[name].(string)
	return strings.TrimSpace(s)
}

// parseKey parses a private key given as 64 hex characters (optionally 0x
// prefixed) or as a decimal integer.
func parseKey(val interface{}) (keyderive.PrivateKey, error) {
	var key keyderive.PrivateKey

	var n *big.Int
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		s = strings.TrimPrefix(s, "0x")
		s = strings.TrimPrefix(s, "0X")

		if len(s) == 2*keyderive.PrivateKeyLen {
			if _, err := hex.DecodeString(s); err == nil {
				k, err := keyderive.ParsePrivateKey(s)
				if err != nil {
					return key, err
				}
				return *k, nil
			}
		}

		n = new(big.Int)
		if _, ok := n.SetString(s, 10); !ok {
			return key, fmt.Errorf("invalid number format: %s", v)
		}

	case json.Number:
		n = new(big.Int)
		if _, ok := n.SetString(string(v), 10); !ok {
			return key, fmt.Errorf("invalid number format: %s", v)
		}

	default:
		return key, fmt.Errorf("unsupported type: %T", val)
	}

	if n.Sign() < 0 || n.BitLen() > 8*keyderive.PrivateKeyLen {
		return key, fmt.Errorf("private key %s does not fit in %d bytes", n, keyderive.PrivateKeyLen)
	}
	k, err := keyderive.ParsePrivateKey(hex.EncodeToString(n.FillBytes(make([]byte, keyderive.PrivateKeyLen))))
	if err != nil {
		return key, err
	}
	return *k, nil
}
