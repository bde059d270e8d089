package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Report summarises a run.
type Report struct {
	Candidate string          `json:"candidate" yaml:"candidate"`
	Total     int             `json:"total" yaml:"total"`
	Passed    int             `json:"passed" yaml:"passed"`
	Outcomes  map[Outcome]int `json:"outcomes" yaml:"outcomes"`
	Results   []CaseResult    `json:"results" yaml:"results"`
	Elapsed   time.Duration   `json:"elapsed" yaml:"elapsed"`
}

func newReport(candidate string, results []CaseResult, elapsed time.Duration) *Report {
	r := &Report{
		Candidate: candidate,
		Total:     len(results),
		Outcomes:  make(map[Outcome]int),
		Results:   results,
		Elapsed:   elapsed,
	}
	for _, res := range results {
		r.Outcomes[res.Outcome]++
		if res.Passed() {
			r.Passed++
		}
	}
	return r
}

// AllPassed reports whether every case passed.  An empty run does not pass.
func (r *Report) AllPassed() bool {
	return r.Total > 0 && r.Passed == r.Total
}

// Render writes the report in the given format: "text", "json" or "yaml".
func (r *Report) Render(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return r.renderText(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (r *Report) renderText(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Candidate: %s\n", r.Candidate)
	for _, res := range r.Results {
		fmt.Fprintf(&b, "\nTest %d (%s): private key %s...\n", res.Index+1, res.Name, res.KeyPrefix)
		switch res.Outcome {
		case OutcomePassed:
			b.WriteString("  PASS all outputs correct\n")
		case OutcomeMismatch:
			b.WriteString("  FAIL incorrect cryptographic outputs\n")
			if res.Mismatch.PubKey {
				b.WriteString("    - compressed public key incorrect\n")
			}
			if res.Mismatch.WIF {
				b.WriteString("    - WIF private key incorrect\n")
			}
			if res.Mismatch.Address {
				b.WriteString("    - Bitcoin address incorrect\n")
			}
		default:
			fmt.Fprintf(&b, "  FAIL %s: %s\n", res.Outcome, res.Detail)
		}
	}
	fmt.Fprintf(&b, "\nRESULTS: %d/%d tests passed (%s)\n", r.Passed, r.Total, r.Elapsed.Round(time.Millisecond))

	_, err := io.WriteString(w, b.String())
	return err
}
