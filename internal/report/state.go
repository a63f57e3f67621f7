package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/countdown/internal/model"
)

// Output formats accepted by WriteState.
const (
	FormatTableName = "table"
	FormatJSON      = "json"
	FormatYAML      = "yaml"
)

// StateDoc is the exported view of persisted countdown state.
type StateDoc struct {
	Mode          string              `json:"mode" yaml:"mode"`
	Paused        bool                `json:"paused" yaml:"paused"`
	ManualTimeSet *bool               `json:"manualTimeSet" yaml:"manualTimeSet"`
	FontSize      int                 `json:"fontSize" yaml:"fontSize"`
	TimeLeft      model.TimeRemaining `json:"timeLeft" yaml:"timeLeft"`
	TotalSeconds  int64               `json:"totalSeconds" yaml:"totalSeconds"`
	Target        string              `json:"target" yaml:"target"`
}

// NewStateDoc builds a StateDoc from s.
func NewStateDoc(s model.State, target time.Time) StateDoc {
	return StateDoc{
		Mode:          s.Mode.String(),
		Paused:        s.Paused,
		ManualTimeSet: s.ManualTimeSet,
		FontSize:      s.FontSize,
		TimeLeft:      s.Remaining,
		TotalSeconds:  s.Remaining.Total(),
		Target:        target.Format(time.RFC3339),
	}
}

// WriteState writes doc in the requested format. The table format lists the
// raw stored settings.
func WriteState(w io.Writer, format string, doc StateDoc, settings []model.Setting) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatTableName:
		return writeTable(w, settings)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
	}
}

func writeTable(w io.Writer, settings []model.Setting) error {
	if len(settings) == 0 {
		_, err := fmt.Fprintln(w, "No saved state.")
		return err
	}
	rows := make([][]string, 0, len(settings))
	for _, s := range settings {
		rows = append(rows, []string{s.Key, s.Value, s.UpdatedAt.Local().Format("2006-01-02 15:04:05")})
	}
	for _, line := range FormatTable([]string{"Key", "Value", "Updated"}, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
