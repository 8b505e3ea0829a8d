package output

import (
	"encoding/json"

	"github.com/SanCognition/reap/internal/purge"
	"github.com/SanCognition/reap/pkg/model"
)

func ToJSON(r model.Report) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

type attemptJSON struct {
	PID     int    `json:"pid"`
	Child   bool   `json:"child,omitempty"`
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

type purgeJSON struct {
	Killed   int           `json:"killed"`
	Failed   int           `json:"failed"`
	Attempts []attemptJSON `json:"attempts,omitempty"`
}

// PurgeJSON renders a purge outcome as JSON, one entry per kill attempt.
func PurgeJSON(s purge.Summary, attempts []purge.Attempt) (string, error) {
	doc := purgeJSON{Killed: s.Killed, Failed: s.Failed}
	for _, a := range attempts {
		aj := attemptJSON{PID: a.PID, Child: a.Child, Outcome: a.Outcome.String()}
		if a.Err != nil {
			aj.Error = a.Err.Error()
		}
		doc.Attempts = append(doc.Attempts, aj)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}
