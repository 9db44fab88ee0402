package httpapi

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/hamed0406/controlcenter/internal/domain"
)

// statusResponse renders a Snapshot as the /status wire shape:
//
//	{"ok":bool,"generated_at":ts,"services":{name:{...}, ...}}
//
// The services object keeps registry order. encoding/json sorts map
// keys alphabetically, so the object is assembled by hand from the
// ordered result slice.
type statusResponse struct {
	Snap domain.Snapshot
}

type serviceStatus struct {
	OK         bool    `json:"ok"`
	StatusCode int     `json:"status_code,omitempty"`
	LatencyMS  float64 `json:"latency_ms"`
	URL        string  `json:"url"`
	Error      string  `json:"error,omitempty"`
}

func (sr statusResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"ok":`)
	if sr.Snap.OverallOK {
		buf.WriteString("true")
	} else {
		buf.WriteString("false")
	}

	ts, err := json.Marshal(sr.Snap.GeneratedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"generated_at":`)
	buf.Write(ts)

	buf.WriteString(`,"services":{`)
	for i, r := range sr.Snap.Results {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.ServiceName)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(serviceStatus{
			OK:         r.OK,
			StatusCode: r.StatusCode,
			LatencyMS:  r.LatencyMS,
			URL:        r.URL,
			Error:      r.Error,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}
