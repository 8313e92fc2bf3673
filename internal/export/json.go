package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/globalkin/internal/dynamo"
)

type RunInfo struct {
	Network     string  `json:"network"`
	Integrator  string  `json:"integrator"`
	Temperature float64 `json:"temperature"`
	T0          float64 `json:"t0"`
	TEnd        float64 `json:"t_end"`
	Dt          float64 `json:"dt"`
	Guard       string  `json:"guard"`
}

type ExportData struct {
	RunInfo
	Steps         int                `json:"steps"`
	Labels        []string           `json:"labels"`
	Times         []float64          `json:"times"`
	States        [][]float64        `json:"states"`
	Metrics       map[string]float64 `json:"metrics"`
	Degraded      *Degradation       `json:"degraded,omitempty"`
	DegradedCount int                `json:"degraded_count,omitempty"`
}

type Degradation struct {
	Step    int     `json:"step"`
	Time    float64 `json:"time"`
	Species string  `json:"species"`
	Value   float64 `json:"value"`
	Kind    string  `json:"kind"`
}

func newExportData(info RunInfo, result *dynamo.Trajectory) ExportData {
	data := ExportData{
		RunInfo: info,
		Steps:   result.Len(),
		Labels:  result.Labels,
		Times:   result.Times,
		States:  make([][]float64, len(result.States)),
		Metrics: result.Metrics,
	}
	for i, s := range result.States {
		data.States[i] = s
	}
	if d := result.Degraded; d != nil {
		name := ""
		if d.Species >= 0 && d.Species < len(result.Labels) {
			name = result.Labels[d.Species]
		}
		// encoding/json rejects NaN and Inf.
		val := d.Value
		if d.Kind == dynamo.NonFinite {
			val = 0
		}
		data.Degraded = &Degradation{Step: d.Step, Time: d.Time, Species: name, Value: val, Kind: d.Kind.String()}
		data.DegradedCount = result.DegradedCount
	}
	return data
}

func WriteJSON(w io.Writer, info RunInfo, result *dynamo.Trajectory) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(info, result))
}

func ExportJSON(path string, info RunInfo, result *dynamo.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, info, result)
}
