package predict

import (
	"encoding/json"
	"strconv"
)

// Request is a fully validated, model-ready prediction query. Instances are
// serialized as the fixed ordered pair [intervalCount, tokenIndex] the model
// expects.
type Request struct {
	SignatureName string
	IntervalCount float64
	TokenIndex    int
}

func (r Request) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireRequest{
		SignatureName: r.SignatureName,
		Instances:     [2]json.Number{formatNumber(r.IntervalCount), formatInt(r.TokenIndex)},
	})
}

type wireRequest struct {
	SignatureName string         `json:"signature_name"`
	Instances     [2]json.Number `json:"instances"`
}

type wireResponse struct {
	Predictions []float64 `json:"predictions"`
}

func formatNumber(v float64) json.Number {
	return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
}

func formatInt(v int) json.Number {
	return json.Number(strconv.Itoa(v))
}
