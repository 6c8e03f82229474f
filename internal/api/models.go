package api

import (
	datasetjson "github.com/ckacy01/entropia/dataset/json"
	"github.com/ckacy01/entropia/feature"
	"github.com/ckacy01/entropia/internal/report"
)

// DatasetRequest is the body of POST /api/analyze
type DatasetRequest struct {
	datasetjson.Document
	// Store asks for the dataset to be kept under a new session
	Store bool `json:"store,omitempty"`
}

// GenerateRequest is the body of POST /api/generate
type GenerateRequest struct {
	Class     string         `json:"class"`
	Features  []feature.Spec `json:"features"`
	Instances int            `json:"instances"`
	// Seed is drawn from the clock when absent
	Seed *int64 `json:"seed,omitempty"`
}

// DatasetResponse holds the rows of a dataset in column order
type DatasetResponse struct {
	SessionID string     `json:"sessionId,omitempty"`
	Seed      *int64     `json:"seed,omitempty"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
}

// AnalysisResponse is returned by the analysis endpoints
type AnalysisResponse struct {
	SessionID string          `json:"sessionId,omitempty"`
	Analysis  *report.Summary `json:"analysis"`
}

// ErrorResponse is returned on any failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
