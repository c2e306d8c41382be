package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/panelgrid/internal/model"
)

// documentRegion is one entry of a JSON or TOML arrangement document.
type documentRegion struct {
	ID     string  `json:"id" toml:"id"`
	Label  string  `json:"label" toml:"label"`
	Left   float64 `json:"left" toml:"left"`
	Top    float64 `json:"top" toml:"top"`
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// document is the top level of a JSON or TOML arrangement:
//
//	[[regions]]
//	label = "Left"
//	left = 0.0
//	top = 0.0
//	width = 0.5
//	height = 1.0
type document struct {
	Regions []documentRegion `json:"regions" toml:"regions"`
}

// ImportJSON imports regions from a JSON arrangement document.
func ImportJSON(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportJSONBytes(data)
}

// ImportJSONBytes imports regions from JSON content.
func ImportJSONBytes(data []byte) ImportResult {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read JSON: %v", err)}}
	}
	return importDocument(doc)
}

// ImportTOML imports regions from a TOML arrangement document.
func ImportTOML(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportTOMLBytes(data)
}

// ImportTOMLBytes imports regions from TOML content.
func ImportTOMLBytes(data []byte) ImportResult {
	var doc document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read TOML: %v", err)}}
	}
	return importDocument(doc)
}

func importDocument(doc document) ImportResult {
	result := ImportResult{}
	if len(doc.Regions) == 0 {
		result.Errors = append(result.Errors, "Document contains no regions")
		return result
	}

	for i, r := range doc.Regions {
		panel, err := model.NewPanel(model.Point{X: r.Left, Y: r.Top}, r.Height, r.Width)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Region %d: %v", i+1, err))
			continue
		}
		label := r.Label
		if label == "" {
			label = fmt.Sprintf("Panel %d", len(result.Regions)+1)
		}
		region := model.NewRegion(label, panel)
		if r.ID != "" {
			region.ID = r.ID
		}
		result.Regions = append(result.Regions, region)
	}
	return result
}

// MarshalDocument encodes regions in the JSON arrangement document format
// read by ImportJSON.
func MarshalDocument(regions []model.Region) ([]byte, error) {
	doc := document{Regions: make([]documentRegion, len(regions))}
	for i, r := range regions {
		doc.Regions[i] = documentRegion{
			ID:     r.ID,
			Label:  r.Label,
			Left:   r.Panel.Left(),
			Top:    r.Panel.Top(),
			Width:  r.Panel.WidthFactor(),
			Height: r.Panel.HeightFactor(),
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}
