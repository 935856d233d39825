package state

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-almanac/internal/ephem"
)

// SnapshotExport is the JSON-serializable representation of a snapshot.
type SnapshotExport struct {
	Time      time.Time       `json:"time"`
	Latitude  float64         `json:"latitude_deg"`
	Longitude float64         `json:"longitude_deg"`
	AltitudeM float64         `json:"altitude_m"`
	Ellipsoid string          `json:"ellipsoid"`
	Bodies    []BodyExport    `json:"bodies"`
	Twilight  *TwilightExport `json:"twilight,omitempty"`
}

// BodyExport is a JSON-friendly body row.
type BodyExport struct {
	Name        string  `json:"name"`
	RAHours     float64 `json:"ra_hours"`
	DecDeg      float64 `json:"dec_deg"`
	AzDeg       float64 `json:"az_deg"`
	AltDeg      float64 `json:"alt_deg"`
	DistanceAU  float64 `json:"distance_au"`
	DistanceKm  float64 `json:"distance_km"`
	Magnitude   float64 `json:"magnitude"`
	Illuminated float64 `json:"illuminated,omitempty"`
	Phase       string  `json:"phase,omitempty"`
	SubLatDeg   float64 `json:"sub_lat_deg"`
	SubLonDeg   float64 `json:"sub_lon_deg"`
	GroundKm    float64 `json:"ground_range_km"`
	Rise        string  `json:"rise,omitempty"`
	Transit     string  `json:"transit,omitempty"`
	Set         string  `json:"set,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// TwilightExport is a JSON-friendly twilight block.
type TwilightExport struct {
	CivilDawn        string `json:"civil_dawn,omitempty"`
	CivilDusk        string `json:"civil_dusk,omitempty"`
	NauticalDawn     string `json:"nautical_dawn,omitempty"`
	NauticalDusk     string `json:"nautical_dusk,omitempty"`
	AstronomicalDawn string `json:"astronomical_dawn,omitempty"`
	AstronomicalDusk string `json:"astronomical_dusk,omitempty"`
}

// ExportSnapshot converts a snapshot to its exportable form.
func ExportSnapshot(snap Snapshot) *SnapshotExport {
	export := &SnapshotExport{
		Time:      snap.Time,
		Latitude:  degrees(snap.Observer.Lat),
		Longitude: degrees(snap.Observer.Lon),
		AltitudeM: snap.AltitudeM,
		Ellipsoid: snap.Ellipsoid,
		Bodies:    make([]BodyExport, 0, len(snap.Rows)),
	}

	for _, row := range snap.Rows {
		b := BodyExport{
			Name:        row.Name,
			RAHours:     row.RAHours,
			DecDeg:      row.DecDeg,
			AzDeg:       row.AzDeg,
			AltDeg:      row.AltDeg,
			DistanceAU:  row.DistanceAU,
			DistanceKm:  row.DistanceKm,
			Magnitude:   row.Magnitude,
			Illuminated: row.Illuminated,
			Phase:       row.PhaseName,
			SubLatDeg:   row.SubLatDeg,
			SubLonDeg:   row.SubLonDeg,
			GroundKm:    row.GroundRange.Kilometers(),
			Rise:        exportEvent(row.Rise),
			Transit:     exportEvent(row.Transit),
			Set:         exportEvent(row.Set),
			Error:       row.Err,
		}
		if row.Kind == ephem.KindSun {
			b.Illuminated = 0
		}
		export.Bodies = append(export.Bodies, b)
	}

	export.Twilight = &TwilightExport{
		CivilDawn:        exportEvent(snap.Twilight.CivilDawn),
		CivilDusk:        exportEvent(snap.Twilight.CivilDusk),
		NauticalDawn:     exportEvent(snap.Twilight.NauticalDawn),
		NauticalDusk:     exportEvent(snap.Twilight.NauticalDusk),
		AstronomicalDawn: exportEvent(snap.Twilight.AstronomicalDawn),
		AstronomicalDusk: exportEvent(snap.Twilight.AstronomicalDusk),
	}

	return export
}

func exportEvent(e Event) string {
	if !e.OK {
		return e.Note
	}
	return e.At.UTC().Format(time.RFC3339)
}

// WriteJSON writes the export as indented JSON.
func (e *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
