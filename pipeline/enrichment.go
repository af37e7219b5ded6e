package pipeline

// Enrichment carries the fields that have no signal in the raw
// conversation: device, geography, and the simulated ad placement.
type Enrichment struct {
	DeviceType string
	Country    string
	AdMessage  string
	AdCategory string
	AdClicked  bool
}

// Enricher supplies Enrichment values for a new record. Seam for a real
// geo-IP / user-agent / ad-serving integration later.
type Enricher interface {
	Enrich() Enrichment
}

// StaticEnricher returns the same fixed values for every record.
type StaticEnricher struct{}

func (StaticEnricher) Enrich() Enrichment {
	return Enrichment{
		DeviceType: "Web Browser",
		Country:    "United States",
		AdMessage:  "Try our premium AI assistant for advanced features!",
		AdCategory: "AI Tools",
		AdClicked:  false,
	}
}
