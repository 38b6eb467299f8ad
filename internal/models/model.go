// Package models defines the core data structures for parsed architecture
// exports. It includes model, instance and connector entities plus the
// display-metadata records attached to each model.
package models

// Model is one architecture diagram's worth of instances, connectors and
// display metadata. ID is the sole join key used by references from other
// models.
type Model struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	AppLib     string          `json:"applib"`
	ModelType  string          `json:"modeltype"`
	Version    string          `json:"version"`
	LibType    string          `json:"libtype"`
	Instances  []Instance      `json:"instances"`
	Connectors []Connector     `json:"connectors"`
	Attributes ModelAttributes `json:"attributes"`
}

// ModelSummary is the tree view of a model: identity only, no contents.
type ModelSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Summary returns the tree entry for m.
func (m Model) Summary() ModelSummary {
	return ModelSummary{ID: m.ID, Name: m.Name}
}

// Connector is a directed edge between two instances of the same model.
// FromID and ToID are instance ids scoped to the owning model; connectors
// never participate in the cross-model reference graph.
type Connector struct {
	ID          string `json:"id"`
	Class       string `json:"class"`
	FromID      string `json:"fromId"`
	ToID        string `json:"toId"`
	Positions   string `json:"positions"`
	Appearance  string `json:"appearance"`
	ProcessType string `json:"processType"`
}

// ColorTriple holds the three background-color variants a class can render
// with inside one model.
type ColorTriple struct {
	Default string `json:"default"`
	Group   string `json:"group"`
	Ghost   string `json:"ghost"`
}

// ClassColors groups the per-class color triples carried in a model's
// attribute block.
type ClassColors struct {
	Asset   ColorTriple `json:"Asset"`
	Pool    ColorTriple `json:"Pool"`
	Process ColorTriple `json:"Process"`
	Note    ColorTriple `json:"Note"`
}

// WorldArea is the drawable rectangle of a model. Nil when the export did
// not carry a parsable world-area attribute.
type WorldArea struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	MinWidth  float64 `json:"minWidth"`
	MinHeight float64 `json:"minHeight"`
}

// ModelAttributes is purely descriptive per-model metadata; it carries no
// identity semantics.
type ModelAttributes struct {
	AccessState               string      `json:"accessState"`
	Colors                    ClassColors `json:"colors"`
	Author                    string      `json:"author"`
	BaseName                  string      `json:"baseName"`
	ChangeCounter             float64     `json:"changeCounter"`
	Comment                   string      `json:"comment"`
	ConnectorMarks            string      `json:"connectorMarks"`
	ContextOfVersion          string      `json:"contextOfVersion"`
	CreationDate              string      `json:"creationDate"`
	CurrentMode               string      `json:"currentMode"`
	CurrentPageLayout         string      `json:"currentPageLayout"`
	LastChanged               string      `json:"lastChanged"`
	Description               string      `json:"description"`
	ExternalActorBGColor      string      `json:"externalActorBGColor"`
	ExternalActorGhostBGColor string      `json:"externalActorGhostBGColor"`
	ExternalActorGroupBGColor string      `json:"externalActorGroupBGColor"`
	FontSize                  float64     `json:"fontSize"`
	LastUser                  string      `json:"lastUser"`
	ModelType                 string      `json:"modelType"`
	Position                  string      `json:"position"`
	State                     string      `json:"state"`
	Type                      string      `json:"type"`
	WorldArea                 *WorldArea  `json:"worldArea,omitempty"`
	ViewableArea              string      `json:"viewableArea"`
	Zoom                      float64     `json:"zoom"`
}

// ReferenceRecord names a single instance that references some target
// instance. Records are recomputed per query and never cached.
type ReferenceRecord struct {
	ReferencedByModel    string `json:"referencedByModel"`
	ReferencedByInstance string `json:"referencedByInstance"`
}
