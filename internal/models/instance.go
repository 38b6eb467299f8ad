// Package models defines the core data structures for parsed architecture
// exports. It includes model, instance and connector entities plus the
// display-metadata records attached to each model.
package models

// InstanceClass enumerates the modeling element kinds an export can place
// inside a model.
type InstanceClass string

const (
	ClassProcess         InstanceClass = "Process"
	ClassAsset           InstanceClass = "Asset"
	ClassPool            InstanceClass = "Pool"
	ClassNote            InstanceClass = "Note"
	ClassExternalActor   InstanceClass = "External Actor"
	ClassProcessSubclass InstanceClass = "Process_Subclass"
	ClassAssetSubclass   InstanceClass = "Asset_Subclass"
)

var subclasses = map[InstanceClass]bool{
	ClassProcessSubclass: true,
	ClassAssetSubclass:   true,
}

// IsSubclass reports whether c is one of the subclass variants. Subclass
// instances are labeled by their name field rather than their denomination.
func (c InstanceClass) IsSubclass() bool {
	return subclasses[c]
}

// ColorPicker selects which background-color source an instance renders with.
type ColorPicker string

const (
	PickerDefault    ColorPicker = "Default"
	PickerIndividual ColorPicker = "Individual"
	PickerSubclass   ColorPicker = "Subclass"
)

// Position is the placement of an instance inside its model. A nil
// *Position means the export carried no parsable position spec.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Index  float64 `json:"index"`
}

// Instance is a single modeling element placed within a model. ID is unique
// within the owning model only.
type Instance struct {
	ID                     string        `json:"id"`
	Class                  InstanceClass `json:"class"`
	Name                   string        `json:"name"`
	Denomination           string        `json:"denomination"`
	ReferencedDenomination string        `json:"referencedDenomination"`
	Description            string        `json:"description"`
	ApplyArchetype         string        `json:"applyArchetype"`
	IsGroup                bool          `json:"isGroup"`
	IsGhost                bool          `json:"isGhost"`
	Position               *Position     `json:"position,omitempty"`
	FontSize               float64       `json:"fontSize"`
	FontStyle              string        `json:"fontStyle"`
	IndividualBGColor      string        `json:"individualBGColor"`
	IndividualGhostBGColor string        `json:"individualGhostBGColor"`
	ReferencedBGColor      string        `json:"referencedBGColor"`
	ReferencedGhostBGColor string        `json:"referencedGhostBGColor"`
	BorderColor            string        `json:"borderColor"`
	ColorPicker            ColorPicker   `json:"colorPicker"`
	Interrefs              *Interrefs    `json:"Interrefs,omitempty"`
}

// DisplayTitle returns the label under which the instance's displayed value
// is presented: Notes show a description, subclass variants a name, and
// everything else a denomination.
func (i Instance) DisplayTitle() string {
	if i.Class == ClassNote {
		return "Description"
	}
	if i.Class.IsSubclass() {
		return "Name"
	}
	return "Denomination"
}

// DisplayValue returns the displayed label text selected by the same class
// branch as DisplayTitle.
func (i Instance) DisplayValue() string {
	if i.Class == ClassNote {
		return i.Description
	}
	if i.Class.IsSubclass() {
		return i.Name
	}
	return i.Denomination
}

// InterrefKind names one of the single-reference slots an instance can
// carry.
type InterrefKind string

const (
	RefAsset         InterrefKind = "Referenced Asset"
	RefProcess       InterrefKind = "Referenced Process"
	RefNote          InterrefKind = "Referenced Note"
	RefPool          InterrefKind = "Referenced Pool"
	RefExternalActor InterrefKind = "Referenced External Actor"
)

// InterrefKinds lists every reference slot in a stable display order.
var InterrefKinds = []InterrefKind{
	RefAsset,
	RefProcess,
	RefNote,
	RefPool,
	RefExternalActor,
}

// Iref points at exactly one object in some model, by the owning model's
// name and the object's name.
type Iref struct {
	TModelName string `json:"tmodelname"`
	TObjName   string `json:"tobjname"`
}

// Interrefs holds the up-to-five single references an instance can carry,
// one per referencable class.
type Interrefs struct {
	Asset         *Iref `json:"referencedAsset,omitempty"`
	Process       *Iref `json:"referencedProcess,omitempty"`
	Note          *Iref `json:"referencedNote,omitempty"`
	Pool          *Iref `json:"referencedPool,omitempty"`
	ExternalActor *Iref `json:"referencedExternalActor,omitempty"`
}

// ByKind returns the reference stored in the slot named by kind, or nil.
func (r *Interrefs) ByKind(kind InterrefKind) *Iref {
	if r == nil {
		return nil
	}
	switch kind {
	case RefAsset:
		return r.Asset
	case RefProcess:
		return r.Process
	case RefNote:
		return r.Note
	case RefPool:
		return r.Pool
	case RefExternalActor:
		return r.ExternalActor
	}
	return nil
}

// InstanceDefaults supplies fallback values for numeric attributes that are
// absent from an export. Keys are sanitized attribute names.
var InstanceDefaults = map[string]float64{
	"fontsize": 10,
	"zoom":     1,
}
