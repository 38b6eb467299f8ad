// Package parser turns raw ADOxml export documents into typed models.
// It handles generic XML decoding, attribute flattening and the defensive
// scalar extraction the export format requires.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/femviewer/core/internal/models"
)

// ErrNoModels reports an export without the required ADOXML.MODELS.MODEL
// chain. This is the only structural failure: everything below that chain
// degrades to defaults instead.
var ErrNoModels = errors.New("export contains no ADOXML.MODELS.MODEL element")

// interrefSlots maps sanitized single-reference names onto their slots.
// "Referened Pool" is a misspelling observed in real exports.
var interrefSlots = map[string]models.InterrefKind{
	"referencedasset":         models.RefAsset,
	"referencedprocess":       models.RefProcess,
	"referencednote":          models.RefNote,
	"referencedpool":          models.RefPool,
	"referenedpool":           models.RefPool,
	"referencedexternalactor": models.RefExternalActor,
}

// Builder converts decoded export nodes into typed models. The logger, when
// set, receives debug telemetry about defaulted fields so that silently
// tolerated gaps in an export stay observable.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a builder that logs field-defaulting telemetry to
// logger. A nil logger disables telemetry.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{log: logger}
}

// Parse is the package-level import entry point without telemetry.
func Parse(data []byte) ([]models.Model, error) {
	return NewBuilder(nil).Parse(data)
}

// Parse decodes an ADOxml export into its models. An empty document or a
// document without the required top-level containers fails outright; any
// missing element below that resolves to an empty collection or default
// value.
func (b *Builder) Parse(data []byte) ([]models.Model, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty export document")
	}

	root, err := DecodeNode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	modelNodes := root.Child("ADOXML").Child("MODELS").Children("MODEL")
	if modelNodes == nil {
		return nil, fmt.Errorf("invalid export: %w", ErrNoModels)
	}

	parsed := make([]models.Model, 0, len(modelNodes))
	for _, n := range modelNodes {
		parsed = append(parsed, b.buildModel(n))
	}
	return parsed, nil
}

func (b *Builder) buildModel(n Node) models.Model {
	instanceNodes := n.Children("INSTANCE")
	connectorNodes := n.Children("CONNECTOR")

	m := models.Model{
		ID:         StrProperty(n, "id"),
		Name:       StrProperty(n, "name"),
		AppLib:     StrProperty(n, "applib"),
		ModelType:  StrProperty(n, "modeltype"),
		Version:    StrProperty(n, "version"),
		LibType:    StrProperty(n, "libtype"),
		Instances:  make([]models.Instance, 0, len(instanceNodes)),
		Connectors: make([]models.Connector, 0, len(connectorNodes)),
		Attributes: b.buildModelAttributes(n.Child("MODELATTRIBUTES")),
	}

	for _, in := range instanceNodes {
		m.Instances = append(m.Instances, b.buildInstance(m.ID, in))
	}
	for _, cn := range connectorNodes {
		m.Connectors = append(m.Connectors, buildConnector(cn))
	}
	return m
}

func (b *Builder) buildInstance(modelID string, n Node) models.Instance {
	attrs := FlattenAttributes(n)

	inst := models.Instance{
		ID:                     StrProperty(n, "id"),
		Class:                  models.InstanceClass(StrProperty(n, "class")),
		Name:                   StrProperty(n, "name"),
		Denomination:           StrAttr(attrs, "denomination"),
		ReferencedDenomination: StrAttr(attrs, "referenceddenomination"),
		Description:            StrAttr(attrs, "description"),
		ApplyArchetype:         StrAttr(attrs, "applyarchetype"),
		IsGroup:                BoolAttr(attrs, "isgroup"),
		IsGhost:                BoolAttr(attrs, "isghost"),
		Position:               ParseInstancePosition(StrAttr(attrs, "position")),
		FontSize:               NumAttr(attrs, "fontsize"),
		FontStyle:              StrAttr(attrs, "fontstyle"),
		IndividualBGColor:      StrAttr(attrs, "individualbackgroundcolor"),
		IndividualGhostBGColor: StrAttr(attrs, "individualghostbackgroundcolor"),
		ReferencedBGColor:      ExtractHexColor(StrAttr(attrs, "referencedcolor")),
		ReferencedGhostBGColor: ExtractHexColor(StrAttr(attrs, "referencedghostcolor")),
		BorderColor:            StrAttr(attrs, "bordercolor"),
		ColorPicker:            models.ColorPicker(StrAttr(attrs, "colorpicker")),
		Interrefs:              buildInterrefs(n),
	}

	if inst.Position == nil && b.log != nil {
		b.log.Debug("instance position defaulted to absent",
			"model", modelID, "instance", inst.ID)
	}
	return inst
}

// buildInterrefs collects the single-reference sub-blocks of an instance.
// Nil when the instance carries none.
func buildInterrefs(n Node) *models.Interrefs {
	refs := &models.Interrefs{}
	found := false

	for _, ir := range n.Children("INTERREF") {
		kind, ok := interrefSlots[SanitizeAttrName(StrProperty(ir, "name"))]
		if !ok {
			continue
		}
		iref := ir.Child("IREF")
		if iref == nil {
			continue
		}
		target := &models.Iref{
			TModelName: StrProperty(iref, "tmodelname"),
			TObjName:   StrProperty(iref, "tobjname"),
		}
		switch kind {
		case models.RefAsset:
			refs.Asset = target
		case models.RefProcess:
			refs.Process = target
		case models.RefNote:
			refs.Note = target
		case models.RefPool:
			refs.Pool = target
		case models.RefExternalActor:
			refs.ExternalActor = target
		}
		found = true
	}

	if !found {
		return nil
	}
	return refs
}

func buildConnector(n Node) models.Connector {
	attrs := FlattenAttributes(n)
	return models.Connector{
		ID:          StrProperty(n, "id"),
		Class:       StrProperty(n, "class"),
		FromID:      StrProperty(n.Child("FROM"), "instance"),
		ToID:        StrProperty(n.Child("TO"), "instance"),
		Positions:   StrAttr(attrs, "positions"),
		Appearance:  StrAttr(attrs, "appearance"),
		ProcessType: StrAttr(attrs, "processtype"),
	}
}

// buildModelAttributes reads a model's display metadata. An absent
// MODELATTRIBUTES element degrades to a zero-valued record.
func (b *Builder) buildModelAttributes(n Node) models.ModelAttributes {
	if n == nil {
		if b.log != nil {
			b.log.Debug("model attributes absent, defaulting")
		}
		return models.ModelAttributes{}
	}

	attrs := FlattenAttributes(n)
	f := func(name string) string { return StrAttr(attrs, name) }

	return models.ModelAttributes{
		AccessState: f("accessstate"),
		Colors: models.ClassColors{
			Asset: models.ColorTriple{
				Default: f("assetbackgroundcolor"),
				Group:   f("assetgroupbackgroundcolor"),
				Ghost:   f("assetghostbackgroundcolor"),
			},
			Pool: models.ColorTriple{
				Default: f("poolbackgroundcolor"),
				Group:   f("poolgroupbackgroundcolor"),
				Ghost:   f("poolghostbackgroundcolor"),
			},
			Process: models.ColorTriple{
				Default: f("processbackgroundcolor"),
				Group:   f("processgroupbackgroundcolor"),
				Ghost:   f("processghostbackgroundcolor"),
			},
			Note: models.ColorTriple{
				Default: f("notebackgroundcolor"),
				Group:   f("notegroupbackgroundcolor"),
				Ghost:   f("noteghostbackgroundcolor"),
			},
		},
		Author:                    f("author"),
		BaseName:                  f("basename"),
		ChangeCounter:             NumAttr(attrs, "changecounter"),
		Comment:                   f("comment"),
		ConnectorMarks:            f("connectormarks"),
		ContextOfVersion:          f("contextofversion"),
		CreationDate:              f("creationdate"),
		CurrentMode:               f("currentmode"),
		CurrentPageLayout:         f("currentpagelayout"),
		LastChanged:               f("datelastchanged"),
		Description:               f("description"),
		ExternalActorBGColor:      f("externalactorbackgroundcolor"),
		ExternalActorGhostBGColor: f("externalactorghostbackgroundcolor"),
		ExternalActorGroupBGColor: f("externalactorgroupbackgroundcolor"),
		FontSize:                  NumAttr(attrs, "fontsize"),
		LastUser:                  f("lastuser"),
		ModelType:                 f("modeltype"),
		Position:                  f("position"),
		State:                     f("state"),
		Type:                      f("type"),
		WorldArea:                 ParseWorldArea(f("worldarea")),
		ViewableArea:              f("viewablearea"),
		Zoom:                      NumAttr(attrs, "zoom"),
	}
}

// AttributeCensus counts how often each raw model-attribute name appears
// across the export, before sanitization. Useful for spotting name variants
// that would collide after sanitization.
func AttributeCensus(data []byte) (map[string]int, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty export document")
	}

	root, err := DecodeNode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}

	modelNodes := root.Child("ADOXML").Child("MODELS").Children("MODEL")
	if modelNodes == nil {
		return nil, fmt.Errorf("invalid export: %w", ErrNoModels)
	}

	census := make(map[string]int)
	for _, m := range modelNodes {
		for _, attr := range m.Child("MODELATTRIBUTES").Children("ATTRIBUTE") {
			if name := StrProperty(attr, "name"); name != "" {
				census[name]++
			}
		}
	}
	return census, nil
}
