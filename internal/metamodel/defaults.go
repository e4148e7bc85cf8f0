package metamodel

import "github.com/sysmod-lang/sysmod/internal/config"

// Implicit generalization keys. A kind's table maps these short symbolic
// keys to the qualified name of the library element the kind implicitly
// specializes when the matching structural condition holds.
const (
	KeyBase           = "base"
	KeyBinary         = "binary"
	KeyDataValue      = "dataValue"
	KeyOccurrence     = "occurrence"
	KeySuboccurrence  = "suboccurrence"
	KeyObject         = "object"
	KeySubobject      = "subobject"
	KeyParticipant    = "participant"
	KeyPerformance    = "performance"
	KeySubperformance = "subperformance"
	KeyEvaluation     = "evaluation"
)

// implicitTables is the sparse, per-kind declaration of implicit
// generalizations. Subkinds inherit their ancestors' keys and may
// override individual entries.
var implicitTables = map[Kind]map[string]string{
	KClassifier: {
		KeyBase: config.AnythingName,
	},
	KDataType: {
		KeyBase: config.DataValueName,
	},
	KClass: {
		KeyBase: config.OccurrenceName,
	},
	KStructure: {
		KeyBase: config.ObjectName,
	},
	KAssociation: {
		KeyBase:   config.LinkName,
		KeyBinary: config.BinaryLinkName,
	},
	KAssociationStructure: {
		KeyBase: config.LinkObjectName,
	},
	KBehavior: {
		KeyBase: config.PerformanceName,
	},
	KFunction: {
		KeyBase: config.EvaluationName,
	},
	KFeature: {
		KeyBase:           config.ThingsName,
		KeyDataValue:      config.DataValuesName,
		KeyOccurrence:     config.OccurrencesName,
		KeySuboccurrence:  config.SuboccurrencesName,
		KeyObject:         config.ObjectsName,
		KeySubobject:      config.SubobjectsName,
		KeyParticipant:    config.ParticipantName,
		KeyPerformance:    config.PerformancesName,
		KeySubperformance: config.SubperformancesName,
	},
	KStep: {
		KeyBase:           config.PerformancesName,
		KeySubperformance: config.SubperformancesName,
	},
	KExpression: {
		KeyBase: config.EvaluationsName,
	},
}

// DefaultGeneralizations returns the full key table for a kind: the
// overlay of every table on its inheritance chain, most general first so
// specific declarations win. Precomputed once per hierarchy in
// NewDefaults.
type Defaults struct {
	tables map[Kind]map[string]string
}

// NewDefaults expands the sparse implicit tables over the hierarchy.
func NewDefaults(h *Hierarchy) *Defaults {
	tables := make(map[Kind]map[string]string, len(h.Kinds()))
	for _, k := range h.Kinds() {
		chain := h.InheritanceChain(k)
		merged := make(map[string]string)
		for i := len(chain) - 1; i >= 0; i-- {
			for key, name := range implicitTables[chain[i]] {
				merged[key] = name
			}
		}
		tables[k] = merged
	}
	return &Defaults{tables: tables}
}

// Lookup returns the library qualified name declared for (kind, key), or
// "" when the kind has no entry for that key.
func (d *Defaults) Lookup(k Kind, key string) string {
	return d.tables[k][key]
}
