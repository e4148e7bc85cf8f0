package config

// SourceFileExt is the canonical source file extension.
const SourceFileExt = ".smod"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".smod", ".sysmod"}

// ScopeSeparator separates segments of a qualified name.
const ScopeSeparator = "::"

// LibraryEnvVar names the environment variable pointing at the standard
// library directory. Absence of the library is a degraded state, not an
// error: implicit supertypes and builtin function names simply fail to
// resolve.
const LibraryEnvVar = "SYSMOD_LIBRARY"

// LibraryManifestName is the manifest file expected at the library root.
const LibraryManifestName = "library.yaml"

// LibraryCacheName is the optional sqlite index cache stored next to the
// manifest.
const LibraryCacheName = "library-index.db"

// Well-known library element names used by the implicit generalization
// tables and the evaluator's operator dispatch.
const (
	AnythingName        = "Base::Anything"
	ThingsName          = "Base::things"
	DataValueName       = "Base::DataValue"
	DataValuesName      = "Base::dataValues"
	OccurrenceName      = "Occurrences::Occurrence"
	OccurrencesName     = "Occurrences::occurrences"
	SuboccurrencesName  = "Occurrences::suboccurrences"
	ObjectName          = "Objects::Object"
	ObjectsName         = "Objects::objects"
	SubobjectsName      = "Objects::subobjects"
	LinkName            = "Links::Link"
	BinaryLinkName      = "Links::BinaryLink"
	LinkObjectName      = "Objects::LinkObject"
	ParticipantName     = "Links::Participation::participant"
	PerformanceName     = "Performances::Performance"
	PerformancesName    = "Performances::performances"
	SubperformancesName = "Performances::subperformances"
	EvaluationName      = "Performances::Evaluation"
	EvaluationsName     = "Performances::evaluations"
)
