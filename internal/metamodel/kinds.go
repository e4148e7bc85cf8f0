package metamodel

// Kind names a metamodel element kind. The set is closed: every syntax
// node the core consumes maps to exactly one Kind.
type Kind string

const (
	KElement      Kind = "Element"
	KRelationship Kind = "Relationship"
	KNamespace    Kind = "Namespace"
	KType         Kind = "Type"
	KClassifier   Kind = "Classifier"
	KDataType     Kind = "DataType"
	KClass        Kind = "Class"
	KStructure    Kind = "Structure"
	KAssociation  Kind = "Association"
	KAssociationStructure Kind = "AssociationStructure"
	KBehavior     Kind = "Behavior"
	KFunction     Kind = "Function"
	KPredicate    Kind = "Predicate"
	KFeature      Kind = "Feature"
	KStep         Kind = "Step"
	KExpression   Kind = "Expression"
	KBooleanExpression Kind = "BooleanExpression"
	KConnector    Kind = "Connector"
	KPackage      Kind = "Package"
	KLibraryPackage Kind = "LibraryPackage"
	KMultiplicity Kind = "Multiplicity"
	KMultiplicityRange Kind = "MultiplicityRange"

	KImport            Kind = "Import"
	KMembership        Kind = "Membership"
	KOwningMembership  Kind = "OwningMembership"
	KAlias             Kind = "Alias"
	KSpecialization    Kind = "Specialization"
	KSubclassification Kind = "Subclassification"
	KFeatureTyping     Kind = "FeatureTyping"
	KConjugatedPortTyping Kind = "ConjugatedPortTyping"
	KSubsetting        Kind = "Subsetting"
	KRedefinition      Kind = "Redefinition"
	KReferenceSubsetting Kind = "ReferenceSubsetting"
	KConjugation       Kind = "Conjugation"
	KDisjoining        Kind = "Disjoining"
	KFeatureInverting  Kind = "FeatureInverting"
	KTypeFeaturing     Kind = "TypeFeaturing"
	KDependency        Kind = "Dependency"

	KComment               Kind = "Comment"
	KDocumentation         Kind = "Documentation"
	KTextualRepresentation Kind = "TextualRepresentation"
	KMetadataFeature       Kind = "MetadataFeature"

	KLiteralExpression Kind = "LiteralExpression"
	KLiteralBoolean    Kind = "LiteralBoolean"
	KLiteralInteger    Kind = "LiteralInteger"
	KLiteralRational   Kind = "LiteralRational"
	KLiteralString     Kind = "LiteralString"
	KLiteralInfinity   Kind = "LiteralInfinity"
	KNullExpression    Kind = "NullExpression"
	KInvocationExpression Kind = "InvocationExpression"
	KOperatorExpression   Kind = "OperatorExpression"
	KFeatureChainExpression Kind = "FeatureChainExpression"
	KFeatureReferenceExpression Kind = "FeatureReferenceExpression"
	KMetadataAccessExpression   Kind = "MetadataAccessExpression"
)

// parents declares the direct "is-a" relationships of the metamodel.
// Order matters: it drives the deterministic linearization of ancestor
// chains in the Hierarchy.
var parents = map[Kind][]Kind{
	KElement:      nil,
	KRelationship: {KElement},
	KNamespace:    {KElement},
	KType:         {KNamespace},
	KClassifier:   {KType},
	KDataType:     {KClassifier},
	KClass:        {KClassifier},
	KStructure:    {KClass},
	KAssociation:  {KClassifier, KRelationship},
	KAssociationStructure: {KAssociation, KStructure},
	KBehavior:     {KClass},
	KFunction:     {KBehavior},
	KPredicate:    {KFunction},
	KFeature:      {KType},
	KStep:         {KFeature},
	KExpression:   {KStep},
	KBooleanExpression: {KExpression},
	KConnector:    {KFeature, KRelationship},
	KPackage:      {KNamespace},
	KLibraryPackage: {KPackage},
	KMultiplicity: {KFeature},
	KMultiplicityRange: {KMultiplicity},

	KImport:            {KRelationship},
	KMembership:        {KRelationship},
	KOwningMembership:  {KMembership},
	KAlias:             {KMembership},
	KSpecialization:    {KRelationship},
	KSubclassification: {KSpecialization},
	KFeatureTyping:     {KSpecialization},
	KConjugatedPortTyping: {KFeatureTyping},
	KSubsetting:        {KSpecialization},
	KRedefinition:      {KSubsetting},
	KReferenceSubsetting: {KSubsetting},
	KConjugation:       {KRelationship},
	KDisjoining:        {KRelationship},
	KFeatureInverting:  {KRelationship},
	KTypeFeaturing:     {KRelationship},
	KDependency:        {KRelationship},

	KComment:               {KElement},
	KDocumentation:         {KComment},
	KTextualRepresentation: {KElement},
	KMetadataFeature:       {KFeature},

	KLiteralExpression: {KExpression},
	KLiteralBoolean:    {KLiteralExpression},
	KLiteralInteger:    {KLiteralExpression},
	KLiteralRational:   {KLiteralExpression},
	KLiteralString:     {KLiteralExpression},
	KLiteralInfinity:   {KLiteralExpression},
	KNullExpression:    {KExpression},
	KInvocationExpression: {KExpression},
	KOperatorExpression:   {KInvocationExpression},
	KFeatureChainExpression: {KOperatorExpression},
	KFeatureReferenceExpression: {KExpression},
	KMetadataAccessExpression:   {KExpression},
}
