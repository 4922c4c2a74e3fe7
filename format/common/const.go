package common

// Attribute and class names left on rendered math elements by the
// typesetting engine. These are an upstream contract; the pipeline only
// reads them.

const AttrDisplay = "display"
const AttrAnnotation = "data-latex"
const AttrEnvHint = "data-env"
const AttrProtect = "data-tex-protect"

const ClassMathJax = "MathJax"
const ClassProtect = "tex-protect"
const ClassPreview = "MathJax_Preview"

const TagContainer = "mjx-container"
const TagMath = "math"
const TagAnnotation = "annotation"

const ScriptTypeMath = "math/tex"
const ScriptModeDisplay = "mode=display"

const AnnotationEncodingTeX = "application/x-tex"

const metaAttrPrefix = "data-tex-"

// Attributes written by the pipeline itself during the mark phase. They
// never appear in input documents and are stripped from output.
const MetaAttrReplacement = metaAttrPrefix + "replacement"
const MetaAttrParentMark = metaAttrPrefix + "parent"

const (
	EnvEquation   = "equation"
	EnvAlign      = "align"
	EnvAlignStar  = "align*"
	EnvGather     = "gather"
	EnvGatherStar = "gather*"
)
