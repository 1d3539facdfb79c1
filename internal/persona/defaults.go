package persona

import _ "embed"

// defaultPersonas is the built-in catalog, overridable at startup via
// MIRA_PERSONA_FILE.
//
//go:embed personas.yaml
var defaultPersonas []byte
