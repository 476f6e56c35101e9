package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer generates cache keys. Implementations must be deterministic.
type Keyer interface {
	// SolveKey identifies the structures enumerated for a formula.
	SolveKey(formula string, opts SolveKeyOpts) string

	// ArtifactKey identifies a rendering of one structure.
	ArtifactKey(structureHash string, opts ArtifactKeyOpts) string
}

// SolveKeyOpts holds the solver options that change the result set.
type SolveKeyOpts struct {
	Mode         string `json:"mode"`
	MaxIonCharge int    `json:"max_ion_charge"`
	Limit        int    `json:"limit"`
}

// ArtifactKeyOpts holds the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Size     float64 `json:"size"`
	Detailed bool    `json:"detailed,omitempty"`
}

// keyVersion is mixed into every key. Bump it when the cached encoding of
// structures or artifacts changes so stale entries are never decoded.
const keyVersion = 2

// DefaultKeyer produces "solve:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolveKey hashes the formula together with opts.
func (DefaultKeyer) SolveKey(formula string, opts SolveKeyOpts) string {
	return "solve:" + digest(struct {
		V       int          `json:"v"`
		Formula string       `json:"formula"`
		Opts    SolveKeyOpts `json:"opts"`
	}{keyVersion, formula, opts})
}

// ArtifactKey hashes the structure hash together with opts.
func (DefaultKeyer) ArtifactKey(structureHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + digest(struct {
		V         int             `json:"v"`
		Structure string          `json:"structure"`
		Opts      ArtifactKeyOpts `json:"opts"`
	}{keyVersion, structureHash, opts})
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of data. The runner uses it to identify a
// serialized structure.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digest hashes the JSON encoding of v. Key structs hold only strings,
// numbers and booleans, so encoding cannot fail.
func digest(v any) string {
	data, _ := json.Marshal(v)
	return Hash(data)
}
