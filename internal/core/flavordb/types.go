package flavordb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID 遠端化合物編號，FlavorDB 可能回傳數字或字串
type ID string

// UnmarshalJSON 同時接受數字與字串
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid compound id %s", string(data))
	}
	*id = ID(n.String())
	return nil
}

// Compound FlavorDB 化合物資料
type Compound struct {
	ID                ID       `json:"id"`
	PubchemID         ID       `json:"pubchemId,omitempty"`
	Name              string   `json:"name"`
	CommonName        string   `json:"commonName,omitempty"`
	CASNumber         string   `json:"casNumber,omitempty"`
	MolecularWeight   float64  `json:"molecularWeight,omitempty"`
	Description       string   `json:"description,omitempty"`
	FunctionalGroups  []string `json:"functionalGroups,omitempty"`
	FlavorProfile     []string `json:"flavorProfile,omitempty"`
	NaturalSource     []string `json:"naturalSource,omitempty"`
	Category          string   `json:"category,omitempty"`
	HBDCount          int      `json:"hbdCount,omitempty"`
	HBACount          int      `json:"hbaCount,omitempty"`
	ALogP             float64  `json:"alogp,omitempty"`
	TasteThreshold    string   `json:"tasteThreshold,omitempty"`
	AromaThreshold    string   `json:"aromaThresholdValues,omitempty"`
	HeavyAtomCount    int      `json:"heavyAtomCount,omitempty"`
	TopologicalPSA    float64  `json:"topologicalPolarSurfaceArea,omitempty"`
	NumberOfAtoms     int      `json:"numberOfAtoms,omitempty"`
	RotatableBonds    int      `json:"rotatableBonds,omitempty"`
	AromaticRings     int      `json:"aromaticRings,omitempty"`
	EntityAliasesText []string `json:"entityAliasReadable,omitempty"`
}
