package ops

import "github.com/jmorneau/ladle/internal/units"

// UnitsOutput lists the supported unit aliases per measurement domain,
// sorted alphabetically.
type UnitsOutput struct {
	Volume []string `json:"volume"`
	Weight []string `json:"weight"`
}

// Units reports the unit aliases the converter understands.
func Units() *UnitsOutput {
	supported := units.Supported()
	return &UnitsOutput{
		Volume: supported[units.DomainVolume],
		Weight: supported[units.DomainWeight],
	}
}
