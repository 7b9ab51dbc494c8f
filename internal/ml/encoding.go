package ml

import "github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"

// Ordinal codes for the categorical constraint fields. Unknown values map
// to the middle code so a malformed record degrades to "moderate" rather
// than skewing toward an extreme.
var climateCodes = map[api.Climate]float64{
	api.ClimateCold:     0,
	api.ClimateModerate: 1,
	api.ClimateHot:      2,
}

var priorityCodes = map[api.Priority]float64{
	api.PriorityEnergy:    0,
	api.PriorityWater:     1,
	api.PriorityMaterials: 2,
}

// Carbon is scored, not ordinal: Low is best. Anything other than Low or
// Medium scores zero, High included.
var carbonValues = map[api.CarbonLevel]float64{
	api.CarbonLow:    1.0,
	api.CarbonMedium: 0.5,
	api.CarbonHigh:   0.0,
}

func climateCode(c api.Climate) float64 {
	if v, ok := climateCodes[c]; ok {
		return v
	}
	return 1
}

func priorityCode(p api.Priority) float64 {
	if v, ok := priorityCodes[p]; ok {
		return v
	}
	return 1
}

func carbonValue(l api.CarbonLevel) float64 {
	return carbonValues[l]
}
