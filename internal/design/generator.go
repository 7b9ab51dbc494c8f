// Package design expands a validated brief into the three fixed design
// alternatives. Generation is deterministic: the same constraints always
// yield identical designs.
package design

import (
	"fmt"
	"math"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

// Generator builds the three design alternatives from constraints.
// The variant set is closed: eco-efficient, carbon-optimized, regenerative.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate returns exactly three designs, one per variant, regardless of
// priority. Priority influences content, never count.
func (g *Generator) Generate(c api.Constraints) []api.Design {
	return []api.Design{
		g.ecoEfficient(c),
		g.carbonOptimized(c),
		g.regenerative(c),
	}
}

func (g *Generator) ecoEfficient(c api.Constraints) api.Design {
	return api.Design{
		ID:   api.DesignEcoEfficient,
		Name: "Eco-Efficient Design",
		Description: fmt.Sprintf(
			"A %d sq ft sustainable design optimized for energy efficiency. "+
				"Features passive solar design, high-performance insulation, and integrated renewable "+
				"energy infrastructure. Ideal for %s climates with focus on long-term operational sustainability.",
			c.Area, c.Climate),
		Materials:               ecoMaterials(c.Budget, c.Climate),
		KeyFeatures:             ecoFeatures(c.Budget),
		Strategies:              ecoStrategies(c.Climate, c.Priority),
		DesignApproach:          "Performance-first passive systems",
		EstimatedEmbodiedCarbon: embodiedCarbon(c.Area, c.Budget),
		RenewableReady:          true,
	}
}

func (g *Generator) carbonOptimized(c api.Constraints) api.Design {
	emphasis := "lifecycle carbon reduction"
	if c.Priority == api.PriorityMaterials {
		emphasis = "material selection"
	}
	return api.Design{
		ID:   api.DesignCarbonOptimized,
		Name: "Carbon-Optimized Design",
		Description: fmt.Sprintf(
			"A climate-responsive design emphasizing %s. "+
				"Leverages local materials, modular construction, and adaptive systems to minimize embodied "+
				"and operational carbon. Suitable for projects with environmental impact as primary metric.",
			emphasis),
		Materials:      carbonMaterials(c.Budget),
		KeyFeatures:    carbonFeatures(),
		Strategies:     carbonStrategies(c.Priority),
		DesignApproach: "Circular economy with material transparency",
		// Lower embodied impact is simulated with a discounted budget figure.
		EstimatedEmbodiedCarbon: embodiedCarbon(c.Area, c.Budget*0.8),
		ModularDesign:           true,
	}
}

func (g *Generator) regenerative(c api.Constraints) api.Design {
	return api.Design{
		ID:   api.DesignRegenerative,
		Name: "Regenerative Design",
		Description: "A holistic design that goes beyond sustainability to create positive environmental impact. " +
			"Integrates water management, biodiversity support, and community resilience. " +
			"Combines traditional ecological wisdom with modern sustainable principles.",
		Materials:               regenerativeMaterials(c.Budget),
		KeyFeatures:             regenerativeFeatures(c.Area),
		Strategies:              regenerativeStrategies(),
		DesignApproach:          "Net-positive environmental systems",
		EstimatedEmbodiedCarbon: embodiedCarbon(c.Area, c.Budget*0.9),
		BiodiversityPositive:    true,
	}
}

// Material selection: budget/climate-conditioned base lists with additive
// extensions above fixed thresholds.

func ecoMaterials(budget float64, climate api.Climate) []string {
	materials := []string{"Cross-laminated timber", "Recycled steel", "Cork insulation", "Bamboo flooring"}

	if budget > 70 {
		materials = append(materials, "Triple-glazed windows", "Premium insulation")
	}

	switch climate {
	case api.ClimateCold:
		materials = append(materials, "High-R-value insulation")
	case api.ClimateHot:
		materials = append(materials, "Thermal mass concrete")
	}
	return materials
}

func carbonMaterials(budget float64) []string {
	materials := []string{"Local stone", "FSC-certified wood", "Low-carbon concrete", "Reclaimed materials"}

	if budget > 60 {
		materials = append(materials, "Recycled aggregates")
	}
	return materials
}

func regenerativeMaterials(budget float64) []string {
	materials := []string{"Living materials", "Mycelium composites", "Hempcrete", "Salvaged materials"}

	if budget > 65 {
		materials = append(materials, "Bioengineered materials", "Plant-based alternatives")
	}
	return materials
}

// Strategy selection: climate+priority-conditioned fixed lists.

func ecoStrategies(climate api.Climate, priority api.Priority) []string {
	strategies := []string{"daylighting-optimization", "energy-efficient-systems", "thermal-comfort"}

	switch priority {
	case api.PriorityEnergy:
		strategies = append(strategies, "high-efficiency-hvac", "renewable-ready", "smart-controls")
	case api.PriorityWater:
		strategies = append(strategies, "water-efficient-fixtures", "rainwater-harvesting")
	}

	switch climate {
	case api.ClimateHot:
		strategies = append(strategies, "passive-cooling", "thermal-mass")
	case api.ClimateCold:
		strategies = append(strategies, "heat-recovery", "passive-solar-gain")
	}
	return strategies
}

func carbonStrategies(priority api.Priority) []string {
	strategies := []string{"embodied-carbon-reduction", "material-transparency", "modular-design"}

	if priority == api.PriorityMaterials {
		strategies = append(strategies, "lifecycle-optimization", "zero-waste-capable")
	}
	return strategies
}

func regenerativeStrategies() []string {
	return []string{"regenerative-systems", "biodiversity-integration", "water-positive-design", "community-resilience"}
}

// Feature selection: area/budget-conditioned fixed lists.

func ecoFeatures(budget float64) []string {
	features := []string{
		"Triple-glazed windows for thermal performance",
		"Heat recovery ventilation system",
		"High thermal mass for temperature stability",
		"Native landscaping for water conservation",
	}

	if budget > 70 {
		features = append(features, "Solar panel ready infrastructure")
	}
	return features
}

func carbonFeatures() []string {
	return []string{
		"Modular construction for flexibility",
		"Material passport tracking",
		"Carbon-neutral production goal",
		"Adaptive thermal mass design",
	}
}

func regenerativeFeatures(area int) []string {
	features := []string{
		"Integrated habitat zones",
		"Managed aquifer recharge systems",
		"Urban agriculture opportunities",
		"Natural ventilation and daylighting",
	}

	if area > 1200 {
		features = append(features, "On-site water recycling systems")
	}
	return features
}

// embodiedCarbon estimates embodied carbon in kg CO2e per sq ft.
// Higher budgets buy lower-carbon materials; small buildings use material
// less efficiently.
func embodiedCarbon(area int, budget float64) float64 {
	const baseIntensity = 25.0

	budgetFactor := 1.0 - (budget / 100 * 0.3)
	areaFactor := 1.2
	if area > 1000 {
		areaFactor = 1.0
	}

	return math.Round(baseIntensity*budgetFactor*areaFactor*100) / 100
}
