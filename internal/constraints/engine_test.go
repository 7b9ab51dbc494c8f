package constraints

import (
	"math"
	"strings"
	"testing"

	"github.com/Ishika-Agrawal10/Mini-Project2nd/pkg/api"
)

func rawBrief(area, budget float64, climate, priority string) api.RawConstraints {
	return api.RawConstraints{Area: &area, Budget: &budget, Climate: &climate, Priority: &priority}
}

func TestValidate_AreaBounds(t *testing.T) {
	e := NewEngine()

	cases := []struct {
		area float64
		ok   bool
	}{
		{299, false},
		{300, true},
		{2000, true},
		{2001, false},
	}

	for _, tc := range cases {
		ok, errs := e.Validate(rawBrief(tc.area, 50, "moderate", "energy"))
		if ok != tc.ok {
			t.Errorf("area=%v: ok=%v want=%v (errs=%v)", tc.area, ok, tc.ok, errs)
		}
	}
}

func TestValidate_NonIntegerArea(t *testing.T) {
	e := NewEngine()
	ok, errs := e.Validate(rawBrief(1000.5, 50, "moderate", "energy"))
	if ok {
		t.Fatal("fractional area accepted")
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "integer") {
		t.Fatalf("errs=%v want single integer error", errs)
	}
}

func TestValidate_NaNRejected(t *testing.T) {
	// NaN compares false against both bounds, so the range check alone
	// would let it through.
	e := NewEngine()

	ok, errs := e.Validate(rawBrief(1000, math.NaN(), "moderate", "energy"))
	if ok {
		t.Fatal("NaN budget accepted")
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "Budget must be between") {
		t.Fatalf("errs=%v want single budget bounds error", errs)
	}

	ok, errs = e.Validate(rawBrief(math.NaN(), 50, "moderate", "energy"))
	if ok {
		t.Fatal("NaN area accepted")
	}
	if len(errs) != 1 || !strings.Contains(errs[0], "integer") {
		t.Fatalf("errs=%v want single integer error", errs)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	e := NewEngine()

	// Everything missing: one error per field, in field order.
	ok, errs := e.Validate(api.RawConstraints{})
	if ok {
		t.Fatal("empty brief accepted")
	}
	if len(errs) != 4 {
		t.Fatalf("errs=%d want=4: %v", len(errs), errs)
	}
	wantOrder := []string{"Area", "Budget", "Climate", "Priority"}
	for i, prefix := range wantOrder {
		if !strings.HasPrefix(errs[i], prefix) {
			t.Errorf("errs[%d]=%q want prefix %q", i, errs[i], prefix)
		}
	}

	// Multiple bound violations are all reported.
	ok, errs = e.Validate(rawBrief(100, 150, "arctic", "speed"))
	if ok {
		t.Fatal("invalid brief accepted")
	}
	if len(errs) != 4 {
		t.Fatalf("errs=%d want=4: %v", len(errs), errs)
	}
}

func TestProcess_Categories(t *testing.T) {
	e := NewEngine()

	cases := []struct {
		area   int
		budget float64
		wantAC string
		wantBC string
	}{
		{1500, 50, "large", "medium"},
		{700, 33, "medium", "medium"}, // boundary inclusive on the upper category
		{699, 32, "small", "low"},
		{1299, 67, "medium", "high"},
	}

	for _, tc := range cases {
		pc := e.Process(api.Constraints{Area: tc.area, Budget: tc.budget, Climate: api.ClimateModerate, Priority: api.PriorityEnergy})
		if pc.AreaCategory != tc.wantAC {
			t.Errorf("area=%d category=%q want=%q", tc.area, pc.AreaCategory, tc.wantAC)
		}
		if pc.BudgetCategory != tc.wantBC {
			t.Errorf("budget=%v category=%q want=%q", tc.budget, pc.BudgetCategory, tc.wantBC)
		}
	}
}

func TestProcess_StrategiesAndWeight(t *testing.T) {
	e := NewEngine()

	pc := e.Process(api.Constraints{Area: 1000, Budget: 50, Climate: api.ClimateHot, Priority: api.PriorityMaterials})
	if len(pc.ClimateStrategies) != 4 || pc.ClimateStrategies[0] != "thermal-mass" {
		t.Fatalf("hot strategies=%v", pc.ClimateStrategies)
	}
	if pc.PriorityWeight != 1.2 {
		t.Fatalf("materials weight=%v want=1.2", pc.PriorityWeight)
	}

	pc = e.Process(api.Constraints{Area: 1000, Budget: 50, Climate: api.ClimateCold, Priority: api.PriorityWater})
	if pc.PriorityWeight != 1.3 {
		t.Fatalf("water weight=%v want=1.3", pc.PriorityWeight)
	}
}

func TestCalculateFeasibility(t *testing.T) {
	e := NewEngine()

	cases := []struct {
		area   int
		budget float64
		want   int
	}{
		{1000, 50, 100},
		{1000, 29, 80},  // low budget
		{400, 50, 90},   // tiny area
		{1900, 25, 70},  // both penalties stack
		{1800, 30, 100}, // boundaries are not penalized
	}

	for _, tc := range cases {
		pc := e.Process(api.Constraints{Area: tc.area, Budget: tc.budget, Climate: api.ClimateModerate, Priority: api.PriorityEnergy})
		if got := e.CalculateFeasibility(pc); got != tc.want {
			t.Errorf("area=%d budget=%v feasibility=%d want=%d", tc.area, tc.budget, got, tc.want)
		}
	}
}
