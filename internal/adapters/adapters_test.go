package adapters

import (
	"sort"
	"testing"
)

// constRNG always returns the same draw — useful for pinning Chance/IntN
// behavior without depending on a seeded sequence.
type constRNG float64

func (c constRNG) Float64() float64 { return float64(c) }

func TestIntNRange(t *testing.T) {
	r := NewMathRandRNG(1)
	for i := 0; i < 200; i++ {
		if n := IntN(r, 5); n < 0 || n >= 5 {
			t.Fatalf("IntN(5) returned out-of-range value %d", n)
		}
	}
}

func TestIntNZeroIsAlwaysZero(t *testing.T) {
	if got := IntN(constRNG(0.9), 0); got != 0 {
		t.Errorf("IntN(0) = %d, want 0", got)
	}
}

func TestChanceThreshold(t *testing.T) {
	if !Chance(constRNG(0.1), 0.5) {
		t.Errorf("expected Chance to succeed when the draw is below p")
	}
	if Chance(constRNG(0.9), 0.5) {
		t.Errorf("expected Chance to fail when the draw is above p")
	}
}

func TestShuffleIsAPermutation(t *testing.T) {
	r := NewMathRandRNG(42)
	perm := Shuffle(r, 10)
	if len(perm) != 10 {
		t.Fatalf("expected a permutation of length 10, got %d", len(perm))
	}
	sorted := append([]int(nil), perm...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("Shuffle did not return a permutation of [0,10): %v", perm)
		}
	}
}

func TestShuffleZeroLength(t *testing.T) {
	if perm := Shuffle(NewMathRandRNG(1), 0); len(perm) != 0 {
		t.Errorf("expected an empty permutation for n=0, got %v", perm)
	}
}

func TestSimpleCombatPolicyRollWithinRange(t *testing.T) {
	p := SimpleCombatPolicy{R: NewMathRandRNG(7)}
	for i := 0; i < 50; i++ {
		roll, ok := p.RollDamage(1, 3, 8)
		if !ok {
			t.Fatalf("expected SimpleCombatPolicy to always succeed")
		}
		if roll.Damage < 3 || roll.Damage > 8 {
			t.Fatalf("roll %d out of [3,8] range", roll.Damage)
		}
	}
}

func TestSimpleCombatPolicySwapsInvertedRange(t *testing.T) {
	p := SimpleCombatPolicy{R: constRNG(0)}
	roll, _ := p.RollDamage(1, 8, 3) // min > max
	if roll.Damage != 3 {
		t.Errorf("expected the swapped range's minimum (3) at draw 0, got %d", roll.Damage)
	}
}

func TestSimpleLootGeneratesOnlyKnownKinds(t *testing.T) {
	loot := SimpleLoot{Table: map[string][]Item{
		"bandit": {{ItemID: 1, Name: "dagger", Count: 1}},
	}}
	if got := loot.Generate(LootContext{Kind: "dragon"}, constRNG(0)); got != nil {
		t.Errorf("expected no loot for an unknown kind, got %v", got)
	}
	got := loot.Generate(LootContext{Kind: "bandit"}, constRNG(0))
	if len(got) != 1 || got[0].Name != "dagger" {
		t.Errorf("expected the bandit's dagger to drop at draw 0, got %v", got)
	}
	if got := loot.Generate(LootContext{Kind: "bandit"}, constRNG(0.9)); got != nil {
		t.Errorf("expected no drop at a draw above the 0.5 chance, got %v", got)
	}
}

func TestInViewportMarginExpandsRectangle(t *testing.T) {
	cam := FixedCamera{View: Viewport{X: 0, Y: 0, Width: 100, Height: 100}, PixelsPerTile: 10}
	// tile (11,0) -> pixel (110,0), just outside the 100-wide viewport but
	// within a 2-tile (20px) margin.
	if !InViewport(cam, 10, 11, 0, 2) {
		t.Errorf("expected a tile just past the viewport edge to be inside with margin")
	}
	if InViewport(cam, 10, 20, 0, 2) {
		t.Errorf("expected a tile well past the margin to be outside the viewport")
	}
}

func TestInViewportNilCameraIsFalse(t *testing.T) {
	if InViewport(nil, 10, 0, 0, 2) {
		t.Errorf("expected a nil camera to never report in-viewport")
	}
}

func TestOrNopReturnsNopForNil(t *testing.T) {
	if _, ok := OrNop(nil).(NopLogger); !ok {
		t.Errorf("expected OrNop(nil) to return a NopLogger")
	}
}

func TestNewLuaCombatPolicyMissingDirFallsBackGracefully(t *testing.T) {
	fallback := SimpleCombatPolicy{R: NewMathRandRNG(1)}
	policy, err := NewLuaCombatPolicy("/nonexistent/scripts/dir", nil, fallback)
	if err != nil {
		t.Fatalf("expected a missing scripts directory to not be an error, got %v", err)
	}
	defer policy.Close()
	roll, ok := policy.RollDamage(1, 2, 4)
	if !ok || roll.Damage < 2 || roll.Damage > 4 {
		t.Errorf("expected RollDamage to fall back to the simple policy, got %v ok=%v", roll, ok)
	}
}
