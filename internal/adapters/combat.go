package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// DamageRoll is the outcome of a single attack resolution.
type DamageRoll struct {
	Damage int
}

// CombatAdapter is the optional combat collaborator a host can plug in for
// hit location, block chance, damage multipliers, crits, equipment decay,
// blood decals, status effects, and injury bookkeeping. The scheduler itself
// only needs a damage roll to drive combat-adjacent role behaviors (guard vs
// bandit, bandit vs civilian) — the rest of that formula set lives entirely
// behind this interface. Every method is best-effort: an adapter that can't
// answer returns ok=false and the caller falls back to a simple damage roll.
type CombatAdapter interface {
	RollDamage(attackerLevel int, min, max int) (DamageRoll, bool)
}

// SimpleCombatPolicy is the deterministic fallback used when no adapter is
// configured: a uniform min..max roll.
type SimpleCombatPolicy struct {
	R RNG
}

func (s SimpleCombatPolicy) RollDamage(_ int, min, max int) (DamageRoll, bool) {
	if max < min {
		min, max = max, min
	}
	span := max - min + 1
	return DamageRoll{Damage: min + IntN(s.R, span)}, true
}

// LuaCombatPolicy calls into Lua scripts the way the reference service's
// scripting.Engine.CalcMeleeAttack does: a missing function or VM error
// degrades to a deterministic fallback rather than propagating.
type LuaCombatPolicy struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback CombatAdapter
}

// NewLuaCombatPolicy loads every .lua file in scriptsDir (non-recursive) and
// wraps fallback for when the script is absent or errors.
func NewLuaCombatPolicy(scriptsDir string, log *zap.Logger, fallback CombatAdapter) (*LuaCombatPolicy, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	entries, err := os.ReadDir(scriptsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return &LuaCombatPolicy{vm: vm, log: log, fallback: fallback}, nil
		}
		vm.Close()
		return nil, fmt.Errorf("read lua scripts dir %s: %w", scriptsDir, err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(scriptsDir, e.Name())
		if err := vm.DoFile(path); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return &LuaCombatPolicy{vm: vm, log: log, fallback: fallback}, nil
}

func (l *LuaCombatPolicy) Close() {
	if l.vm != nil {
		l.vm.Close()
	}
}

// RollDamage calls a global roll_damage(level, min, max) -> number Lua
// function if defined, else defers to the fallback policy.
func (l *LuaCombatPolicy) RollDamage(attackerLevel int, min, max int) (DamageRoll, bool) {
	fn := l.vm.GetGlobal("roll_damage")
	if fn == lua.LNil {
		return l.fallback.RollDamage(attackerLevel, min, max)
	}
	if err := l.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true},
		lua.LNumber(attackerLevel), lua.LNumber(min), lua.LNumber(max)); err != nil {
		l.log.Warn("lua roll_damage failed, using fallback", zap.Error(err))
		return l.fallback.RollDamage(attackerLevel, min, max)
	}
	res := l.vm.Get(-1)
	l.vm.Pop(1)
	n, ok := res.(lua.LNumber)
	if !ok {
		l.log.Warn("lua roll_damage returned non-number, using fallback")
		return l.fallback.RollDamage(attackerLevel, min, max)
	}
	return DamageRoll{Damage: int(n)}, true
}
