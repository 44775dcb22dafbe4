package colormode

// Lookup produces a mode from one signal source. ok reports whether the
// source had a usable value; absence moves resolution to the next
// branch. A nil Lookup reads as permanently absent.
type Lookup func() (Mode, bool)

// Resolve runs the priority order over the configured signals:
//
//  1. UseSystem forces the system preference. When the platform cannot
//     report one, the declared initial applies, with a literal system
//     counting as light.
//  2. A runtime marker from an earlier bootstrap or set wins next.
//  3. Then a persisted choice.
//  4. Then a declared system initial resolves the system preference,
//     light when absent.
//  5. Otherwise the declared literal.
//
// The ordering is a product decision: the forced-system flag outranks a
// persisted choice, and a persisted choice outranks the declared
// default. Which branch fires first wins even when two sources agree.
//
// Bootstrap generation, per-request resolution, and the engine all call
// through here so their outcomes cannot drift apart.
func Resolve(cfg Config, marker, stored, system Lookup) Resolution {
	if cfg.UseSystem {
		if m, ok := system.value(); ok {
			return Resolution{Mode: m, Source: SourceSystem}
		}
		return Resolution{Mode: initialFallback(cfg.Initial), Source: SourceDefault}
	}

	if m, ok := marker.value(); ok {
		return Resolution{Mode: m, Source: SourceMarker}
	}

	if m, ok := stored.value(); ok {
		return Resolution{Mode: m, Source: SourceStored}
	}

	if cfg.Initial == InitialSystem {
		if m, ok := system.value(); ok {
			return Resolution{Mode: m, Source: SourceSystem}
		}
		return Resolution{Mode: ModeLight, Source: SourceDefault}
	}

	return Resolution{Mode: initialFallback(cfg.Initial), Source: SourceDefault}
}

func (l Lookup) value() (Mode, bool) {
	if l == nil {
		return "", false
	}
	return l()
}

// initialFallback maps the declared initial to a concrete mode. A
// literal system, and anything malformed, counts as light.
func initialFallback(initial InitialMode) Mode {
	if initial == InitialDark {
		return ModeDark
	}
	return ModeLight
}
