package fix

// Applicability classifies how confidently a fix can be applied
// automatically. Tiers are ordered by increasing risk.
type Applicability int

const (
	// Safe fixes are semantically equivalent rewrites with no observable
	// behavior change (e.g., whitespace normalization).
	Safe Applicability = iota

	// Unsafe fixes plausibly change behavior or delete content a user
	// might want to keep (e.g., removing an import with side effects).
	Unsafe

	// DisplayOnly fixes are correct suggestions that are never applied
	// automatically (e.g., a rename crossing file boundaries).
	DisplayOnly
)

// String returns the lowercase name of the applicability tier.
func (a Applicability) String() string {
	switch a {
	case Safe:
		return "safe"
	case Unsafe:
		return "unsafe"
	case DisplayOnly:
		return "display-only"
	default:
		return "unknown"
	}
}

// ApplyMode is the configured safety threshold for automatic application.
type ApplyMode int

const (
	// ApplySafeOnly applies only Safe fixes (the default).
	ApplySafeOnly ApplyMode = iota

	// ApplySafeAndUnsafe additionally applies Unsafe fixes.
	ApplySafeAndUnsafe
)

// Allows reports whether a fix of the given applicability may be applied
// under this mode. DisplayOnly fixes are never applied in any mode.
func (m ApplyMode) Allows(a Applicability) bool {
	switch a {
	case Safe:
		return true
	case Unsafe:
		return m == ApplySafeAndUnsafe
	case DisplayOnly:
		return false
	default:
		return false
	}
}

// String returns the name of the apply mode.
func (m ApplyMode) String() string {
	if m == ApplySafeAndUnsafe {
		return "safe+unsafe"
	}
	return "safe"
}
