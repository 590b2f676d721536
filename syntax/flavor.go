package syntax

// Flavor selects the textual spelling of constructs that differ between
// target engines. The tree model and every other construct render
// identically in all flavors.
type Flavor int

const (
	// FlavorPCRE uses the Python/PCRE spellings: (?P<name>...) groups,
	// (?P=name) backreferences, and the full aiLmsux inline flag set.
	FlavorPCRE Flavor = iota

	// FlavorDotNet uses the .NET spellings: (?<name>...) groups and
	// \k<name> backreferences. Only the imsx flags have an inline form.
	FlavorDotNet
)

func (f Flavor) String() string {
	switch f {
	case FlavorPCRE:
		return "pcre"
	case FlavorDotNet:
		return "dotnet"
	}
	return "unknown"
}

// NamedGroup renders a named capture group around body.
func (f Flavor) NamedGroup(name, body string) string {
	if f == FlavorDotNet {
		return "(?<" + name + ">" + body + ")"
	}
	return "(?P<" + name + ">" + body + ")"
}

// NamedBackref renders a backreference to a named group.
func (f Flavor) NamedBackref(name string) string {
	if f == FlavorDotNet {
		return `\k<` + name + `>`
	}
	return "(?P=" + name + ")"
}

// SupportsFlag reports whether the flag character has an inline spelling in
// this flavor.
func (f Flavor) SupportsFlag(c rune) bool {
	if !ValidFlag(c) {
		return false
	}
	if f == FlavorDotNet {
		switch c {
		case 'i', 'm', 's', 'x':
			return true
		}
		return false
	}
	return true
}
