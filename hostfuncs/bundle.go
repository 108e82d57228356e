package hostfuncs

// Bundle is a pre-configured set of related exports, such as one exported
// type with its constructor and methods.
type Bundle interface {
	Exports() []Export
}

// StaticBundle is a Bundle with a fixed export list.
type StaticBundle []Export

// Exports implements Bundle.
func (b StaticBundle) Exports() []Export {
	return b
}

// WithBundle registers all exports from a bundle.
func WithBundle(bundle Bundle) RegistryOption {
	return func(b *registryBuilder) {
		for _, exp := range bundle.Exports() {
			if err := b.addExport(exp); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
