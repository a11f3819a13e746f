package objmodel

// PluginSet reports which optional plugin packages are installed
type PluginSet interface {
	Installed(name string) bool
}

// StaticPlugins is a PluginSet backed by a fixed list of names
type StaticPlugins map[string]struct{}

// NewStaticPlugins creates a set of installed plugin names
func NewStaticPlugins(names ...string) StaticPlugins {
	set := make(StaticPlugins, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Installed implements PluginSet
func (s StaticPlugins) Installed(name string) bool {
	_, ok := s[name]
	return ok
}

// RequirePlugin wraps fn so it only runs when plugin name is installed.
// Otherwise the wrapper returns def without calling fn. Installation is
// checked on every call.
//
//	relatedHosts := RequirePlugin(plugins, "ZenPacks.zenoss.Impact", nil, func() []string {
//		return hostsOf(device)
//	})
func RequirePlugin[T any](plugins PluginSet, name string, def T, fn func() T) func() T {
	return func() T {
		if plugins == nil || !plugins.Installed(name) {
			return def
		}
		return fn()
	}
}
