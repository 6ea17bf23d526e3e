// Package extension lists the modules, themes and install profiles of a
// site. A Manager discovers extensions of one type at a time through a
// Discoverer, caches the result for the life of the process and narrows it
// with a Filter before handing back names or Extension values.
//
// Nothing is visible until the caller opts in on both filter axes:
//
//	names, err := extension.New(root, scanner).
//		DiscoverModules().
//		ShowInstalled().
//		ShowCore().
//		ShowNoCore().
//		Names()
package extension
