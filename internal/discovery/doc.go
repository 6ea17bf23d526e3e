// Package discovery finds the extensions of a site on disk. It walks the
// app root for .info.yml manifests, classifies each extension as core,
// contrib or custom by location, and reads install status from the
// exported core.extension.yml configuration.
package discovery
