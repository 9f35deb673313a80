//go:build darwin

package registrar

// On macOS the scheme binding comes from CFBundleURLTypes in the app
// bundle's Info.plist; LaunchServices picks it up when the bundle first
// lands on disk. Nothing to do per launch.
func registerScheme(scheme, exe string) error {
	return nil
}
