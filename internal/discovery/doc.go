// Package discovery scans a board installation and reports its extension
// state: which extensions exist on disk, which of them the installer manages,
// and leftovers that need attention (stale migration backups, enables that
// never finished, enabled extensions missing from disk). The list and doctor
// commands are built on it.
package discovery
