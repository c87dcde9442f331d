// Package catalog describes the applications installed on the desktop:
// their titles, icons, windows and the surfaces (desktop, dock, start
// menu) that launch them. A default catalog is embedded; deployments may
// override it with a YAML file.
package catalog
