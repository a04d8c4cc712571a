// Package project locates a project file by walking up from a directory and
// reads the registry customizations and preset names it declares. Lookups
// never fail: a missing or unusable project is reported as a NotFound result.
package project
