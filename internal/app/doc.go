// Package app wires the loader, schema catalog, planner, and renderers
// into one runnable application instance.
package app
