// Package cli handles command-line argument parsing for botplan.
package cli
