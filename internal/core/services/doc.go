// Package services implements the driving port interfaces.
// Services contain the pipeline logic (load, combine, query, save)
// and orchestrate calls to driven ports (adapters).
package services
