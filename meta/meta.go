// meta/meta.go
package meta

// MAX_AREA defines the largest graph the exact solver accepts by default.
const MAX_AREA = 16

// GAMES defines the number of games per simulation.
const GAMES = 1000

// SEED defines the default seed for target placement.
const SEED = 1

// METRICS_DIR defines where CSV records are written.
const METRICS_DIR = "experiments"
