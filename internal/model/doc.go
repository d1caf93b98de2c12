// Package model defines the data structures shared across docs2md packages.
// It contains the fetch outcome consumed by the crawler and the summary
// produced at the end of a run. Keeping these types dependency-free avoids
// import cycles between the crawler, fetch, and report packages.
package model
