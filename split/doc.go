// Package split provides the candidate train/test splitting strategies
// evaluated by the prescriber.
//
// Five strategies implement the Splitter interface:
//
//   - Random: uniform shuffle baseline
//   - PredefinedGroup: shuffle over caller-supplied group labels
//   - KMeans: shuffle over k-means cluster labels
//   - Perimeter: most mutually distant cluster pairs form the test set
//   - MaxDissimilarity: test anchored on the most isolated cluster, train
//     grown outward from the opposite extreme
//
// Every partition covers all row indices exactly once. All randomness is
// seeded; cluster-based splitters offset the seed per trial so repeated
// trials draw different but reproducible clusterings.
package split
