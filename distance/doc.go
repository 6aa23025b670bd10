// Package distance provides the distance metrics used across the module.
//
// # Supported Metrics
//
//   - MetricEuclidean: L2 distance (default)
//   - MetricMinkowski: p-norm distance (p=2 is Euclidean)
//   - MetricManhattan: L1 distance
//   - MetricCosine: 1 - cosine similarity
//   - MetricJaccard: Jaccard distance over binary vectors
//
// Detect picks the conventional metric for a feature matrix: Jaccard for
// binary data (e.g. fingerprints), Euclidean otherwise.
//
// # Usage
//
//	f, _ := distance.Provider(distance.MetricMinkowski, 2)
//	d := f(a, b)
//	m := distance.Matrix(points, f, 0)
package distance
