// Package kmeans implements seeded mini-batch k-means clustering.
//
// Used internally by the cluster-based splitters to group a feature
// matrix before assigning whole groups to train or test.
package kmeans
