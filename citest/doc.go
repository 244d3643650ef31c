// Package citest implements the conditional-independence oracle used by
// skeleton discovery: a partial-correlation test for continuous data
// under the linear Gaussian model.
//
// A PartialCorr is constructed once per dataset (New) and then queried
// with PValue(ctx, x, y, given). The returned p-value is for the null
// hypothesis "x is independent of y given the conditioning set"; small
// p-values mean dependence.
//
// The oracle is deterministic and concurrency-safe: the covariance
// matrix is computed once at construction and each query only reads it,
// so one PartialCorr can serve a parallel skeleton sweep.
//
// When the conditioning set induces a singular or ill-conditioned
// covariance block (perfectly collinear conditioners, a constant column,
// too few degrees of freedom), PValue fails with ErrNotComputable
// instead of inventing a p-value. Callers treat such a test as
// inconclusive.
package citest
