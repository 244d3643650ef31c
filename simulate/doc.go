// Package simulate generates synthetic continuous datasets from known
// causal structures, for tests, examples, and benchmarks.
//
// A System is a linear-Gaussian structural equation model written
// ancestors-first; Sample draws from it with a seeded RNG, so the same
// (system, n, seed) always yields the same Dataset, bit for bit. The
// canned Collider (A→C←B) and Chain (A→B→C) systems cover the two
// textbook scenarios skeleton discovery and orientation are tested
// against: the structures are known, so the expected skeleton and the
// expected arrows are known too.
package simulate
