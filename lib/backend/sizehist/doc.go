// Package sizehist tracks the distribution of stored value sizes with an
// exponential-bucket histogram, letting a backend answer size-estimation
// queries without a full range scan.
package sizehist
