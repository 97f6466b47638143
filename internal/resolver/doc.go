// Package resolver turns the symbolic references embedded in property
// values and output expressions into typed Reference nodes bound to their
// target resources.
//
// Reference syntax is resource.<type>.<name> for a resource's identity and
// resource.<type>.<name>.<attr> for a provisioned attribute. The pass is
// report-all: the whole document is walked and every failure is returned
// in one aggregate, so a user fixes all of them in a single edit cycle.
package resolver
