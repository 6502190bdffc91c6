// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

// NewManyToMany lets both sides hold as many matches as their declared
// capacity. A proposer keeps proposing until it is full or has asked every
// counterpart; a full target evicts its least preferred match for a better
// proposer, and the evicted individual proposes again.
//
// Individuals of both sets propose, and one that is already full when its
// turn comes does not propose at all. The result is stable with respect to
// the proposal order only: two individuals may still prefer each other to
// their partners. Searching over orders is left to the caller.
func NewManyToMany(data *MatchingData, prefs *Preferences, opts ...Option) Matcher {
	o := buildOptions(opts)
	return &pairwiseMatcher{
		data:       data,
		prefs:      prefs,
		capacities: data.Capacities(),
		log:        o.log.WithName(string(ManyToMany)),
	}
}
