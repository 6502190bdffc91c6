// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

// NewOneToOne caps everyone at a single match. A proposer stops at the first
// counterpart that is free or prefers it to its current match, and the
// displaced individual is queued again.
func NewOneToOne(data *MatchingData, prefs *Preferences, opts ...Option) Matcher {
	o := buildOptions(opts)
	caps := data.Capacities()
	for i := range caps {
		caps[i] = min(caps[i], 1)
	}
	return &pairwiseMatcher{
		data:       data,
		prefs:      prefs,
		capacities: caps,
		log:        o.log.WithName(string(OneToOne)),
	}
}
