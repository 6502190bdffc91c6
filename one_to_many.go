// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

// NewOneToMany caps every member of the "one" set (WithOneSideSet, default
// set 0) at a single match; the other side keeps its declared capacity.
func NewOneToMany(data *MatchingData, prefs *Preferences, opts ...Option) Matcher {
	o := buildOptions(opts)
	caps := data.Capacities()
	if o.oneSide >= 0 && o.oneSide < data.NumSets() {
		for _, i := range data.Members(o.oneSide) {
			caps[i] = min(caps[i], 1)
		}
	}
	return &pairwiseMatcher{
		data:       data,
		prefs:      prefs,
		capacities: caps,
		log:        o.log.WithName(string(OneToMany)),
	}
}
