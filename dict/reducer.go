// Copyright 2026 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of LEMMAD.
//
//  LEMMAD is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  LEMMAD is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with LEMMAD.  If not, see <https://www.gnu.org/licenses/>.

package dict

// Reducer turns candidate lemmas of a word into the final
// ordered list of lemmas stored in a Table.
type Reducer struct {
	targets     []int
	storePOSTag bool
}

func NewReducer(conf *Conf) *Reducer {
	return &Reducer{
		targets:     conf.ReductionTargets(),
		storePOSTag: conf.StorePOSTag,
	}
}

// Reduce returns the lemmas for a word in emission order.
// A nil result means the word must not be stored at all.
func (r *Reducer) Reduce(word string, cands []Candidate) []string {
	if len(r.targets) > 0 && len(cands) > 1 {
		return r.reduceToBest(word, cands)
	}
	return r.storeAll(word, cands)
}

func (r *Reducer) output(c Candidate) string {
	if r.storePOSTag {
		return c.Encode()
	}
	return c.Value
}

func (r *Reducer) reduceToBest(word string, cands []Candidate) []string {
	var best *Candidate
	for _, target := range r.targets {
		for i, c := range cands {
			if c.Class != target || c.Value == word {
				continue
			}
			if best == nil || c.Len() < best.Len() {
				best = &cands[i]
			}
		}
		if best != nil {
			return []string{r.output(*best)}
		}
	}
	// no preferred class found, just use the shortest lemma
	for i, c := range cands {
		if c.Value == word && !(r.storePOSTag && c.IsTagged()) {
			continue
		}
		if best == nil || c.Len() < best.Len() {
			best = &cands[i]
		}
	}
	if best == nil {
		return nil
	}
	return []string{r.output(*best)}
}

func (r *Reducer) storeAll(word string, cands []Candidate) []string {
	if r.storePOSTag {
		ans := make([]string, 0, len(cands))
		for _, c := range cands {
			if !c.IsTagged() && c.Value == word {
				continue
			}
			ans = append(ans, c.Encode())
		}
		if len(ans) == 0 {
			return nil
		}
		return ans
	}
	ans := make([]string, 0, len(cands))
	seen := make(map[string]struct{}, len(cands))
	for _, c := range cands {
		if c.Value == word {
			continue
		}
		if _, ok := seen[c.Value]; ok {
			continue
		}
		seen[c.Value] = struct{}{}
		ans = append(ans, c.Value)
	}
	if len(ans) == 0 {
		return nil
	}
	return ans
}
