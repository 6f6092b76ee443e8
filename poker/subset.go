package poker

// Subset is exactly five cards. Order matters: classifiers expect the subset
// to be pre-sorted by descending raw card value (Best sorts the pool once,
// upstream) and each classifier returns a new subset reordered so the cards
// that make the hand come first. Subsets are never mutated in place.
type Subset [5]Card

// Subsets enumerates every 5-card subset of the pool in lexicographic index
// order. Pools with fewer than five cards yield no subsets.
func Subsets(pool []Card) []Subset {
	var subsets []Subset

	for i := 0; i < len(pool)-4; i++ {
		for j := i + 1; j < len(pool)-3; j++ {
			for k := j + 1; k < len(pool)-2; k++ {
				for l := k + 1; l < len(pool)-1; l++ {
					for m := l + 1; m < len(pool); m++ {
						subsets = append(subsets, Subset{pool[i], pool[j], pool[k], pool[l], pool[m]})
					}
				}
			}
		}
	}

	return subsets
}

// RoyalFlush matches an ace-high straight flush. The steel wheel (A 5 4 3 2
// suited) has its ace low, so it stays a straight flush.
func (s Subset) RoyalFlush() (Subset, bool) {
	sf, ok := s.StraightFlush()
	if !ok || sf[0].Rank() != Ace {
		return Subset{}, false
	}
	return sf, true
}

// StraightFlush matches a straight whose reordered cards are also a flush.
// The straight's ordering carries through, so a wheel keeps its ace last.
func (s Subset) StraightFlush() (Subset, bool) {
	st, ok := s.Straight()
	if !ok {
		return Subset{}, false
	}
	return st.Flush()
}

// FourOfAKind matches four cards sharing a rank, reordered quad-first with
// the kicker last. The scan takes the first match in ascending index order.
func (s Subset) FourOfAKind() (Subset, bool) {
	for i := 0; i < len(s)-3; i++ {
		for j := i + 1; j < len(s)-2; j++ {
			for k := j + 1; k < len(s)-1; k++ {
				for l := k + 1; l < len(s); l++ {
					if s[i].SameRank(s[j]) && s[i].SameRank(s[k]) && s[i].SameRank(s[l]) {
						return s.reorder(i, j, k, l), true
					}
				}
			}
		}
	}
	return Subset{}, false
}

// FullHouse matches a 3+2 rank split, tried as the leading triple then the
// trailing triple, reordered triple-first.
func (s Subset) FullHouse() (Subset, bool) {
	if s[0].SameRank(s[1]) && s[0].SameRank(s[2]) && s[3].SameRank(s[4]) {
		return s, true
	}

	if s[2].SameRank(s[3]) && s[2].SameRank(s[4]) && s[0].SameRank(s[1]) {
		return s.reorder(2, 3, 4), true
	}

	return Subset{}, false
}

// Flush matches five cards of one suit
func (s Subset) Flush() (Subset, bool) {
	if s[0].SameSuit(s[1]) && s[0].SameSuit(s[2]) && s[0].SameSuit(s[3]) && s[0].SameSuit(s[4]) {
		return s, true
	}
	return Subset{}, false
}

// Straight matches five consecutive descending ranks. The wheel (A 5 4 3 2)
// counts with the ace low and is reordered to put the ace at the end.
func (s Subset) Straight() (Subset, bool) {
	if s[0].Rank() == Ace &&
		s[1].Rank() == Five &&
		s[2].Rank() == Four &&
		s[3].Rank() == Three &&
		s[4].Rank() == Two {
		return s.reorder(1, 2, 3, 4), true
	}

	if s[0].Rank() == s[1].Rank()+1 &&
		s[1].Rank() == s[2].Rank()+1 &&
		s[2].Rank() == s[3].Rank()+1 &&
		s[3].Rank() == s[4].Rank()+1 {
		return s, true
	}

	return Subset{}, false
}

// ThreeOfAKind matches three cards sharing a rank, reordered trips-first.
// The scan takes the first match in ascending index order.
func (s Subset) ThreeOfAKind() (Subset, bool) {
	for i := 0; i < len(s)-2; i++ {
		for j := i + 1; j < len(s)-1; j++ {
			for k := j + 1; k < len(s); k++ {
				if s[i].SameRank(s[j]) && s[i].SameRank(s[k]) {
					return s.reorder(i, j, k), true
				}
			}
		}
	}
	return Subset{}, false
}

// TwoPair matches two disjoint same-rank pairs, reordered pairs-first with
// the kicker last. The scan takes the first match in ascending index order.
func (s Subset) TwoPair() (Subset, bool) {
	for i := 0; i < len(s)-3; i++ {
		for j := i + 1; j < len(s)-2; j++ {
			for k := j + 1; k < len(s)-1; k++ {
				for l := k + 1; l < len(s); l++ {
					if s[i].SameRank(s[j]) && s[k].SameRank(s[l]) {
						return s.reorder(i, j, k, l), true
					}
				}
			}
		}
	}
	return Subset{}, false
}

// Pair matches one same-rank pair, reordered pair-first. The scan takes the
// first match in ascending index order.
func (s Subset) Pair() (Subset, bool) {
	for i := 0; i < len(s)-1; i++ {
		for j := i + 1; j < len(s); j++ {
			if s[i].SameRank(s[j]) {
				return s.reorder(i, j), true
			}
		}
	}
	return Subset{}, false
}

// reorder builds a new subset with the priority indexes first and the
// remaining cards after them in their original relative order.
func (s Subset) reorder(priority ...int) Subset {
	var out Subset
	n := 0

	taken := [5]bool{}
	for _, idx := range priority {
		out[n] = s[idx]
		taken[idx] = true
		n++
	}

	for idx := range s {
		if !taken[idx] {
			out[n] = s[idx]
			n++
		}
	}

	return out
}
