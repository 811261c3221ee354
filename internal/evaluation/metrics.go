package evaluation

import "math"

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func topK(ids []string, k int) []string {
	if k > 0 && k < len(ids) {
		return ids[:k]
	}
	return ids
}

// RecallAtK is the fraction of relevant ids found in the first k ranked ids.
// It is 0 when nothing is relevant.
func RecallAtK(relevant, ranked []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	want := idSet(relevant)
	found := 0
	for _, id := range topK(ranked, k) {
		if _, ok := want[id]; ok {
			found++
		}
	}
	return float64(found) / float64(len(want))
}

// MRRAtK is the reciprocal rank of the first relevant id within the first k
func MRRAtK(relevant, ranked []string, k int) float64 {
	want := idSet(relevant)
	for i, id := range topK(ranked, k) {
		if _, ok := want[id]; ok {
			return 1 / float64(i+1)
		}
	}
	return 0
}

// NDCGAtK uses graded relevance from the order of relevant: the first listed
// id gains len(relevant), the last gains 1.
func NDCGAtK(relevant, ranked []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	gain := make(map[string]float64, len(relevant))
	for i, id := range relevant {
		if _, dup := gain[id]; !dup {
			gain[id] = float64(len(relevant) - i)
		}
	}

	dcg := 0.0
	for i, id := range topK(ranked, k) {
		dcg += gain[id] / math.Log2(float64(i+2))
	}

	idcg := 0.0
	for i, id := range topK(relevant, k) {
		idcg += gain[id] / math.Log2(float64(i+2))
	}
	if idcg == 0 {
		return 0
	}
	return dcg / idcg
}
