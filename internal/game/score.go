package game

// Score implements the standard two‑pass Wordle scoring algorithm.
//
// Pass 1:
//   - Mark exact matches and consume those answer positions.
//
// Pass 2:
//   - For each remaining guess letter, claim the leftmost unconsumed answer
//     position holding the same letter (Present), otherwise Absent.
//
// Repeated letters are therefore never reported more often than the answer
// contains them. Inputs of unequal length score only the common prefix; the
// tail stays MarkAbsent.
func Score(answer, guess string) []Mark {
	res := make([]Mark, len(guess))
	n := min(len(answer), len(guess))
	consumed := make([]bool, len(answer))

	for i := 0; i < n; i++ {
		if guess[i] == answer[i] {
			res[i] = MarkExact
			consumed[i] = true
		}
	}

	for i := range guess {
		if res[i] == MarkExact {
			continue
		}
		res[i] = MarkAbsent
		for j := range answer {
			if !consumed[j] && answer[j] == guess[i] {
				res[i] = MarkPresent
				consumed[j] = true
				break
			}
		}
	}
	return res
}

// allExact returns true if all marks are MarkExact.
func allExact(m []Mark) bool {
	for _, x := range m {
		if x != MarkExact {
			return false
		}
	}
	return len(m) > 0
}
